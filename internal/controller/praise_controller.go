package controller

import (
	"candypang_backend/internal/service"
	"candypang_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PraiseController struct {
	PraiseService  *service.PraiseService
	MessageService *service.MessageService
}

func NewPraiseController(praiseService *service.PraiseService, messageService *service.MessageService) *PraiseController {
	return &PraiseController{PraiseService: praiseService, MessageService: messageService}
}

type approvePraiseRequest struct {
	Response string `json:"response" binding:"required"`
}

type rejectPraiseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateSelfPraise godoc
// @Summary Student praises themselves
// @Tags praises
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param request body service.CreatePraiseRequest true "text and requested exp"
// @Success 201 {object} util.Response
// @Router /api/students/{id}/praises/self [post]
func (c *PraiseController) CreateSelfPraise(ctx *gin.Context) {
	var req service.CreatePraiseRequest
	if !bindJSON(ctx, &req) {
		return
	}
	praise, err := c.PraiseService.CreateSelfPraise(ctx.Param("id"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, praise)
}

// CreateFriendPraise godoc
// @Summary Student praises a classmate
// @Description The praised student is the path id; the sender goes in the from field and earns a small bonus if the praise is approved with a yes
// @Tags praises
// @Accept json
// @Produce json
// @Param id path string true "praised student id"
// @Param request body service.CreatePraiseRequest true "text, requested exp and sender"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/students/{id}/praises/friend [post]
func (c *PraiseController) CreateFriendPraise(ctx *gin.Context) {
	var req service.CreatePraiseRequest
	if !bindJSON(ctx, &req) {
		return
	}
	praise, err := c.PraiseService.CreateFriendPraise(ctx.Param("id"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, praise)
}

// ApprovePraise godoc
// @Summary Approve a praise
// @Description Credits the requested exp to the praised student, plus the friend bonus on a yes response
// @Tags praises
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param praiseId path string true "praise id"
// @Param request body approvePraiseRequest true "teacher response"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/students/{id}/praises/{praiseId}/approve [post]
func (c *PraiseController) ApprovePraise(ctx *gin.Context) {
	var req approvePraiseRequest
	if !bindJSON(ctx, &req) {
		return
	}
	err := c.PraiseService.ApprovePraise(ctx.Param("id"), ctx.Param("praiseId"), req.Response)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RejectPraise godoc
// @Summary Reject a praise with a reason
// @Tags praises
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param praiseId path string true "praise id"
// @Param request body rejectPraiseRequest true "reason"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/students/{id}/praises/{praiseId}/reject [post]
func (c *PraiseController) RejectPraise(ctx *gin.Context) {
	var req rejectPraiseRequest
	if !bindJSON(ctx, &req) {
		return
	}
	err := c.PraiseService.RejectPraise(ctx.Param("id"), ctx.Param("praiseId"), req.Reason)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MarkPraiseRead godoc
// @Summary Mark a praise as seen without a verdict
// @Tags praises
// @Produce json
// @Param id path string true "student id"
// @Param praiseId path string true "praise id"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/praises/{praiseId}/read [post]
func (c *PraiseController) MarkPraiseRead(ctx *gin.Context) {
	err := c.PraiseService.MarkRead(ctx.Param("id"), ctx.Param("praiseId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListPraises godoc
// @Summary List a student's praises
// @Tags praises
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Router /api/students/{id}/praises [get]
func (c *PraiseController) ListPraises(ctx *gin.Context) {
	praises, err := c.PraiseService.ListPraises(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, praises)
}

// SendMessage godoc
// @Summary Leave a message for a student
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param request body service.SendMessageRequest true "sender name and text"
// @Success 201 {object} util.Response
// @Router /api/students/{id}/messages [post]
func (c *PraiseController) SendMessage(ctx *gin.Context) {
	var req service.SendMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}
	message, err := c.MessageService.Send(ctx.Param("id"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, message)
}

// MarkMessageRead godoc
// @Summary Mark a message as read
// @Tags messages
// @Produce json
// @Param id path string true "student id"
// @Param messageId path string true "message id"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/messages/{messageId}/read [post]
func (c *PraiseController) MarkMessageRead(ctx *gin.Context) {
	err := c.MessageService.MarkRead(ctx.Param("id"), ctx.Param("messageId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMessages godoc
// @Summary List a student's messages
// @Tags messages
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Router /api/students/{id}/messages [get]
func (c *PraiseController) ListMessages(ctx *gin.Context) {
	messages, err := c.MessageService.ListMessages(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}
