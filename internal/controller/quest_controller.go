package controller

import (
	"candypang_backend/internal/service"
	"candypang_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestController struct {
	QuestService *service.QuestService
}

func NewQuestController(questService *service.QuestService) *QuestController {
	return &QuestController{QuestService: questService}
}

type failQuestRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AssignQuest godoc
// @Summary Assign a quest to one or more students
// @Description Creates the same quest for every listed student in one transaction
// @Tags quests
// @Accept json
// @Produce json
// @Param request body service.AssignQuestRequest true "students, text and reward"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/teacher/quests [post]
func (c *QuestController) AssignQuest(ctx *gin.Context) {
	var req service.AssignQuestRequest
	if !bindJSON(ctx, &req) {
		return
	}
	quests, err := c.QuestService.AssignQuest(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, quests)
}

// RequestApproval godoc
// @Summary Student asks for quest approval
// @Tags quests
// @Produce json
// @Param id path string true "student id"
// @Param questId path string true "quest id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/students/{id}/quests/{questId}/request [post]
func (c *QuestController) RequestApproval(ctx *gin.Context) {
	err := c.QuestService.RequestApproval(ctx.Param("id"), ctx.Param("questId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ApproveQuest godoc
// @Summary Approve a quest and grant its reward
// @Description Marks the quest done and credits the reward exp, scaled by the fever multiplier when active
// @Tags quests
// @Produce json
// @Param id path string true "student id"
// @Param questId path string true "quest id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/students/{id}/quests/{questId}/approve [post]
func (c *QuestController) ApproveQuest(ctx *gin.Context) {
	err := c.QuestService.ApproveQuest(ctx.Param("id"), ctx.Param("questId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// FailQuest godoc
// @Summary Fail a quest with a reason
// @Tags quests
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param questId path string true "quest id"
// @Param request body failQuestRequest true "reason"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/students/{id}/quests/{questId}/fail [post]
func (c *QuestController) FailQuest(ctx *gin.Context) {
	var req failQuestRequest
	if !bindJSON(ctx, &req) {
		return
	}
	err := c.QuestService.FailQuest(ctx.Param("id"), ctx.Param("questId"), req.Reason)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListQuests godoc
// @Summary List a student's quests
// @Tags quests
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Router /api/students/{id}/quests [get]
func (c *QuestController) ListQuests(ctx *gin.Context) {
	quests, err := c.QuestService.ListQuests(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, quests)
}
