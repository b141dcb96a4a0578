package controller

import (
	"candypang_backend/internal/service"
	"candypang_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// ListCards godoc
// @Summary List student cards
// @Description Returns the card view of every student: level, exp, balance and the exp needed for the next level
// @Tags students
// @Produce json
// @Success 200 {object} util.Response{data=[]service.StudentCard}
// @Router /api/students [get]
func (c *StudentController) ListCards(ctx *gin.Context) {
	cards, err := c.StudentService.ListCards()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, cards)
}

// GetStudent godoc
// @Summary Get one student with history
// @Description Returns a student and the full per-student history: quests, praises, messages, transactions, coupons, exp events and notifications
// @Tags students
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.StudentService.GetStudent(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// CreateStudent godoc
// @Summary Add a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body service.CreateStudentRequest true "seat code and name"
// @Success 201 {object} util.Response
// @Router /api/teacher/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req service.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	student, err := c.StudentService.CreateStudent(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// DeleteStudent godoc
// @Summary Remove a student and all their history
// @Tags students
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/teacher/students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.StudentService.DeleteStudent(ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetBoard godoc
// @Summary Class leaderboard
// @Description Students ranked by level, then exp
// @Tags students
// @Produce json
// @Success 200 {object} util.Response{data=[]service.BoardEntry}
// @Router /api/board [get]
func (c *StudentController) GetBoard(ctx *gin.Context) {
	board, err := c.StudentService.GetBoard()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// GetExpEvents godoc
// @Summary A student's exp event feed
// @Tags students
// @Produce json
// @Param id path string true "student id"
// @Param limit query int false "max events, newest first" default(50)
// @Success 200 {object} util.Response
// @Router /api/students/{id}/events [get]
func (c *StudentController) GetExpEvents(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		util.BadRequest(ctx, "limit must be a positive integer")
		return
	}
	events, err := c.StudentService.GetExpEvents(ctx.Param("id"), limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// GetNotifications godoc
// @Summary A student's notifications
// @Tags students
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Router /api/students/{id}/notifications [get]
func (c *StudentController) GetNotifications(ctx *gin.Context) {
	notifications, err := c.StudentService.GetNotifications(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

// MarkNotificationRead godoc
// @Summary Mark one notification as read
// @Tags students
// @Produce json
// @Param id path string true "student id"
// @Param notificationId path string true "notification id"
// @Success 200 {object} util.Response
// @Router /api/students/{id}/notifications/{notificationId}/read [post]
func (c *StudentController) MarkNotificationRead(ctx *gin.Context) {
	err := c.StudentService.MarkNotificationRead(ctx.Param("id"), ctx.Param("notificationId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
