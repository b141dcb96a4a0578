package controller

import (
	"candypang_backend/internal/service"
	"candypang_backend/internal/util"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

// TeacherController carries the teacher-console surface: pending inbox,
// bulk operations, fever control and the change stream.
type TeacherController struct {
	PendingService *service.PendingService
	BatchService   *service.BatchService
	FeverService   *service.FeverService
	Notifier       *service.Notifier
}

func NewTeacherController(
	pendingService *service.PendingService,
	batchService *service.BatchService,
	feverService *service.FeverService,
	notifier *service.Notifier,
) *TeacherController {
	return &TeacherController{
		PendingService: pendingService,
		BatchService:   batchService,
		FeverService:   feverService,
		Notifier:       notifier,
	}
}

type startFeverRequest struct {
	Multiplier      int `json:"multiplier"`
	DurationMinutes int `json:"durationMinutes"`
}

// ListPending godoc
// @Summary All unresolved requests across the class
// @Description Unread messages, unchecked praises and quests waiting for approval, newest first
// @Tags teacher
// @Produce json
// @Success 200 {object} util.Response{data=[]service.PendingRequest}
// @Router /api/teacher/pending [get]
func (c *TeacherController) ListPending(ctx *gin.Context) {
	pending, err := c.PendingService.ListPending()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, pending)
}

// ApplyBulk godoc
// @Summary Apply one operation to many students atomically
// @Description Deposit, withdraw, grantExp or broadcast across the selection; any failure rolls back every student
// @Tags teacher
// @Accept json
// @Produce json
// @Param request body service.BulkRequest true "operation and selection"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "a student cannot cover the withdrawal"
// @Router /api/teacher/bulk [post]
func (c *TeacherController) ApplyBulk(ctx *gin.Context) {
	var req service.BulkRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.BatchService.ApplyBulk(req); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// StartFever godoc
// @Summary Start fever time
// @Description Multiplies every exp grant for a limited window; omitted fields fall back to configured defaults
// @Tags teacher
// @Accept json
// @Produce json
// @Param request body startFeverRequest false "multiplier and duration"
// @Success 200 {object} util.Response
// @Router /api/teacher/fever/start [post]
func (c *TeacherController) StartFever(ctx *gin.Context) {
	var req startFeverRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err != io.EOF {
		util.BadRequest(ctx, err.Error())
		return
	}
	duration := time.Duration(req.DurationMinutes) * time.Minute
	if err := c.FeverService.Start(req.Multiplier, duration); err != nil {
		respondServiceError(ctx, err)
		return
	}
	status, err := c.FeverService.Status()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// StopFever godoc
// @Summary Stop fever time
// @Tags teacher
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/teacher/fever/stop [post]
func (c *TeacherController) StopFever(ctx *gin.Context) {
	if err := c.FeverService.Stop(); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// FeverStatus godoc
// @Summary Current fever state
// @Tags teacher
// @Produce json
// @Success 200 {object} util.Response{data=service.FeverStatus}
// @Router /api/fever [get]
func (c *TeacherController) FeverStatus(ctx *gin.Context) {
	status, err := c.FeverService.Status()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// StreamChanges godoc
// @Summary Server-sent change stream
// @Description Emits an event whenever a student's state changes, so consoles can refetch instead of polling
// @Tags teacher
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /api/teacher/stream [get]
func (c *TeacherController) StreamChanges(ctx *gin.Context) {
	pubsub := c.Notifier.Subscribe(ctx.Request.Context())
	defer pubsub.Close()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	// Heartbeat keeps intermediaries from closing an idle stream.
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	messages := pubsub.Channel()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			var event service.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				return true
			}
			ctx.SSEvent("change", event)
			return true
		case <-heartbeat.C:
			ctx.SSEvent("ping", time.Now().Unix())
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
