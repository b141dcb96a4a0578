package controller

import (
	"candypang_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service sentinels into HTTP replies.
// Anything unrecognised is logged and reported as a 500.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrStudentNotFound),
		errors.Is(err, util.ErrQuestNotFound),
		errors.Is(err, util.ErrPraiseNotFound),
		errors.Is(err, util.ErrMessageNotFound),
		errors.Is(err, util.ErrCouponNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidState),
		errors.Is(err, util.ErrCouponUsed),
		errors.Is(err, util.ErrInsufficientBalance):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrEmptyReason),
		errors.Is(err, util.ErrNonPositiveAmount),
		errors.Is(err, util.ErrEmptyBatch),
		errors.Is(err, util.ErrSelfFriendPraise):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		util.Error(ctx, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
