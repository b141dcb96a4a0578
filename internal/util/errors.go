package util

import "errors"

var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrQuestNotFound       = errors.New("quest not found")
	ErrPraiseNotFound      = errors.New("praise record not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrInvalidState        = errors.New("item is not in a pending state")
	ErrEmptyReason         = errors.New("a reason is required to reject")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("balance is not enough")
	ErrCouponUsed          = errors.New("coupon already used")
	ErrEmptyBatch          = errors.New("no students selected")
	ErrSelfFriendPraise    = errors.New("cannot praise yourself as a friend")
)
