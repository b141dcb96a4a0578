package controller

import (
	"candypang_backend/internal/service"
	"candypang_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EconomyController struct {
	EconomyService *service.EconomyService
}

func NewEconomyController(economyService *service.EconomyService) *EconomyController {
	return &EconomyController{EconomyService: economyService}
}

type grantCouponRequest struct {
	Label string `json:"label" binding:"required"`
}

// Deposit godoc
// @Summary Deposit currency into a student's account
// @Tags economy
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param request body service.BankRequest true "amount and reason"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/teacher/students/{id}/bank/deposit [post]
func (c *EconomyController) Deposit(ctx *gin.Context) {
	var req service.BankRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.EconomyService.Deposit(ctx.Param("id"), req); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Withdraw godoc
// @Summary Withdraw currency from a student's account
// @Description Rejected when the balance cannot cover the amount
// @Tags economy
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param request body service.BankRequest true "amount and reason"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/students/{id}/bank/withdraw [post]
func (c *EconomyController) Withdraw(ctx *gin.Context) {
	var req service.BankRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.EconomyService.Withdraw(ctx.Param("id"), req); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Spend godoc
// @Summary Record a shop purchase
// @Description Debits the balance and records the purchased items on the transaction
// @Tags economy
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param request body service.SpendRequest true "amount, items and reason"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/students/{id}/bank/spend [post]
func (c *EconomyController) Spend(ctx *gin.Context) {
	var req service.SpendRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.EconomyService.Spend(ctx.Param("id"), req); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GrantCoupon godoc
// @Summary Give a student a coupon
// @Tags economy
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param request body grantCouponRequest true "coupon label"
// @Success 201 {object} util.Response
// @Router /api/teacher/students/{id}/coupons [post]
func (c *EconomyController) GrantCoupon(ctx *gin.Context) {
	var req grantCouponRequest
	if !bindJSON(ctx, &req) {
		return
	}
	coupon, err := c.EconomyService.GrantCoupon(ctx.Param("id"), req.Label)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, coupon)
}

// RedeemCoupon godoc
// @Summary Redeem a coupon
// @Description Marks the coupon used; currency-denominated labels also credit the balance with a paired deposit transaction
// @Tags economy
// @Produce json
// @Param id path string true "student id"
// @Param couponId path string true "coupon id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "already used"
// @Router /api/students/{id}/coupons/{couponId}/redeem [post]
func (c *EconomyController) RedeemCoupon(ctx *gin.Context) {
	if err := c.EconomyService.RedeemCoupon(ctx.Param("id"), ctx.Param("couponId")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListTransactions godoc
// @Summary List a student's transactions
// @Tags economy
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Router /api/students/{id}/transactions [get]
func (c *EconomyController) ListTransactions(ctx *gin.Context) {
	transactions, err := c.EconomyService.ListTransactions(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, transactions)
}

// ListCoupons godoc
// @Summary List a student's coupons
// @Tags economy
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} util.Response
// @Router /api/students/{id}/coupons [get]
func (c *EconomyController) ListCoupons(ctx *gin.Context) {
	coupons, err := c.EconomyService.ListCoupons(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, coupons)
}
