package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemCouponCreditLabels(t *testing.T) {
	now := time.Now()
	for label, want := range couponCreditLabels {
		coupon := &model.Coupon{Label: label}

		credit, err := redeemCoupon(coupon, now)

		require.NoError(t, err)
		assert.Equal(t, want, credit)
		assert.True(t, coupon.Used)
		require.NotNil(t, coupon.UsedAt)
		assert.Equal(t, now, *coupon.UsedAt)
	}
}

func TestRedeemCouponNonCurrencyLabel(t *testing.T) {
	coupon := &model.Coupon{Label: "homework pass"}

	credit, err := redeemCoupon(coupon, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, credit)
	assert.True(t, coupon.Used)
}

func TestRedeemCouponTwice(t *testing.T) {
	now := time.Now()
	coupon := &model.Coupon{Label: "candy-100"}

	_, err := redeemCoupon(coupon, now)
	require.NoError(t, err)

	firstUsedAt := *coupon.UsedAt
	_, err = redeemCoupon(coupon, now.Add(time.Minute))

	assert.ErrorIs(t, err, util.ErrCouponUsed)
	// Second attempt leaves the first redemption record intact.
	assert.Equal(t, firstUsedAt, *coupon.UsedAt)
}
