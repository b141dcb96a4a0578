package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePraiseApprove(t *testing.T) {
	praise := &model.PraiseRecord{Kind: model.PraiseSelf}

	err := resolvePraise(praise, model.PraiseApproved, "")

	require.NoError(t, err)
	assert.True(t, praise.Checked)
	assert.Equal(t, model.PraiseApproved, praise.Result)
}

func TestResolvePraiseRejectRequiresReason(t *testing.T) {
	praise := &model.PraiseRecord{Kind: model.PraiseSelf}

	err := resolvePraise(praise, model.PraiseRejected, "")

	assert.ErrorIs(t, err, util.ErrEmptyReason)
	assert.False(t, praise.Checked)
	assert.Empty(t, praise.Result)
}

func TestResolvePraiseTerminal(t *testing.T) {
	praise := &model.PraiseRecord{Checked: true, Result: model.PraiseApproved}

	err := resolvePraise(praise, model.PraiseRejected, "too late")

	assert.ErrorIs(t, err, util.ErrInvalidState)
	assert.Equal(t, model.PraiseApproved, praise.Result)
}

func TestPraiseCreditsSelf(t *testing.T) {
	praise := &model.PraiseRecord{
		StudentID:    "s1",
		Kind:         model.PraiseSelf,
		RequestedExp: 10,
	}

	credits := praiseCredits(praise, "yes", 1)

	require.Len(t, credits, 1)
	assert.Equal(t, "s1", credits[0].StudentID)
	assert.Equal(t, 10, credits[0].Amount)
	assert.Equal(t, model.ExpEventSelfPraise, credits[0].Kind)
}

func TestPraiseCreditsFriendYes(t *testing.T) {
	praise := &model.PraiseRecord{
		StudentID:    "s1",
		Kind:         model.PraiseFriend,
		RequestedExp: 10,
		From:         "s2",
	}

	credits := praiseCredits(praise, "yes", 1)

	require.Len(t, credits, 2)
	assert.Equal(t, "s1", credits[0].StudentID)
	assert.Equal(t, 10, credits[0].Amount)
	assert.Equal(t, "s2", credits[1].StudentID)
	assert.Equal(t, friendPraiseReward, credits[1].Amount)
	assert.Equal(t, model.ExpEventFriendPraise, credits[1].Kind)
}

func TestPraiseCreditsFriendOtherResponse(t *testing.T) {
	praise := &model.PraiseRecord{
		StudentID:    "s1",
		Kind:         model.PraiseFriend,
		RequestedExp: 10,
		From:         "s2",
	}

	credits := praiseCredits(praise, "no", 1)

	require.Len(t, credits, 1)
	assert.Equal(t, "s1", credits[0].StudentID)
}

func TestPraiseCreditsFeverAppliesToMainCreditOnly(t *testing.T) {
	praise := &model.PraiseRecord{
		StudentID:    "s1",
		Kind:         model.PraiseFriend,
		RequestedExp: 10,
		From:         "s2",
	}

	credits := praiseCredits(praise, "yes", 2)

	require.Len(t, credits, 2)
	assert.Equal(t, 20, credits[0].Amount)
	assert.Equal(t, friendPraiseReward, credits[1].Amount)
}

func TestFriendPraiseCreditsCompose(t *testing.T) {
	now := time.Now()
	praise := &model.PraiseRecord{
		StudentID:    "s1",
		Kind:         model.PraiseFriend,
		RequestedExp: 10,
		From:         "s2",
	}

	for _, cr := range praiseCredits(praise, "yes", 1) {
		exp, level, _ := ApplyGain(cr.StudentID, 0, 0, cr.Amount, now)

		assert.GreaterOrEqual(t, exp, 0)
		assert.Less(t, exp, RequiredExp(level))
	}
}

func TestMarkPraiseReadKeepsVerdictFields(t *testing.T) {
	praise := &model.PraiseRecord{
		Result: model.PraiseRejected,
		Reason: "not this time",
	}

	changed := markPraiseRead(praise)

	assert.True(t, changed)
	assert.True(t, praise.Checked)
	assert.Equal(t, model.PraiseRejected, praise.Result)
	assert.Equal(t, "not this time", praise.Reason)
}

func TestMarkPraiseReadIdempotent(t *testing.T) {
	praise := &model.PraiseRecord{Checked: true}

	assert.False(t, markPraiseRead(praise))
}
