package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulkRoster() []model.Student {
	return []model.Student{
		{ID: "s1", Balance: 100, Exp: 0, Level: 0},
		{ID: "s2", Balance: 30, Exp: 160, Level: 2},
		{ID: "s3", Balance: 0, Exp: 50, Level: 1},
	}
}

func TestBuildBulkPlanDeposit(t *testing.T) {
	plan, err := buildBulkPlan(bulkRoster(), BulkRequest{
		Op:     BulkDeposit,
		Amount: 50,
		Reason: "clean desk",
	}, 1, time.Now())

	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, 150, plan[0].Balance)
	assert.Equal(t, 80, plan[1].Balance)
	assert.Equal(t, 50, plan[2].Balance)
	for _, change := range plan {
		require.NotNil(t, change.Transaction)
		assert.Equal(t, model.TransactionDeposit, change.Transaction.Kind)
		assert.Equal(t, 50, change.Transaction.Amount)
	}
}

func TestBuildBulkPlanWithdrawFailsWholeBatch(t *testing.T) {
	// s3 cannot cover the withdrawal, so nobody's plan is produced.
	plan, err := buildBulkPlan(bulkRoster(), BulkRequest{
		Op:     BulkWithdraw,
		Amount: 50,
	}, 1, time.Now())

	assert.ErrorIs(t, err, util.ErrInsufficientBalance)
	assert.Nil(t, plan)
}

func TestBuildBulkPlanGrantExpWithFever(t *testing.T) {
	plan, err := buildBulkPlan(bulkRoster(), BulkRequest{
		Op:     BulkGrantExp,
		Amount: 10,
		Reason: "group project",
	}, 2, time.Now())

	require.NoError(t, err)
	require.Len(t, plan, 3)

	// s2 was at 160/170 on level 2; 20 exp crosses the threshold.
	assert.Equal(t, 3, plan[1].Level)
	assert.Equal(t, 10, plan[1].Exp)
	// Last event is the grant itself, preceded by the level-up entries.
	lastEvent := plan[1].Events[len(plan[1].Events)-1]
	assert.Equal(t, model.ExpEventExp, lastEvent.Kind)
	assert.Equal(t, 20, lastEvent.Amount)

	for _, change := range plan {
		assert.Nil(t, change.Transaction)
	}
}

func TestBuildBulkPlanBroadcast(t *testing.T) {
	plan, err := buildBulkPlan(bulkRoster(), BulkRequest{
		Op:   BulkBroadcast,
		Text: "field trip tomorrow",
	}, 1, time.Now())

	require.NoError(t, err)
	for _, change := range plan {
		require.Len(t, change.Events, 1)
		assert.Equal(t, model.ExpEventBroadcast, change.Events[0].Kind)
		assert.Equal(t, "field trip tomorrow", change.Events[0].Text)
	}
}

func TestBuildBulkPlanValidation(t *testing.T) {
	_, err := buildBulkPlan(bulkRoster(), BulkRequest{Op: BulkDeposit, Amount: 0}, 1, time.Now())
	assert.ErrorIs(t, err, util.ErrNonPositiveAmount)

	_, err = buildBulkPlan(bulkRoster(), BulkRequest{Op: BulkBroadcast, Text: "  "}, 1, time.Now())
	assert.ErrorIs(t, err, util.ErrEmptyReason)

	_, err = buildBulkPlan(bulkRoster(), BulkRequest{Op: "promote", Amount: 1}, 1, time.Now())
	assert.ErrorIs(t, err, util.ErrInvalidState)
}

func TestUniqueSortedIDs(t *testing.T) {
	ids := uniqueSortedIDs([]string{"s3", "s1", "s3", "s2", "s1"})

	assert.Equal(t, []string{"s1", "s2", "s3"}, ids)
}

func TestBulkDuplicateSelectionChargesOnce(t *testing.T) {
	// A student picked twice in the console must end up with one change
	// and one Transaction, not a doubled ledger against a single move.
	ids := uniqueSortedIDs([]string{"s1", "s1"})
	roster := []model.Student{{ID: "s1", Balance: 100}}
	require.Len(t, ids, len(roster))

	plan, err := buildBulkPlan(roster, BulkRequest{
		Op:     BulkDeposit,
		Amount: 50,
	}, 1, time.Now())

	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, 150, plan[0].Balance)
	require.NotNil(t, plan[0].Transaction)
	assert.Equal(t, 50, plan[0].Transaction.Amount)
}
