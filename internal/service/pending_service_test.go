package service

import (
	"candypang_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPendingFiltersResolvedItems(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	students := []model.Student{
		{
			ID: "s1", Name: "Mina",
			Messages: []model.Message{
				{UUIDBase: model.UUIDBase{ID: "m1", CreatedAt: at(1)}, Text: "hello", Checked: false},
				{UUIDBase: model.UUIDBase{ID: "m2", CreatedAt: at(5)}, Text: "read me", Checked: true},
			},
			PraiseRecords: []model.PraiseRecord{
				{UUIDBase: model.UUIDBase{ID: "p1", CreatedAt: at(3)}, Text: "helped a friend", RequestedExp: 10},
			},
		},
		{
			ID: "s2", Name: "Juno",
			Quests: []model.Quest{
				{UUIDBase: model.UUIDBase{ID: "q1", CreatedAt: at(2)}, Text: "read ch.3", RewardExp: 20,
					Status: model.QuestOngoing, RequestPending: true},
				{UUIDBase: model.UUIDBase{ID: "q2", CreatedAt: at(4)}, Text: "quiet quest",
					Status: model.QuestOngoing, RequestPending: false},
				{UUIDBase: model.UUIDBase{ID: "q3", CreatedAt: at(6)}, Text: "finished",
					Status: model.QuestDone, RequestPending: true},
			},
		},
	}

	pending := collectPending(students)

	require.Len(t, pending, 3)
	// Newest first across all students and kinds.
	assert.Equal(t, "p1", pending[0].ItemID)
	assert.Equal(t, "q1", pending[1].ItemID)
	assert.Equal(t, "m1", pending[2].ItemID)

	assert.Equal(t, "praise", pending[0].Kind)
	assert.Equal(t, "Mina", pending[0].StudentName)
	assert.Equal(t, 10, pending[0].RequestedExp)
	assert.Equal(t, "quest", pending[1].Kind)
	assert.Equal(t, 20, pending[1].RequestedExp)
	assert.Equal(t, "message", pending[2].Kind)
}

func TestCollectPendingEmptyRoster(t *testing.T) {
	assert.Empty(t, collectPending(nil))
	assert.Empty(t, collectPending([]model.Student{{ID: "s1"}}))
}
