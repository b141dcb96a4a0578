package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveQuestDone(t *testing.T) {
	now := time.Now()
	quest := &model.Quest{Status: model.QuestOngoing, RequestPending: true}

	err := resolveQuest(quest, true, "", now)

	require.NoError(t, err)
	assert.Equal(t, model.QuestDone, quest.Status)
	assert.False(t, quest.RequestPending)
	require.NotNil(t, quest.CompletedAt)
	assert.Equal(t, now, *quest.CompletedAt)
	assert.Nil(t, quest.FailedAt)
}

func TestResolveQuestFailedRequiresReason(t *testing.T) {
	quest := &model.Quest{Status: model.QuestOngoing, RequestPending: true}

	err := resolveQuest(quest, false, "   ", time.Now())

	assert.ErrorIs(t, err, util.ErrEmptyReason)
	// The quest must be left untouched on a validation failure.
	assert.Equal(t, model.QuestOngoing, quest.Status)
	assert.True(t, quest.RequestPending)
}

func TestResolveQuestFailedWithReason(t *testing.T) {
	now := time.Now()
	quest := &model.Quest{Status: model.QuestOngoing}

	err := resolveQuest(quest, false, "left it unfinished", now)

	require.NoError(t, err)
	assert.Equal(t, model.QuestFailed, quest.Status)
	assert.Equal(t, "left it unfinished", quest.Reason)
	require.NotNil(t, quest.FailedAt)
}

func TestResolveQuestNeverReentersOngoing(t *testing.T) {
	for _, status := range []model.QuestStatus{model.QuestDone, model.QuestFailed} {
		quest := &model.Quest{Status: status}

		assert.ErrorIs(t, resolveQuest(quest, true, "", time.Now()), util.ErrInvalidState)
		assert.ErrorIs(t, resolveQuest(quest, false, "reason", time.Now()), util.ErrInvalidState)
		assert.Equal(t, status, quest.Status)
	}
}
