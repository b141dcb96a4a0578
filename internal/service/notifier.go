package service

import (
	"candypang_backend/pkg/logger"
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const changeChannel = "candypang:student-changes"

// ChangeEvent is the payload published after every committed student
// mutation. Consumers re-derive their views from the store; the event only
// says who changed and roughly why.
type ChangeEvent struct {
	StudentID string `json:"studentId"`
	Kind      string `json:"kind"`
}

// Notifier fans student changes out over a redis channel. Publishing is
// best-effort: a failed publish is logged, never surfaced to the workflow
// that committed the change.
type Notifier struct {
	Redis *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{Redis: rdb}
}

func (n *Notifier) Publish(studentID, kind string) {
	payload, err := json.Marshal(ChangeEvent{StudentID: studentID, Kind: kind})
	if err != nil {
		return
	}

	ctx := context.Background()
	if err := n.Redis.Publish(ctx, changeChannel, payload).Err(); err != nil {
		logger.Log.Warn("change publish failed",
			zap.String("studentId", studentID),
			zap.Error(err))
	}
}

// Subscribe returns the raw pub/sub handle for the change channel. The
// caller owns closing it.
func (n *Notifier) Subscribe(ctx context.Context) *redis.PubSub {
	return n.Redis.Subscribe(ctx, changeChannel)
}
