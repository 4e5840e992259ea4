package service

import (
	"context"
	"encoding/json"
	"log"
	"techfix/internal/common"
	"techfix/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// SolutionAddedPayload is what the worker pops off the queue.
type SolutionAddedPayload struct {
	ProblemID   string `json:"problem_id"`
	SolutionID  string `json:"solution_id"`
	RecipientID string `json:"recipient_id"`
}

type NotificationService struct {
	rdb *redis.Client
}

func NewNotificationService(rdb *redis.Client) *NotificationService {
	return &NotificationService{rdb: rdb}
}

// EnqueueSolutionAdded pushes the event to Redis for the notification
// worker. Delivery is best effort; callers log failures instead of failing
// the originating action.
func (s *NotificationService) EnqueueSolutionAdded(ctx context.Context, payload SolutionAddedPayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return common.Errorf("failed to marshal notification payload: %w", err)
	}

	if err := s.rdb.LPush(ctx, config.AppConfig.NotificationQueueName, payloadBytes).Err(); err != nil {
		return common.Errorf("failed to push notification to Redis queue: %w", err)
	}

	log.Printf("Notification for solution %s enqueued successfully.", payload.SolutionID)
	return nil
}
