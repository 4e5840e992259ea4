package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"techfix/internal/app/service"
	"techfix/internal/domain/repository"
	"techfix/internal/platform/config"
	"techfix/internal/platform/mail"
	"time"

	"github.com/redis/go-redis/v9"
)

// NotificationWorker drains the notification queue and tells problem owners
// their problem received a solution.
type NotificationWorker struct {
	rdb          *redis.Client
	userRepo     repository.UserRepository
	problemRepo  repository.ProblemRepository
	solutionRepo repository.SolutionRepository
	mailer       mail.Mailer
}

func NewNotificationWorker(
	rdb *redis.Client,
	userRepo repository.UserRepository,
	problemRepo repository.ProblemRepository,
	solutionRepo repository.SolutionRepository,
	mailer mail.Mailer,
) *NotificationWorker {
	return &NotificationWorker{
		rdb:          rdb,
		userRepo:     userRepo,
		problemRepo:  problemRepo,
		solutionRepo: solutionRepo,
		mailer:       mailer,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	log.Println("Notification worker started, listening to queue:", config.AppConfig.NotificationQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Notification worker stopping...")
			return
		default:
			// Blocking pop from Redis queue
			item, err := w.rdb.BRPop(ctx, 0*time.Second, config.AppConfig.NotificationQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second) // Avoid busy-looping on certain errors
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", config.AppConfig.NotificationQueueName, err)
				time.Sleep(5 * time.Second) // Wait before retrying on other errors
				continue
			}

			// item is an array: [queueName, value]
			if len(item) < 2 || item[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}
			w.process(ctx, []byte(item[1]))
		}
	}
}

func (w *NotificationWorker) process(ctx context.Context, raw []byte) {
	var payload service.SolutionAddedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("ERROR: Failed to decode notification payload: %v", err)
		return
	}

	recipient, err := w.userRepo.FindByID(ctx, payload.RecipientID)
	if err != nil {
		log.Printf("ERROR: Failed to load notification recipient %s: %v", payload.RecipientID, err)
		return
	}
	problem, err := w.problemRepo.FindProblemByID(ctx, payload.ProblemID)
	if err != nil {
		log.Printf("ERROR: Failed to load problem %s for notification: %v", payload.ProblemID, err)
		return
	}
	solution, err := w.solutionRepo.FindSolutionByID(ctx, payload.SolutionID)
	if err != nil {
		log.Printf("ERROR: Failed to load solution %s for notification: %v", payload.SolutionID, err)
		return
	}

	author := "another user"
	if solution.AuthorUsername != nil {
		author = *solution.AuthorUsername
	}
	subject := fmt.Sprintf("Your problem %q received a solution", problem.Title)
	body := fmt.Sprintf("Hi %s,\n\n%s posted a solution to your problem %q.\n\nSolution: %s",
		recipient.Username, author, problem.Title, solution.Title)

	if err := w.mailer.Send(recipient.Email, subject, body); err != nil {
		log.Printf("ERROR: Failed to deliver notification for solution %s: %v", payload.SolutionID, err)
		return
	}
	log.Printf("INFO: Notification for solution %s delivered to %s", payload.SolutionID, recipient.Username)
}
