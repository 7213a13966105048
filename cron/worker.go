package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"playarena/config"
	"playarena/models"
	"playarena/services/notification"

	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async worker in background, draining
// queued notifications into the outbound RabbitMQ channel.
func InitNotificationWorker(publisher *notification.RabbitPublisher) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotificationSend, handleNotificationTask(publisher))

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleNotificationTask(publisher *notification.RabbitPublisher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotificationWorker] Invalid payload: %v", err)
			return err
		}

		if err := publisher.Publish(ctx, p); err != nil {
			log.Printf("[NotificationWorker] Failed to publish notification for %s: %v", p.ATTUID, err)
			return err
		}

		log.Printf("[NotificationWorker] Notification published for %s: %s", p.ATTUID, p.Title)
		return nil
	}
}
