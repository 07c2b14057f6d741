package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tosika/pkg/config"
	"tosika/pkg/logger"
	"tosika/pkg/queue"
)

// Tails the moderation event queue and prints each transition. Useful when
// debugging why a downstream consumer did or did not see an event.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}
	defer queueClient.Close()

	err = queueClient.ConsumeModerationEvents(func(event queue.ModerationEvent) error {
		fmt.Printf("%s  %s %s  %s -> %s  campaign=%s moderator=%s\n",
			event.OccurredAt.Format("15:04:05"),
			event.RecordKind,
			event.RecordID,
			event.FromStatus,
			event.ToStatus,
			event.CampaignID,
			event.ModeratorID,
		)
		return nil
	})
	if err != nil {
		log.Error("Failed to start consumer: %v", err)
		panic(err)
	}

	log.Info("Tailing moderation events, Ctrl-C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
