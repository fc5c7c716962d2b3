/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thesyncbridge/apiserver/config"
	"github.com/thesyncbridge/apiserver/internal/events"
	"github.com/thesyncbridge/apiserver/internal/logging"
	"github.com/thesyncbridge/apiserver/internal/mq"
	"go.uber.org/zap"
)

// eventsCmd groups the event broker commands.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect domain events on the configured broker",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail [channel]",
	Short: "Subscribe to a channel and log every event",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		channel := cfg.MQ.EventsChannel
		if len(args) == 1 {
			channel = args[0]
		}

		logger, err := logging.Setup(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if broker == nil {
			return fmt.Errorf("no broker configured, set MQ_BACKEND to %s or %s", config.MQRabbitMQ, config.MQPubSub)
		}
		defer func() { _ = broker.Close() }()

		logger.Info("tailing events", zap.String("channel", channel), zap.String("mq", cfg.MQ.Backend))
		err = broker.Subscribe(ctx, channel, func(ctx context.Context, msg mq.Message) error {
			envelope, err := events.Decode(msg.Data)
			if err != nil {
				logger.Warn("undecodable event", zap.String("message_id", msg.ID), zap.Error(err))
				return nil
			}
			logger.Info("event",
				zap.String("type", envelope.Type),
				zap.Time("occurred_at", envelope.OccurredAt),
				zap.String("message_id", msg.ID),
				zap.ByteString("data", envelope.Data))
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)
}
