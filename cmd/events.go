/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/photoshare/apiserver/config"
	"github.com/photoshare/apiserver/internal/logging"
	"github.com/photoshare/apiserver/internal/mq"
	"github.com/photoshare/apiserver/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// eventsCmd groups commands that work with published domain events.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect domain events",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Log events from the configured broker until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logging.New(cfg.Log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if broker == nil {
			return errors.New("MQ_BACKEND is none; nothing to tail")
		}
		defer broker.Close()

		log.WithField("channel", cfg.MQ.EventsChannel).Info("tailing events")
		err = broker.Subscribe(ctx, cfg.MQ.EventsChannel, logEvent(log))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)
}

// logEvent decodes an event envelope and logs it. Undecodable messages are
// logged and acknowledged so they do not loop.
func logEvent(log logrus.FieldLogger) mq.Handler {
	return func(_ context.Context, msg mq.Message) error {
		var event services.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.WithError(err).WithField("message_id", msg.ID).Warn("undecodable event")
			return nil
		}
		log.WithFields(logrus.Fields{
			"message_id":  msg.ID,
			"type":        event.Type,
			"occurred_at": event.OccurredAt,
			"data":        string(event.Data),
		}).Infof("event %s", event.Type)
		return nil
	}
}
