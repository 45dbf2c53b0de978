package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/zones"
)

// PubSubHandler handles Pub/Sub messages for the worker.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	refreshJob       *RefreshJob
	registry         *zones.Service
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	RefreshJob       *RefreshJob
	Registry         *zones.Service
	Logger           zerolog.Logger
}

// JobMessage represents a worker job message.
type JobMessage struct {
	JobType   string `json:"job_type"`
	SeedZones bool   `json:"seed_zones,omitempty"`
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	// A refresh can take a while against slow feeds, so keep the ack
	// deadline extension generous.
	subscriber := client.Subscriber(cfg.SubscriptionName)
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		refreshJob:       cfg.RefreshJob,
		registry:         cfg.Registry,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	var jobMsg JobMessage
	if err := json.Unmarshal(msg.Data, &jobMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	var err error
	switch jobMsg.JobType {
	case "zone_refresh":
		err = h.handleZoneRefresh(ctx, jobMsg)
	case "health_check":
		err = h.handleHealthCheck(ctx)
	default:
		// Ack rather than nack so unknown job types are not redelivered.
		logger.Warn().Str("job_type", jobMsg.JobType).Msg("unknown job type")
		msg.Ack()
		return
	}

	if err != nil {
		logger.Error().Err(err).Msg("job failed")
		msg.Nack()
		return
	}

	duration := time.Since(startTime)
	logger.Info().
		Str("job_type", jobMsg.JobType).
		Dur("duration", duration).
		Msg("job completed successfully")

	msg.Ack()
}

func (h *PubSubHandler) handleZoneRefresh(ctx context.Context, msg JobMessage) error {
	h.logger.Info().Msg("starting zone refresh")

	if msg.SeedZones && h.registry != nil {
		seeded, err := h.registry.SeedSampleZones(ctx)
		if err != nil {
			h.logger.Warn().Err(err).Msg("zone seeding failed")
		} else if seeded > 0 {
			h.logger.Info().Int("seeded", seeded).Msg("seeded sample zones")
		}
	}

	result := h.refreshJob.Run(ctx)

	if !h.refreshJob.Healthy(result) {
		return fmt.Errorf("zone refresh unhealthy: %d feed errors, %d/%d zones failed",
			len(result.Errors), result.Failed, result.Fetched)
	}

	return nil
}

func (h *PubSubHandler) handleHealthCheck(ctx context.Context) error {
	h.logger.Debug().Msg("running health check")

	if h.registry == nil {
		return nil
	}

	// A registry round trip verifies storage connectivity.
	if _, err := h.registry.List(ctx, 1, 0); err != nil {
		return fmt.Errorf("registry health check: %w", err)
	}

	h.logger.Debug().Msg("health check passed")
	return nil
}
