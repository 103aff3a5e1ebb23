// Package messaging publishes educator sync lifecycle events to Pub/Sub.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"

	"cloud.google.com/go/pubsub"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Event types carried in the event_type attribute.
const (
	EventTypeSyncCompleted = "educator.sync.completed"
	EventTypeSyncFailed    = "educator.sync.failed"
)

// SyncEvent is the JSON body of a sync lifecycle message.
type SyncEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	EducatorID   uuid.UUID `json:"educator_id"`
	ChannelID    string    `json:"channel_id"`
	HistoryID    uuid.UUID `json:"history_id"`
	Status       string    `json:"status"`
	VideosSynced int       `json:"videos_synced"`
	QuotaUsed    int       `json:"api_quota_used"`
	Error        string    `json:"error,omitempty"`
}

// Publisher sends sync events to one topic. A nil *Publisher drops every event, which
// is what the providers return when messaging is not configured.
type Publisher struct {
	client  *pubsub.Client
	topic   *pubsub.Topic
	timeout time.Duration
	log     *log.Helper
}

// NewPublisher connects to Pub/Sub when cfg is enabled. The emulator endpoint, when
// set, is dialled without TLS or credentials.
func NewPublisher(ctx context.Context, cfg configloader.MessagingConfig, logger log.Logger) (*Publisher, func(), error) {
	helper := log.NewHelper(logger)
	if !cfg.Enabled() {
		helper.Info("messaging disabled: sync events will not be published")
		return nil, func() {}, nil
	}

	var opts []option.ClientOption
	if cfg.EmulatorEndpoint != "" {
		opts = append(opts,
			option.WithEndpoint(cfg.EmulatorEndpoint),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}
	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create pubsub client: %w", err)
	}

	p := NewPublisherWithClient(client, cfg.TopicID, cfg.PublishTimeout, logger)
	cleanup := func() {
		p.topic.Stop()
		if err := client.Close(); err != nil {
			helper.Warnf("close pubsub client: %v", err)
		}
	}
	helper.Infof("messaging enabled: project=%s topic=%s", cfg.ProjectID, cfg.TopicID)
	return p, cleanup, nil
}

// NewPublisherWithClient wraps an existing client.
func NewPublisherWithClient(client *pubsub.Client, topicID string, timeout time.Duration, logger log.Logger) *Publisher {
	return &Publisher{
		client:  client,
		topic:   client.Topic(topicID),
		timeout: timeout,
		log:     log.NewHelper(logger),
	}
}

// PublishSyncResult publishes one per-educator outcome and waits for the server ack.
func (p *Publisher) PublishSyncResult(ctx context.Context, result *vo.EducatorSyncResult) error {
	if p == nil || result == nil {
		return nil
	}
	event := NewSyncEvent(result)
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal sync event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	msgID, err := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type":  event.EventType,
			"educator_id": event.EducatorID.String(),
		},
	}).Get(ctx)
	if err != nil {
		return fmt.Errorf("publish sync event: %w", err)
	}
	p.log.WithContext(ctx).Debugf("sync event published: id=%s type=%s educator_id=%s", msgID, event.EventType, event.EducatorID)
	return nil
}

// NewSyncEvent maps a sync result onto its event body.
func NewSyncEvent(result *vo.EducatorSyncResult) SyncEvent {
	eventType := EventTypeSyncCompleted
	if result.Failed() {
		eventType = EventTypeSyncFailed
	}
	occurred := result.CompletedAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return SyncEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		OccurredAt:   occurred,
		EducatorID:   result.EducatorID,
		ChannelID:    result.ChannelID,
		HistoryID:    result.HistoryID,
		Status:       string(result.Status),
		VideosSynced: result.VideosSynced,
		QuotaUsed:    result.QuotaUsed,
		Error:        result.Error,
	}
}
