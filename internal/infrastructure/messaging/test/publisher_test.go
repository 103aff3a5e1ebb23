package messaging_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/messaging"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"

	"cloud.google.com/go/pubsub/apiv1/pubsubpb"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPublisher_PublishesSyncResults(t *testing.T) {
	ctx := context.Background()
	server := pstest.NewServer()
	t.Cleanup(func() { _ = server.Close() })

	projectID, topicID := "educator-sync-test", "educator-sync-events"
	_, err := server.GServer.CreateTopic(ctx, &pubsubpb.Topic{Name: fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)})
	require.NoError(t, err)

	publisher, cleanup, err := messaging.NewPublisher(ctx, configloader.MessagingConfig{
		ProjectID:        projectID,
		TopicID:          topicID,
		EmulatorEndpoint: server.Addr,
		PublishTimeout:   5 * time.Second,
	}, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	ok := &vo.EducatorSyncResult{
		EducatorID:   uuid.New(),
		ChannelID:    "UC123",
		HistoryID:    uuid.New(),
		Status:       po.HistoryStatusCompleted,
		VideosSynced: 3,
		QuotaUsed:    4,
		CompletedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	failed := &vo.EducatorSyncResult{
		EducatorID: uuid.New(),
		ChannelID:  "UC456",
		Status:     po.HistoryStatusFailed,
		Error:      "fetch channel stats: channel not found",
	}
	require.NoError(t, publisher.PublishSyncResult(ctx, ok))
	require.NoError(t, publisher.PublishSyncResult(ctx, failed))

	msgs := server.Messages()
	require.Len(t, msgs, 2)

	require.Equal(t, messaging.EventTypeSyncCompleted, msgs[0].Attributes["event_type"])
	require.Equal(t, ok.EducatorID.String(), msgs[0].Attributes["educator_id"])
	var event messaging.SyncEvent
	require.NoError(t, json.Unmarshal(msgs[0].Data, &event))
	require.Equal(t, "UC123", event.ChannelID)
	require.Equal(t, 3, event.VideosSynced)
	require.Equal(t, 4, event.QuotaUsed)
	require.True(t, event.OccurredAt.Equal(ok.CompletedAt))

	require.Equal(t, messaging.EventTypeSyncFailed, msgs[1].Attributes["event_type"])
	require.NoError(t, json.Unmarshal(msgs[1].Data, &event))
	require.Equal(t, "failed", event.Status)
	require.Contains(t, event.Error, "channel not found")
}

func TestNewPublisher_DisabledReturnsNil(t *testing.T) {
	publisher, cleanup, err := messaging.NewPublisher(context.Background(), configloader.MessagingConfig{}, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	require.Nil(t, publisher)
	cleanup()

	require.NoError(t, publisher.PublishSyncResult(context.Background(), &vo.EducatorSyncResult{}))
}
