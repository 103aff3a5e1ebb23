// Package services contains application use case orchestration.
package services

import (
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/repositories"

	"github.com/google/wire"
)

// ProviderSet is services providers.
var ProviderSet = wire.NewSet(
	wire.Bind(new(EducatorStore), new(*repositories.EducatorRepository)),
	wire.Bind(new(VideoStore), new(*repositories.VideoRepository)),
	wire.Bind(new(EngagementStore), new(*repositories.EngagementHistoryRepository)),
	wire.Bind(new(SyncHistoryStore), new(*repositories.SyncHistoryRepository)),
	wire.Bind(new(ChannelPlatform), new(*youtube.Client)),
	NewStatsWriter,
	wire.Struct(new(SyncServiceParams), "*"),
	NewSyncService,
	NewLogMailer,
	wire.Bind(new(Mailer), new(*LogMailer)),
	NewNotificationService,
)
