package repositories

import "github.com/google/wire"

// ProviderSet exposes repository constructors to Wire.
var ProviderSet = wire.NewSet(
	NewEducatorRepository,
	NewVideoRepository,
	NewEngagementHistoryRepository,
	NewSyncHistoryRepository,
)
