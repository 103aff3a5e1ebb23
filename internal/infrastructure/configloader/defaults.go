package configloader

import "time"

const (
	// defaultConfPath is the fallback configuration directory when no overrides are provided.
	defaultConfPath = "configs"
	// envConfPath overrides the configuration path when the flag is absent.
	envConfPath = "CONF_PATH"

	defaultServiceName    = "educator-sync"
	defaultServiceVersion = "dev"
	defaultEnvironment    = "development"

	defaultHTTPNetwork = "tcp"
	defaultHTTPAddr    = "0.0.0.0:8000"
	defaultHTTPTimeout = 30 * time.Second

	defaultYouTubeTimeout = 15 * time.Second

	defaultSyncBatchSize     = 5
	defaultSyncStaleAfter    = 24 * time.Hour
	defaultSyncCadenceWindow = 50
	defaultSyncSchedule      = "@hourly"
	defaultSyncRunTimeout    = 10 * time.Minute

	defaultPublishTimeout = 5 * time.Second
	defaultMetricsPath    = "/metrics"
)
