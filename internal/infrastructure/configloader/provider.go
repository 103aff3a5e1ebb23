package configloader

import (
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/logger"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"

	"github.com/google/wire"
)

// ProviderSet exposes the configuration slices consumed by the other providers.
var ProviderSet = wire.NewSet(
	ProvideRuntimeConfig,
	ProvideServiceMetadata,
	ProvideLoggerConfig,
	ProvideServerConfig,
	ProvideDatabaseConfig,
	ProvideYouTubeConfig,
	ProvideSyncConfig,
	ProvideMessagingConfig,
	ProvideMetricsConfig,
)

// ProvideRuntimeConfig loads the configuration for wire.
func ProvideRuntimeConfig(params Params) (RuntimeConfig, error) {
	return Load(params)
}

// ProvideServiceMetadata exposes the service identity.
func ProvideServiceMetadata(rc RuntimeConfig) ServiceMetadata {
	return rc.Service
}

// ProvideLoggerConfig maps service metadata onto the logger configuration.
func ProvideLoggerConfig(meta ServiceMetadata) logger.Config {
	return logger.Config{
		Service: meta.Name,
		Version: meta.Version,
		HostID:  meta.InstanceID,
		Env:     meta.Environment,
	}
}

// ProvideServerConfig exposes the HTTP listener settings.
func ProvideServerConfig(rc RuntimeConfig) ServerConfig {
	return rc.Server
}

// ProvideDatabaseConfig exposes the pool settings.
func ProvideDatabaseConfig(rc RuntimeConfig) DatabaseConfig {
	return rc.Database
}

// ProvideYouTubeConfig builds the Data API client configuration.
func ProvideYouTubeConfig(rc RuntimeConfig) youtube.Config {
	return youtube.Config{
		APIKey:   rc.YouTube.APIKey,
		Endpoint: rc.YouTube.Endpoint,
		Timeout:  rc.YouTube.Timeout,
	}
}

// ProvideSyncConfig builds the explicit orchestrator configuration; credentials are
// copied here so the job never reads the environment itself.
func ProvideSyncConfig(rc RuntimeConfig) services.SyncConfig {
	return services.SyncConfig{
		PlatformAPIKey:  rc.YouTube.APIKey,
		StoreURL:        rc.Database.DSN,
		StoreCredential: rc.Database.ServiceRoleKey,
		BatchSize:       rc.Sync.BatchSize,
		StaleAfter:      rc.Sync.StaleAfter,
		CadenceWindow:   rc.Sync.CadenceWindow,
	}
}

// ProvideMessagingConfig exposes the event publisher settings.
func ProvideMessagingConfig(rc RuntimeConfig) MessagingConfig {
	return rc.Messaging
}

// ProvideMetricsConfig exposes the metrics endpoint settings.
func ProvideMetricsConfig(rc RuntimeConfig) MetricsConfig {
	return rc.Metrics
}
