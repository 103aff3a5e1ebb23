package configloader

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// RuntimeConfig is the normalized configuration handed to providers.
type RuntimeConfig struct {
	Service   ServiceMetadata
	Server    ServerConfig
	Database  DatabaseConfig
	YouTube   YouTubeConfig
	Sync      SyncConfig
	Messaging MessagingConfig
	Metrics   MetricsConfig
}

// ServiceMetadata identifies the running process in logs and metrics.
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Network string
	Address string
	Timeout time.Duration
}

// DatabaseConfig configures the pgx pool.
type DatabaseConfig struct {
	DSN               string
	ServiceRoleKey    string
	MaxOpenConns      int32
	MinOpenConns      int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	Schema            string
	PreparedStmts     bool
}

// YouTubeConfig configures the Data API client.
type YouTubeConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// SyncConfig configures the orchestrator and the scheduled runner.
type SyncConfig struct {
	BatchSize     int
	StaleAfter    time.Duration
	CadenceWindow int
	Schedule      string
	RunTimeout    time.Duration
}

// MessagingConfig configures the sync event publisher. An empty TopicID disables it.
type MessagingConfig struct {
	ProjectID        string
	TopicID          string
	EmulatorEndpoint string
	PublishTimeout   time.Duration
}

// Enabled reports whether events should be published.
func (m MessagingConfig) Enabled() bool {
	return m.ProjectID != "" && m.TopicID != ""
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

func fromBootstrap(b *Bootstrap) (RuntimeConfig, error) {
	var (
		rc  RuntimeConfig
		err error
	)
	if b == nil {
		b = &Bootstrap{}
	}

	rc.Server = ServerConfig{Network: defaultHTTPNetwork, Address: defaultHTTPAddr, Timeout: defaultHTTPTimeout}
	if b.Server != nil && b.Server.HTTP != nil {
		h := b.Server.HTTP
		rc.Server.Network = firstNonEmpty(h.Network, defaultHTTPNetwork)
		rc.Server.Address = firstNonEmpty(h.Addr, defaultHTTPAddr)
		if rc.Server.Timeout, err = parseDuration("server.http.timeout", h.Timeout, defaultHTTPTimeout); err != nil {
			return rc, err
		}
	}

	if b.Data != nil && b.Data.Postgres != nil {
		pg := b.Data.Postgres
		rc.Database = DatabaseConfig{
			DSN:            pg.DSN,
			ServiceRoleKey: pg.ServiceRoleKey,
			MaxOpenConns:   pg.MaxOpenConns,
			MinOpenConns:   pg.MinOpenConns,
			Schema:         pg.Schema,
			PreparedStmts:  pg.EnablePreparedStatements,
		}
		if rc.Database.MaxConnLifetime, err = parseDuration("data.postgres.max_conn_lifetime", pg.MaxConnLifetime, 0); err != nil {
			return rc, err
		}
		if rc.Database.MaxConnIdleTime, err = parseDuration("data.postgres.max_conn_idle_time", pg.MaxConnIdleTime, 0); err != nil {
			return rc, err
		}
		if rc.Database.HealthCheckPeriod, err = parseDuration("data.postgres.health_check_period", pg.HealthCheckPeriod, 0); err != nil {
			return rc, err
		}
	}

	rc.YouTube.Timeout = defaultYouTubeTimeout
	if yt := b.YouTube; yt != nil {
		rc.YouTube.APIKey = yt.APIKey
		rc.YouTube.Endpoint = yt.Endpoint
		if rc.YouTube.Timeout, err = parseDuration("youtube.timeout", yt.Timeout, defaultYouTubeTimeout); err != nil {
			return rc, err
		}
	}

	rc.Sync = SyncConfig{
		BatchSize:     defaultSyncBatchSize,
		StaleAfter:    defaultSyncStaleAfter,
		CadenceWindow: defaultSyncCadenceWindow,
		Schedule:      defaultSyncSchedule,
		RunTimeout:    defaultSyncRunTimeout,
	}
	if s := b.Sync; s != nil {
		if s.BatchSize != 0 {
			rc.Sync.BatchSize = s.BatchSize
		}
		if s.CadenceWindow > 0 {
			rc.Sync.CadenceWindow = s.CadenceWindow
		}
		rc.Sync.Schedule = firstNonEmpty(s.Schedule, defaultSyncSchedule)
		if _, err := cron.ParseStandard(rc.Sync.Schedule); err != nil {
			return rc, fmt.Errorf("sync.schedule %q: %w", rc.Sync.Schedule, err)
		}
		if rc.Sync.StaleAfter, err = parseDuration("sync.stale_after", s.StaleAfter, defaultSyncStaleAfter); err != nil {
			return rc, err
		}
		if rc.Sync.RunTimeout, err = parseDuration("sync.run_timeout", s.RunTimeout, defaultSyncRunTimeout); err != nil {
			return rc, err
		}
	}

	rc.Messaging.PublishTimeout = defaultPublishTimeout
	if b.Messaging != nil && b.Messaging.PubSub != nil {
		ps := b.Messaging.PubSub
		rc.Messaging.ProjectID = ps.ProjectID
		rc.Messaging.TopicID = ps.TopicID
		rc.Messaging.EmulatorEndpoint = ps.EmulatorEndpoint
		if rc.Messaging.PublishTimeout, err = parseDuration("messaging.pubsub.publish_timeout", ps.PublishTimeout, defaultPublishTimeout); err != nil {
			return rc, err
		}
	}

	rc.Metrics = MetricsConfig{Enabled: true, Path: defaultMetricsPath}
	if b.Observability != nil && b.Observability.Metrics != nil {
		m := b.Observability.Metrics
		rc.Metrics.Enabled = m.Enabled
		rc.Metrics.Path = firstNonEmpty(m.Path, defaultMetricsPath)
	}
	return rc, nil
}

func parseDuration(field, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}
