package configloader

// Bootstrap mirrors configs/config.yaml. Durations are kept as strings ("5s") and
// parsed during normalization.
type Bootstrap struct {
	Server        *Server        `json:"server"`
	Data          *Data          `json:"data"`
	YouTube       *YouTube       `json:"youtube"`
	Sync          *Sync          `json:"sync"`
	Messaging     *Messaging     `json:"messaging"`
	Observability *Observability `json:"observability"`
}

// Server holds listener settings.
type Server struct {
	HTTP *HTTP `json:"http"`
}

// HTTP is the kratos HTTP server section.
type HTTP struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Data groups storage settings.
type Data struct {
	Postgres *Postgres `json:"postgres"`
}

// Postgres is the Supabase Postgres pool section.
type Postgres struct {
	DSN                      string `json:"dsn"`
	ServiceRoleKey           string `json:"service_role_key"`
	MaxOpenConns             int32  `json:"max_open_conns"`
	MinOpenConns             int32  `json:"min_open_conns"`
	MaxConnLifetime          string `json:"max_conn_lifetime"`
	MaxConnIdleTime          string `json:"max_conn_idle_time"`
	HealthCheckPeriod        string `json:"health_check_period"`
	Schema                   string `json:"schema"`
	EnablePreparedStatements bool   `json:"enable_prepared_statements"`
}

// YouTube configures the Data API client.
type YouTube struct {
	APIKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
	Timeout  string `json:"timeout"`
}

// Sync configures the orchestrator and its scheduler.
type Sync struct {
	BatchSize     int    `json:"batch_size"`
	StaleAfter    string `json:"stale_after"`
	CadenceWindow int    `json:"cadence_window"`
	Schedule      string `json:"schedule"`
	RunTimeout    string `json:"run_timeout"`
}

// Messaging configures the optional Pub/Sub event publisher.
type Messaging struct {
	PubSub *PubSub `json:"pubsub"`
}

// PubSub holds the publisher coordinates.
type PubSub struct {
	ProjectID        string `json:"project_id"`
	TopicID          string `json:"topic_id"`
	EmulatorEndpoint string `json:"emulator_endpoint"`
	PublishTimeout   string `json:"publish_timeout"`
}

// Observability toggles metrics export.
type Observability struct {
	Metrics *Metrics `json:"metrics"`
}

// Metrics configures the Prometheus exporter.
type Metrics struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}
