// Package configloader 负责加载 configs/config.yaml、.env 文件与环境变量覆盖，
// 并归一化为 RuntimeConfig。
package configloader

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/joho/godotenv"
)

const (
	envServiceName    = "SERVICE_NAME"
	envServiceVersion = "SERVICE_VERSION"
	envAppEnv         = "APP_ENV"
	envDatabaseURL    = "DATABASE_URL"
	envServiceRoleKey = "SUPABASE_SERVICE_ROLE_KEY"
	envYouTubeAPIKey  = "YOUTUBE_API_KEY"
	envPort           = "PORT"
	envPubSubProject  = "PUBSUB_PROJECT_ID"
)

var envFileNames = []string{".env.local", ".env"}

// Params carries the runtime inputs of Load.
type Params struct {
	ConfPath string // config file or directory; empty falls back to CONF_PATH, then "configs"
}

// BuildError records which stage of configuration loading failed.
type BuildError struct {
	Stage string
	Path  string
	Err   error
}

func (e BuildError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying error.
func (e BuildError) Unwrap() error {
	return e.Err
}

// Load 构建 RuntimeConfig。
//
// 流程：
// 1. 解析配置路径（flag > CONF_PATH > configs）
// 2. 加载 .env.local/.env（不覆盖已有环境变量）
// 3. 读取并解码 YAML，应用环境变量覆盖（stage: load / scan）
// 4. 解析时长、填充默认值（stage: normalize）
// 5. 校验必填凭证（stage: validate）
func Load(params Params) (RuntimeConfig, error) {
	// 1-2. 配置路径与 .env
	confPath := ResolveConfPath(params.ConfPath)
	loadEnvFiles(confPath)

	// 3. 读取配置
	bootstrap, err := loadBootstrap(confPath)
	if err != nil {
		return RuntimeConfig{}, err
	}

	// 4. 归一化
	rc, err := fromBootstrap(bootstrap)
	if err != nil {
		return RuntimeConfig{}, BuildError{Stage: "normalize", Path: confPath, Err: err}
	}
	rc.Service = buildServiceMetadata()

	// 5. 校验
	if err := rc.Validate(); err != nil {
		return RuntimeConfig{}, BuildError{Stage: "validate", Path: confPath, Err: err}
	}
	return rc, nil
}

// ResolveConfPath 按 flag > CONF_PATH > 默认值 的顺序解析配置路径。
func ResolveConfPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env
	}
	return defaultConfPath
}

func loadBootstrap(confPath string) (*Bootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, BuildError{Stage: "load", Path: confPath, Err: err}
	}
	defer c.Close()

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, BuildError{Stage: "scan", Path: confPath, Err: err}
	}
	applyEnvOverrides(&bc)
	return &bc, nil
}

// applyEnvOverrides lets secrets and platform-assigned values come from the environment.
// Empty variables never override the file. Missing sections are created so a bare
// config file plus environment is enough to run.
func applyEnvOverrides(bc *Bootstrap) {
	if bc == nil {
		return
	}
	if bc.Data == nil {
		bc.Data = &Data{}
	}
	if bc.Data.Postgres == nil {
		bc.Data.Postgres = &Postgres{}
	}
	if dsn := os.Getenv(envDatabaseURL); dsn != "" {
		bc.Data.Postgres.DSN = dsn
	}
	if key := os.Getenv(envServiceRoleKey); key != "" {
		bc.Data.Postgres.ServiceRoleKey = key
	}

	if bc.YouTube == nil {
		bc.YouTube = &YouTube{}
	}
	if key := os.Getenv(envYouTubeAPIKey); key != "" {
		bc.YouTube.APIKey = key
	}

	if port := os.Getenv(envPort); port != "" {
		if bc.Server == nil {
			bc.Server = &Server{}
		}
		if bc.Server.HTTP == nil {
			bc.Server.HTTP = &HTTP{}
		}
		bc.Server.HTTP.Addr = replacePort(bc.Server.HTTP.Addr, port)
	}

	if project := os.Getenv(envPubSubProject); project != "" {
		if bc.Messaging == nil {
			bc.Messaging = &Messaging{}
		}
		if bc.Messaging.PubSub == nil {
			bc.Messaging.PubSub = &PubSub{}
		}
		bc.Messaging.PubSub.ProjectID = project
	}
}

func replacePort(addr, port string) string {
	if addr == "" {
		return net.JoinHostPort("0.0.0.0", port)
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return net.JoinHostPort("0.0.0.0", port)
	}
	return net.JoinHostPort(host, port)
}

func buildServiceMetadata() ServiceMetadata {
	host, _ := os.Hostname()
	return ServiceMetadata{
		Name:        firstNonEmpty(os.Getenv(envServiceName), defaultServiceName),
		Version:     firstNonEmpty(os.Getenv(envServiceVersion), defaultServiceVersion),
		Environment: firstNonEmpty(os.Getenv(envAppEnv), defaultEnvironment),
		InstanceID:  firstNonEmpty(host, "unknown"),
	}
}

// loadEnvFiles loads .env.local/.env next to the config and in the cwd, best effort.
// godotenv never overrides variables that are already set.
func loadEnvFiles(confPath string) {
	files := envFileCandidates(confPath)
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

func envFileCandidates(confPath string) []string {
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range orderedDirs(confPath) {
		for _, name := range envFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			files = append(files, candidate)
			seen[candidate] = struct{}{}
		}
	}
	return files
}

func orderedDirs(confPath string) []string {
	var dirs []string
	appendUnique := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		for _, existing := range dirs {
			if existing == clean {
				return
			}
		}
		dirs = append(dirs, clean)
	}

	if confPath != "" {
		if info, err := os.Stat(confPath); err == nil {
			if info.IsDir() {
				appendUnique(confPath)
			} else {
				appendUnique(filepath.Dir(confPath))
			}
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		appendUnique(cwd)
	}
	return dirs
}

// Validate checks the settings every binary needs.
func (c RuntimeConfig) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Database.DSN) == "" {
		problems = append(problems, "data.postgres.dsn is required (set DATABASE_URL)")
	}
	if strings.TrimSpace(c.YouTube.APIKey) == "" {
		problems = append(problems, "youtube.api_key is required (set YOUTUBE_API_KEY)")
	}
	if c.Sync.BatchSize < 0 {
		problems = append(problems, "sync.batch_size must not be negative")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
