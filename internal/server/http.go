package server

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/controllers"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	kmetrics "github.com/go-kratos/kratos/v2/middleware/metrics"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	functionsPrefix       = "/functions/v1"
	routeSyncYouTube      = "/sync-youtube"
	routeSendNotification = "/send-notification"
	readinessTimeout      = 2 * time.Second
)

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// HTTPServerParams groups the HTTP server dependencies.
type HTTPServerParams struct {
	Server       configloader.ServerConfig
	Metrics      configloader.MetricsConfig
	Telemetry    *Telemetry
	Readiness    ReadinessChecker
	Sync         *controllers.SyncHandler
	Notification *controllers.NotificationHandler
	Logger       log.Logger
}

// NewHTTPServer builds the kratos HTTP server with the function routes, health probes
// and the Prometheus endpoint.
func NewHTTPServer(p HTTPServerParams) *http.Server {
	middlewares := []middleware.Middleware{recovery.Recovery()}
	if p.Telemetry != nil {
		middlewares = append(middlewares, kmetrics.Server(
			kmetrics.WithRequests(p.Telemetry.Requests),
			kmetrics.WithSeconds(p.Telemetry.Seconds),
		))
	}
	middlewares = append(middlewares, logging.Server(p.Logger))

	opts := []http.ServerOption{http.Middleware(middlewares...)}
	if p.Server.Network != "" {
		opts = append(opts, http.Network(p.Server.Network))
	}
	if p.Server.Address != "" {
		opts = append(opts, http.Address(p.Server.Address))
	}
	if p.Server.Timeout > 0 {
		opts = append(opts, http.Timeout(p.Server.Timeout))
	}
	srv := http.NewServer(opts...)

	srv.Handle("/healthz", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
	}))
	srv.Handle("/readyz", readinessHandler(p.Readiness, log.NewHelper(p.Logger)))
	if p.Metrics.Enabled && p.Telemetry != nil {
		srv.Handle(p.Metrics.Path, promhttp.HandlerFor(p.Telemetry.Registry, promhttp.HandlerOpts{}))
	}

	r := srv.Route(functionsPrefix, controllers.CORS())
	if p.Sync != nil {
		r.POST(routeSyncYouTube, p.Sync.Sync)
		r.OPTIONS(routeSyncYouTube, controllers.Preflight)
	}
	if p.Notification != nil {
		r.POST(routeSendNotification, p.Notification.Send)
		r.OPTIONS(routeSendNotification, controllers.Preflight)
	}
	return srv
}

func readinessHandler(checker ReadinessChecker, helper *log.Helper) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if checker == nil {
			w.WriteHeader(stdhttp.StatusOK)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := checker.Ping(ctx); err != nil {
			helper.WithContext(ctx).Warnf("readiness check failed: %v", err)
			w.WriteHeader(stdhttp.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(stdhttp.StatusOK)
	})
}
