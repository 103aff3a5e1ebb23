package server

import (
	"context"
	"fmt"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	kmetrics "github.com/go-kratos/kratos/v2/middleware/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexp "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const telemetryShutdownTimeout = 5 * time.Second

// Telemetry is what the HTTP server reads from the metrics pipeline: the request
// instruments for the kratos middleware and the registry behind /metrics.
type Telemetry struct {
	Registry *prometheus.Registry
	Requests metric.Int64Counter
	Seconds  metric.Float64Histogram
}

// NewTelemetry exports otel metrics through a Prometheus registry and installs the
// provider globally, so the sync counters created by the services land on /metrics too.
func NewTelemetry(meta configloader.ServiceMetadata, logger log.Logger) (*Telemetry, func(), error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := promexp.New(promexp.WithRegisterer(registry), promexp.WithoutUnits())
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(serviceResource(meta)),
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(kmetrics.DefaultSecondsHistogramView(kmetrics.DefaultServerSecondsHistogramName)),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(meta.Name)
	requests, err := kmetrics.DefaultRequestsCounter(meter, kmetrics.DefaultServerRequestsCounterName)
	if err != nil {
		return nil, nil, fmt.Errorf("create request counter: %w", err)
	}
	seconds, err := kmetrics.DefaultSecondsHistogram(meter, kmetrics.DefaultServerSecondsHistogramName)
	if err != nil {
		return nil, nil, fmt.Errorf("create request histogram: %w", err)
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.NewHelper(logger).Warnf("shutdown meter provider: %v", err)
		}
	}
	return &Telemetry{Registry: registry, Requests: requests, Seconds: seconds}, shutdown, nil
}

func serviceResource(meta configloader.ServiceMetadata) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", meta.Name),
		attribute.String("service.version", meta.Version),
		attribute.String("service.instance.id", meta.InstanceID),
		attribute.String("deployment.environment", meta.Environment),
	)
}
