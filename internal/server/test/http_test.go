package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/controllers"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/controllers/dto"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/server"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type stubRunner struct {
	report *vo.SyncBatchReport
	err    error
	calls  int
}

func (s *stubRunner) RunBatch(ctx context.Context) (*vo.SyncBatchReport, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.report, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newServer(t *testing.T, runner controllers.BatchRunner, pinger server.ReadinessChecker) http.Handler {
	t.Helper()
	logger := log.NewStdLogger(io.Discard)
	telemetry, cleanup, err := server.NewTelemetry(configloader.ServiceMetadata{Name: "educator-sync-test"}, logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	base := controllers.NewBaseHandler(controllers.HandlerTimeouts{})
	notifications := services.NewNotificationService(services.NewLogMailer(logger), logger)
	return server.NewHTTPServer(server.HTTPServerParams{
		Server:       configloader.ServerConfig{Address: "127.0.0.1:0"},
		Metrics:      configloader.MetricsConfig{Enabled: true, Path: "/metrics"},
		Telemetry:    telemetry,
		Readiness:    pinger,
		Sync:         controllers.NewSyncHandler(base, runner, logger),
		Notification: controllers.NewNotificationHandler(base, notifications, logger),
		Logger:       logger,
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var body dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestSyncEndpoint_Success(t *testing.T) {
	report := &vo.SyncBatchReport{}
	report.Add(&vo.EducatorSyncResult{Status: po.HistoryStatusCompleted})
	report.Add(&vo.EducatorSyncResult{Status: po.HistoryStatusFailed, Error: "boom"})
	runner := &stubRunner{report: report}
	srv := newServer(t, runner, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/functions/v1/sync-youtube", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	body := decode(t, rec)
	require.True(t, body.Success)
	require.Contains(t, body.Message, "2 educators processed (1 succeeded, 1 failed)")
	require.Empty(t, body.Error)
	require.Equal(t, 1, runner.calls)
}

func TestSyncEndpoint_SelectionFailure(t *testing.T) {
	srv := newServer(t, &stubRunner{err: errors.New("select educators: connection refused")}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/functions/v1/sync-youtube", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	require.False(t, body.Success)
	require.Contains(t, body.Error, "connection refused")
}

func TestSyncEndpoint_InterruptedBatchAnswersOK(t *testing.T) {
	report := &vo.SyncBatchReport{Interrupted: true, Skipped: 3}
	report.Add(&vo.EducatorSyncResult{Status: po.HistoryStatusFailed, Error: "fetch video details: context deadline exceeded"})
	srv := newServer(t, &stubRunner{report: report}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/functions/v1/sync-youtube", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.True(t, body.Success)
	require.Contains(t, body.Message, "interrupted")
	require.Contains(t, body.Message, "3 left for the next run")
}

func TestSyncEndpoint_Preflight(t *testing.T) {
	runner := &stubRunner{}
	srv := newServer(t, runner, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/functions/v1/sync-youtube", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "x-client-info")
	require.Zero(t, runner.calls)
}

func TestNotificationEndpoint(t *testing.T) {
	srv := newServer(t, &stubRunner{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/send-notification",
		strings.NewReader(`{"to":"ada@example.com","template":"welcome","data":{"name":"Ada"}}`))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.True(t, body.Success)
	require.Contains(t, body.Message, "ada@example.com")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/functions/v1/send-notification",
		strings.NewReader(`{"to":"ada@example.com","template":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode(t, rec)
	require.False(t, body.Success)
	require.Contains(t, body.Error, "unknown template")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newServer(t, &stubRunner{}, stubPinger{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	down := newServer(t, &stubRunner{}, stubPinger{err: errors.New("pool closed")})
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t, &stubRunner{report: &vo.SyncBatchReport{}}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/functions/v1/sync-youtube", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMetricsEndpointExportsSyncCounters(t *testing.T) {
	srv := newServer(t, &stubRunner{report: &vo.SyncBatchReport{}}, nil)

	counter, err := otel.GetMeterProvider().Meter("educator-sync").Int64Counter("ytsync_educator_success_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/functions/v1/sync-youtube", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "ytsync_educator_success")
	require.Contains(t, body, "server_requests_code")
	require.Contains(t, body, `service_name="educator-sync-test"`)
}
