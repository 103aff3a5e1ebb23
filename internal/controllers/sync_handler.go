package controllers

import (
	"context"
	"net/http"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/controllers/dto"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// OperationSyncYouTube names the sync trigger in middleware logs and metrics.
const OperationSyncYouTube = "/functions.v1/SyncYouTube"

// BatchRunner runs one sync invocation.
type BatchRunner interface {
	RunBatch(ctx context.Context) (*vo.SyncBatchReport, error)
}

// SyncHandler exposes the sync job over HTTP for the external cron trigger.
type SyncHandler struct {
	*BaseHandler
	runner BatchRunner
	log    *log.Helper
}

// NewSyncHandler constructs SyncHandler.
func NewSyncHandler(base *BaseHandler, runner BatchRunner, logger log.Logger) *SyncHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &SyncHandler{BaseHandler: base, runner: runner, log: log.NewHelper(logger)}
}

// Sync runs one batch. Per-educator failures and an interrupted batch still answer
// 200; only a failure to select educators answers 500.
func (h *SyncHandler) Sync(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationSyncYouTube)
	meta := h.ExtractMetadata(ctx)

	handler := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		runCtx, cancel := h.WithTimeout(c, HandlerTypeJob)
		defer cancel()
		return h.runner.RunBatch(runCtx)
	})
	out, err := handler(ctx, nil)
	if err != nil {
		h.log.WithContext(ctx).Errorw("msg", "youtube sync failed", "request_id", meta.RequestID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, dto.Failed(err))
	}

	report, _ := out.(*vo.SyncBatchReport)
	if report != nil && report.Interrupted {
		h.log.WithContext(ctx).Warnw("msg", "youtube sync interrupted", "request_id", meta.RequestID, "skipped", report.Skipped)
	}
	return ctx.JSON(http.StatusOK, dto.Succeeded(dto.SyncMessage(report)))
}
