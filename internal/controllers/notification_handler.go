package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/controllers/dto"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// OperationSendNotification names the notification endpoint.
const OperationSendNotification = "/functions.v1/SendNotification"

// NotificationSender renders and dispatches one templated email.
type NotificationSender interface {
	Send(ctx context.Context, req *services.NotificationRequest) (*services.Email, error)
}

// NotificationHandler exposes the templated email endpoint.
type NotificationHandler struct {
	*BaseHandler
	svc NotificationSender
	log *log.Helper
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(base *BaseHandler, svc NotificationSender, logger log.Logger) *NotificationHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &NotificationHandler{BaseHandler: base, svc: svc, log: log.NewHelper(logger)}
}

// Send decodes {to, template, data} and renders the email.
func (h *NotificationHandler) Send(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationSendNotification)

	var in dto.NotificationRequest
	if err := ctx.Bind(&in); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.Failed(fmt.Errorf("invalid request body: %w", err)))
	}

	handler := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
		timeoutCtx, cancel := h.WithTimeout(c, HandlerTypeDefault)
		defer cancel()
		return h.svc.Send(timeoutCtx, req.(*dto.NotificationRequest).ToServiceRequest())
	})
	out, err := handler(ctx, &in)
	if err != nil {
		status := http.StatusInternalServerError
		message := err.Error()
		if ke := kerrors.FromError(err); ke != nil {
			if ke.Code >= 400 && ke.Code < 600 {
				status = int(ke.Code)
			}
			message = ke.Message
		}
		h.log.WithContext(ctx).Warnw("msg", "send notification failed", "template", in.Template, "error", err)
		return ctx.JSON(status, dto.Response{Success: false, Error: message})
	}

	email, _ := out.(*services.Email)
	subject := ""
	if email != nil {
		subject = email.Subject
	}
	return ctx.JSON(http.StatusOK, dto.Succeeded(fmt.Sprintf("Notification %q rendered for %s", subject, in.To)))
}
