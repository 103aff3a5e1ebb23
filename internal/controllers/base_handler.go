package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/transport"
)

// HandlerType selects the timeout policy of a handler.
type HandlerType int

const (
	// HandlerTypeDefault covers short request/response handlers.
	HandlerTypeDefault HandlerType = iota
	// HandlerTypeJob covers handlers that run a whole sync batch.
	HandlerTypeJob
)

// HandlerTimeouts groups the per-type timeouts.
type HandlerTimeouts struct {
	Default time.Duration
	Job     time.Duration
}

const (
	fallbackDefaultTimeout = 10 * time.Second
	fallbackJobTimeout     = 10 * time.Minute

	headerClientInfo = "x-client-info"
	headerRequestID  = "x-request-id"
	headerUserAgent  = "user-agent"
)

// BaseHandler provides timeout and header helpers shared by the handlers.
type BaseHandler struct {
	timeouts HandlerTimeouts
}

// NewBaseHandler fills missing timeouts with fallbacks.
func NewBaseHandler(timeouts HandlerTimeouts) *BaseHandler {
	if timeouts.Default <= 0 {
		timeouts.Default = fallbackDefaultTimeout
	}
	if timeouts.Job <= 0 {
		timeouts.Job = fallbackJobTimeout
	}
	return &BaseHandler{timeouts: timeouts}
}

// WithTimeout derives a context bound to the timeout of kind.
//
// Job contexts are detached from the request: a caller that hangs up after
// triggering a batch does not abort the educators already in flight.
func (h *BaseHandler) WithTimeout(ctx context.Context, kind HandlerType) (context.Context, context.CancelFunc) {
	if h == nil {
		h = NewBaseHandler(HandlerTimeouts{})
	}
	switch kind {
	case HandlerTypeJob:
		return context.WithTimeout(context.WithoutCancel(ctx), h.timeouts.Job)
	default:
		return context.WithTimeout(ctx, h.timeouts.Default)
	}
}

// HandlerMetadata holds the caller headers logged with each invocation.
type HandlerMetadata struct {
	ClientInfo string
	RequestID  string
	UserAgent  string
}

// ExtractMetadata reads caller headers from the kratos transport.
func (h *BaseHandler) ExtractMetadata(ctx context.Context) HandlerMetadata {
	tr, ok := transport.FromServerContext(ctx)
	if !ok {
		return HandlerMetadata{}
	}
	header := tr.RequestHeader()
	return HandlerMetadata{
		ClientInfo: strings.TrimSpace(header.Get(headerClientInfo)),
		RequestID:  strings.TrimSpace(header.Get(headerRequestID)),
		UserAgent:  strings.TrimSpace(header.Get(headerUserAgent)),
	}
}
