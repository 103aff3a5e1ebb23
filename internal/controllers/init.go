package controllers

import (
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"

	"github.com/google/wire"
)

// ProviderSet exposes controller/handler constructors for DI.
var ProviderSet = wire.NewSet(
	ProvideHandlerTimeouts,
	NewBaseHandler,
	NewSyncHandler,
	NewNotificationHandler,
	wire.Bind(new(BatchRunner), new(*services.SyncService)),
	wire.Bind(new(NotificationSender), new(*services.NotificationService)),
)

// ProvideHandlerTimeouts maps configuration onto handler timeouts.
func ProvideHandlerTimeouts(rc configloader.RuntimeConfig) HandlerTimeouts {
	return HandlerTimeouts{
		Default: rc.Server.Timeout,
		Job:     rc.Sync.RunTimeout,
	}
}
