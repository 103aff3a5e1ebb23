package ytsync

import (
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet exposes the scheduled runner.
var ProviderSet = wire.NewSet(ProvideRunner)

// ProvideRunner assembles the runner from configuration.
func ProvideRunner(svc *services.SyncService, rc configloader.RuntimeConfig, logger log.Logger) (*Runner, error) {
	return NewRunner(RunnerParams{
		Job:        svc,
		Schedule:   rc.Sync.Schedule,
		RunTimeout: rc.Sync.RunTimeout,
		RunOnStart: true,
		Logger:     logger,
	})
}
