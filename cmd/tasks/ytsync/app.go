package main

import (
	"fmt"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/tasks/ytsync"

	"github.com/go-kratos/kratos/v2/log"
)

func newYTSyncTaskApp(logger log.Logger, runner *ytsync.Runner) (*ytsyncTaskApp, error) {
	if logger == nil || runner == nil {
		return nil, fmt.Errorf("ytsync task: logger and runner are required")
	}
	return &ytsyncTaskApp{Runner: runner, Logger: logger}, nil
}
