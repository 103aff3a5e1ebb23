// Package main runs the educator sync on a cron schedule, or once with -once.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/tasks/ytsync"

	"github.com/go-kratos/kratos/v2/log"

	_ "go.uber.org/automaxprocs"
)

type ytsyncTaskApp struct {
	Runner *ytsync.Runner
	Logger log.Logger
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	onceFlag := flag.Bool("once", false, "run a single sync batch and exit")
	flag.Parse()

	app, cleanup, err := wireYTSyncTask(ctx, configloader.Params{ConfPath: *confFlag})
	if err != nil {
		panic(err)
	}
	defer cleanup()

	helper := log.NewHelper(app.Logger)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *onceFlag {
		report, err := app.Runner.RunOnce(runCtx)
		if err != nil {
			helper.Errorf("ytsync batch failed: %v", err)
			stop()
			cleanup()
			os.Exit(1)
		}
		helper.Infof("ytsync batch done: processed=%d succeeded=%d failed=%d", report.Processed(), report.Succeeded, report.Failed)
		return
	}

	helper.Info("starting ytsync runner")
	if err := app.Runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		helper.Errorf("ytsync runner stopped unexpectedly: %v", err)
		stop()
		cleanup()
		os.Exit(1)
	}
}
