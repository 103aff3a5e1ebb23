//go:build wireinject
// +build wireinject

// Package main provides the wire injector for the ytsync task.
package main

import (
	"context"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/database"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/logger"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/messaging"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/repositories"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/tasks/ytsync"

	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

func wireYTSyncTask(context.Context, configloader.Params) (*ytsyncTaskApp, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		logger.ProviderSet,
		database.ProviderSet,
		repositories.ProviderSet,
		youtube.ProviderSet,
		messaging.ProviderSet,
		wire.Bind(new(services.SyncEventPublisher), new(*messaging.Publisher)),
		services.ProviderSet,
		ytsync.ProviderSet,
		newYTSyncTaskApp,
	))
}
