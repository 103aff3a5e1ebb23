//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/controllers"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/configloader"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/database"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/logger"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/infrastructure/messaging"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/repositories"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/server"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"

	"github.com/go-kratos/kratos/v2"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

// wireApp init kratos application.
func wireApp(context.Context, configloader.Params) (*kratos.App, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		logger.ProviderSet,
		database.ProviderSet,
		repositories.ProviderSet,
		youtube.ProviderSet,
		messaging.ProviderSet,
		wire.Bind(new(services.SyncEventPublisher), new(*messaging.Publisher)),
		services.ProviderSet,
		controllers.ProviderSet,
		server.ProviderSet,
		newApp,
	))
}
