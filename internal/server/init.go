// Package server assembles the kratos transports.
package server

import (
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(
	NewTelemetry,
	wire.Bind(new(ReadinessChecker), new(*pgxpool.Pool)),
	wire.Struct(new(HTTPServerParams), "*"),
	NewHTTPServer,
)
