package database

import "github.com/google/wire"

// ProviderSet exposes the pool constructor for wire.
var ProviderSet = wire.NewSet(
	NewPgxPool,
)
