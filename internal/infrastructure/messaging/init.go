package messaging

import "github.com/google/wire"

// ProviderSet exposes the sync event publisher.
var ProviderSet = wire.NewSet(NewPublisher)
