package youtube

import "github.com/google/wire"

// ProviderSet exposes the Data API client constructor.
var ProviderSet = wire.NewSet(NewClient)
