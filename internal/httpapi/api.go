package httpapi

import (
	"go.uber.org/zap"

	"daily-departed/internal/content"
)

// Version is the served release string, overridable at build time.
var Version = "0.1.0"

type API struct {
	provider *content.Provider
	log      *zap.SugaredLogger
}

func NewAPI(provider *content.Provider, log *zap.SugaredLogger) *API {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &API{
		provider: provider,
		log:      log,
	}
}
