package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"daily-departed/internal/content"
)

func NewRouter(provider *content.Provider, log *zap.SugaredLogger) http.Handler {
	api := NewAPI(provider, log)

	mux := httprouter.New()
	mux.GET("/days/:file", api.HandleDay)
	mux.GET("/manifest.json", api.HandleManifest)
	mux.GET("/healthz", api.HandleHealth)
	mux.GET("/version", api.HandleVersion)

	return mux
}
