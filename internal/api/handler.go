package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"lineup-rotation-backend/config"
	"lineup-rotation-backend/internal/notification"
	"lineup-rotation-backend/internal/playback"
	"lineup-rotation-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	playback *playback.Manager
	workers  *notification.WorkerPool
	cache    *cache.Cache
	defaults config.DefaultsConfig
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, webpushOptions *webpush.Options, pb *playback.Manager, workers *notification.WorkerPool, cacheStore *cache.Cache, defaults config.DefaultsConfig) *Handler {
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		playback: pb,
		workers:  workers,
		cache:    cacheStore,
		defaults: defaults,
	}
}
