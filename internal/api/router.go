package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"lineup-rotation-backend/config"
	"lineup-rotation-backend/internal/mw"
	"lineup-rotation-backend/internal/notification"
	"lineup-rotation-backend/internal/playback"
	"lineup-rotation-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, pb *playback.Manager, workers *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	db := s.DB()
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	handler := NewHandler(s, webpushOptions, pb, workers, cacheStore, cfg.Defaults)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/teams", ListTeams(db))
		api.POST("/teams", handler.CreateTeam)
		api.GET("/teams/:team_id", handler.GetTeam)
		api.PUT("/teams/:team_id/settings", handler.UpdateSettings)

		api.GET("/teams/:team_id/roster", handler.GetRoster)
		api.POST("/teams/:team_id/roster", handler.AddMember)
		api.POST("/teams/:team_id/roster/bulk", handler.AddMembersBulk)
		api.DELETE("/teams/:team_id/roster/:name", handler.RemoveMember)
		api.POST("/teams/:team_id/roster/:name/tier", handler.ToggleMemberTier)

		api.POST("/teams/:team_id/schedule", handler.GenerateSchedule)
		api.GET("/teams/:team_id/schedule", caching, handler.GetSchedule)

		api.GET("/teams/:team_id/playback", handler.GetPlayback)
		api.POST("/teams/:team_id/playback/start", handler.StartPlayback)
		api.POST("/teams/:team_id/playback/pause", handler.PausePlayback)
		api.POST("/teams/:team_id/playback/reset", handler.ResetPlayback)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
