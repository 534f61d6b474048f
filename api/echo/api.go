package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sentinel-mod/dashboard"
	"github.com/sentinel-mod/dashboard/domain"
)

// DashboardAPI holds the handlers' dependencies.
type DashboardAPI struct {
	sessions *dashboard.SessionService
	authz    *dashboard.Authorizer
	discord  *dashboard.DiscordClient

	users    domain.UserRepository
	settings domain.GuildSettingsRepository
	actions  domain.ModerationRepository
	ai       domain.AISettingsRepository

	frontendURL  string
	botSyncToken string
}

// NewDashboardAPI initializes the dashboard HTTP API.
func NewDashboardAPI(
	sessions *dashboard.SessionService,
	authz *dashboard.Authorizer,
	discord *dashboard.DiscordClient,
	users domain.UserRepository,
	settings domain.GuildSettingsRepository,
	actions domain.ModerationRepository,
	ai domain.AISettingsRepository,
	frontendURL string,
	botSyncToken string,
) *DashboardAPI {
	return &DashboardAPI{
		sessions:     sessions,
		authz:        authz,
		discord:      discord,
		users:        users,
		settings:     settings,
		actions:      actions,
		ai:           ai,
		frontendURL:  frontendURL,
		botSyncToken: botSyncToken,
	}
}

// RegisterRoutes registers the dashboard routes under /api.
func (a *DashboardAPI) RegisterRoutes(e *echo.Echo) {
	e.GET("/", a.RootHandler)

	api := e.Group("/api")

	api.GET("/auth/login", a.LoginHandler)
	api.GET("/auth/callback", a.CallbackHandler)
	api.GET("/health", a.HealthHandler)

	protected := api.Group("", a.RequireSession)
	protected.GET("/auth/me", a.MeHandler)
	protected.GET("/guilds", a.ListGuildsHandler)
	protected.GET("/guilds/:guild_id/settings", a.GetSettingsHandler)
	protected.POST("/guilds/:guild_id/settings", a.UpdateSettingsHandler)
	protected.GET("/guilds/:guild_id/moderation/actions", a.ListActionsHandler)
	protected.GET("/guilds/:guild_id/moderation/users/:user_id/warnings", a.ListWarningsHandler)
	protected.DELETE("/guilds/:guild_id/moderation/actions/:action_id", a.DeleteActionHandler)
	protected.GET("/stats", a.GlobalStatsHandler)
	protected.GET("/guilds/:guild_id/stats", a.GuildStatsHandler)
	protected.POST("/guilds/:guild_id/ai/toggle", a.ToggleAIHandler)
	protected.GET("/guilds/:guild_id/ai/settings", a.ListAISettingsHandler)

	bot := api.Group("/bot", a.RequireBotToken)
	bot.POST("/sync/moderation", a.SyncModerationHandler)
	bot.GET("/settings/:guild_id", a.BotSettingsHandler)
}

// RootHandler serves the service banner.
func (a *DashboardAPI) RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Discord Bot Dashboard API",
		"version": "1.0.0",
	})
}

// HealthHandler is the liveness probe.
func (a *DashboardAPI) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}
