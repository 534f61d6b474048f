package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard"
	"github.com/sentinel-mod/dashboard/domain"
	"github.com/sentinel-mod/dashboard/errors"
)

// SyncModerationHandler lets the bot process append a moderation action to
// the log. Missing id/timestamp are filled on insert.
func (a *DashboardAPI) SyncModerationHandler(c echo.Context) error {
	var action domain.ModerationAction
	if err := c.Bind(&action); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("Malformed action body"))
	}
	if action.GuildID == "" || action.UserID == "" {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("guild_id and user_id are required"))
	}
	if !action.ActionType.Valid() {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("action_type must be one of warn, ban, kick, mute"))
	}

	if err := a.actions.InsertAction(c.Request().Context(), &action); err != nil {
		log.Error().Err(err).Str("guild_id", action.GuildID).Msg("Failed to sync moderation action")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to sync action"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Action synced"})
}

// BotSettingsHandler returns a guild's settings for the bot process, with
// the same defaults-on-miss behavior the dashboard read path has.
func (a *DashboardAPI) BotSettingsHandler(c echo.Context) error {
	guildID := c.Param("guild_id")

	settings, err := a.settings.GetSettings(c.Request().Context(), guildID)
	if err == dashboard.ErrNotFound {
		return c.JSON(http.StatusOK, domain.DefaultGuildSettings(guildID))
	}
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to load settings for bot")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to load settings"))
	}
	return c.JSON(http.StatusOK, settings)
}
