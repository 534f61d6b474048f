package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard"
	"github.com/sentinel-mod/dashboard/domain"
	"github.com/sentinel-mod/dashboard/errors"
)

// ListGuildsHandler returns the guilds the caller can manage through the
// dashboard.
func (a *DashboardAPI) ListGuildsHandler(c echo.Context) error {
	p := principalFrom(c)

	guilds, err := a.authz.AdminGuilds(c.Request().Context(), p)
	if err != nil {
		log.Error().Err(err).Str("user_id", p.UserID).Msg("Failed to list guilds")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to get guilds"))
	}
	return c.JSON(http.StatusOK, map[string][]domain.Guild{"guilds": guilds})
}

// GetSettingsHandler returns a guild's bot settings, synthesizing defaults
// when nothing is stored yet. The defaults are never persisted on read.
func (a *DashboardAPI) GetSettingsHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	if p, err := a.checkGuildAccess(c, guildID); p == nil {
		return err
	}

	settings, err := a.settings.GetSettings(c.Request().Context(), guildID)
	if err == dashboard.ErrNotFound {
		return c.JSON(http.StatusOK, domain.DefaultGuildSettings(guildID))
	}
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to load guild settings")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to load settings"))
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettingsHandler upserts a guild's bot settings. The guild id in the
// path wins over any value in the body.
func (a *DashboardAPI) UpdateSettingsHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	p, err := a.checkGuildAccess(c, guildID)
	if p == nil {
		return err
	}

	var settings domain.GuildSettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("Malformed settings body"))
	}
	if settings.Prefix == "" {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("Prefix must not be empty"))
	}
	settings.GuildID = guildID
	settings.UpdatedBy = p.UserID
	if settings.AIChannels == nil {
		settings.AIChannels = []string{}
	}

	if err := a.settings.UpsertSettings(c.Request().Context(), &settings); err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to update guild settings")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to update settings"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Settings updated successfully"})
}
