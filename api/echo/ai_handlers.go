package echo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard/domain"
	"github.com/sentinel-mod/dashboard/errors"
)

// ToggleAIHandler upserts the AI flag for one channel. channel_id and
// enabled come as query parameters.
func (a *DashboardAPI) ToggleAIHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	if p, err := a.checkGuildAccess(c, guildID); p == nil {
		return err
	}

	channelID := c.QueryParam("channel_id")
	if channelID == "" {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("Missing channel_id parameter"))
	}
	enabled, err := strconv.ParseBool(c.QueryParam("enabled"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("Missing or invalid enabled parameter"))
	}

	setting := &domain.AIChannelSetting{
		GuildID:   guildID,
		ChannelID: channelID,
		Enabled:   enabled,
	}
	if err := a.ai.UpsertChannel(c.Request().Context(), setting); err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
			Msg("Failed to toggle AI for channel")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to update AI setting"))
	}

	msg := "AI disabled for channel"
	if enabled {
		msg = "AI enabled for channel"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": msg})
}

// ListAISettingsHandler returns every per-channel AI flag stored for a guild.
func (a *DashboardAPI) ListAISettingsHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	if p, err := a.checkGuildAccess(c, guildID); p == nil {
		return err
	}

	settings, err := a.ai.ListByGuild(c.Request().Context(), guildID)
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to list AI settings")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to list AI settings"))
	}
	return c.JSON(http.StatusOK, map[string][]domain.AIChannelSetting{"ai_settings": settings})
}
