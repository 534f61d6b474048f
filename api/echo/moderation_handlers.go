package echo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard"
	"github.com/sentinel-mod/dashboard/domain"
	"github.com/sentinel-mod/dashboard/errors"
)

const (
	defaultActionsLimit = 50
	maxActionsLimit     = 200
)

// ListActionsHandler returns one page of a guild's moderation-action log,
// newest first.
func (a *DashboardAPI) ListActionsHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	if p, err := a.checkGuildAccess(c, guildID); p == nil {
		return err
	}

	limit := queryInt(c, "limit", defaultActionsLimit)
	if limit < 1 || limit > maxActionsLimit {
		limit = defaultActionsLimit
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	actions, err := a.actions.ListActions(c.Request().Context(), guildID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to list moderation actions")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to list actions"))
	}
	return c.JSON(http.StatusOK, map[string][]domain.ModerationAction{"actions": actions})
}

// ListWarningsHandler returns the warnings one user accumulated in a guild.
func (a *DashboardAPI) ListWarningsHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	if p, err := a.checkGuildAccess(c, guildID); p == nil {
		return err
	}

	warnings, err := a.actions.ListWarnings(c.Request().Context(), guildID, c.Param("user_id"))
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to list warnings")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to list warnings"))
	}
	return c.JSON(http.StatusOK, map[string][]domain.ModerationAction{"warnings": warnings})
}

// DeleteActionHandler removes one moderation action from a guild's log.
func (a *DashboardAPI) DeleteActionHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	if p, err := a.checkGuildAccess(c, guildID); p == nil {
		return err
	}

	err := a.actions.DeleteAction(c.Request().Context(), guildID, c.Param("action_id"))
	if err == dashboard.ErrNotFound {
		return c.JSON(http.StatusNotFound, errors.NewNotFound("Action not found"))
	}
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to delete moderation action")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to delete action"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Action deleted successfully"})
}

// GlobalStatsHandler returns the global action counters. Bot owner only.
func (a *DashboardAPI) GlobalStatsHandler(c echo.Context) error {
	p := principalFrom(c)
	if !a.authz.IsOwner(p.UserID) {
		return c.JSON(http.StatusForbidden, errors.NewAccessDenied("Access denied"))
	}

	counts, err := a.actions.CountByType(c.Request().Context(), "")
	if err != nil {
		log.Error().Err(err).Msg("Failed to count moderation actions")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to compute stats"))
	}

	// Guild/user counts and uptime live in the bot process; the dashboard
	// has no view of them.
	stats := domain.BotStats{
		Uptime:       "0 days",
		ActionCounts: *counts,
	}
	return c.JSON(http.StatusOK, stats)
}

// GuildStatsHandler returns one guild's action counters.
func (a *DashboardAPI) GuildStatsHandler(c echo.Context) error {
	guildID := c.Param("guild_id")
	if p, err := a.checkGuildAccess(c, guildID); p == nil {
		return err
	}

	counts, err := a.actions.CountByType(c.Request().Context(), guildID)
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to count guild actions")
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to compute stats"))
	}
	return c.JSON(http.StatusOK, domain.GuildStats{
		GuildID:      guildID,
		ActionCounts: *counts,
	})
}

func queryInt(c echo.Context, name string, fallback int64) int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
