package echo

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard"
	"github.com/sentinel-mod/dashboard/domain"
	"github.com/sentinel-mod/dashboard/errors"
)

const (
	principalContextKey = "principal"
	userContextKey      = "current_user"

	// botTokenHeader carries the shared secret the bot process presents on
	// /bot/... routes.
	botTokenHeader = "X-Bot-Token"
)

// RequireSession verifies the bearer session credential and loads the
// caller's user record. A verified credential whose user record is gone is
// rejected: the record is the source of the Discord access token every
// guild check needs.
func (a *DashboardAPI) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, errors.NewInvalidCredential("Missing Authorization header"))
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.JSON(http.StatusUnauthorized, errors.NewInvalidCredential("Expected Bearer credential"))
		}

		claims, err := a.sessions.Verify(parts[1])
		if err != nil {
			if err == dashboard.ErrTokenExpired {
				return c.JSON(http.StatusUnauthorized, errors.NewExpiredCredential())
			}
			return c.JSON(http.StatusUnauthorized, errors.NewInvalidCredential("Invalid session credential"))
		}

		user, err := a.users.GetUserByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if err == dashboard.ErrNotFound {
				return c.JSON(http.StatusUnauthorized, errors.NewInvalidCredential("User not found"))
			}
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to load session user")
			return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to load user"))
		}

		c.Set(userContextKey, user)
		c.Set(principalContextKey, &dashboard.Principal{
			UserID:      user.ID,
			Username:    user.Username,
			AccessToken: user.AccessToken,
		})
		return next(c)
	}
}

// RequireBotToken guards the bot sync routes with a shared secret. An empty
// configured secret leaves the routes open; main logs a warning in that case.
func (a *DashboardAPI) RequireBotToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if a.botSyncToken == "" {
			return next(c)
		}

		presented := c.Request().Header.Get(botTokenHeader)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(a.botSyncToken)) != 1 {
			return c.JSON(http.StatusUnauthorized, errors.NewInvalidCredential("Invalid bot token"))
		}
		return next(c)
	}
}

func principalFrom(c echo.Context) *dashboard.Principal {
	p, _ := c.Get(principalContextKey).(*dashboard.Principal)
	return p
}

func userFrom(c echo.Context) *domain.User {
	u, _ := c.Get(userContextKey).(*domain.User)
	return u
}

// checkGuildAccess runs the authorization gate for a guild-scoped route.
// On refusal it writes the response and returns a nil principal; callers
// return the accompanying error as-is.
func (a *DashboardAPI) checkGuildAccess(c echo.Context, guildID string) (*dashboard.Principal, error) {
	p := principalFrom(c)
	if p == nil {
		return nil, c.JSON(http.StatusUnauthorized, errors.NewInvalidCredential("Missing session"))
	}

	allowed, err := a.authz.CanAdminister(c.Request().Context(), p, guildID)
	if err != nil {
		// The decision could not be made; deny without leaking the cause.
		log.Error().Err(err).Str("guild_id", guildID).Str("user_id", p.UserID).
			Msg("guild authorization check failed")
		return nil, c.JSON(http.StatusForbidden, errors.NewAccessDenied("Access denied"))
	}
	if !allowed {
		return nil, c.JSON(http.StatusForbidden, errors.NewAccessDenied("Access denied"))
	}
	return p, nil
}
