package echo

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard/errors"
)

// LoginHandler returns the Discord OAuth2 authorization URL the frontend
// redirects users to.
func (a *DashboardAPI) LoginHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"url": a.discord.AuthURL()})
}

// CallbackHandler handles the Discord OAuth2 callback: it exchanges the
// code, upserts the identity, issues a session credential and redirects to
// the frontend with the credential in the query string.
//
// Both upstream and internal failures come back as a generic
// authentication-failed response; the cause is only logged here.
func (a *DashboardAPI) CallbackHandler(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError("Missing code parameter"))
	}

	ctx := c.Request().Context()

	token, err := a.discord.ExchangeCode(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("OAuth code exchange failed")
		return c.JSON(http.StatusBadRequest, errors.NewUpstreamAuthFailure())
	}

	user, err := a.discord.FetchIdentity(ctx, token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch Discord identity")
		return c.JSON(http.StatusBadRequest, errors.NewUpstreamAuthFailure())
	}
	user.AccessToken = token.AccessToken
	user.RefreshToken = token.RefreshToken

	if err := a.users.UpsertUser(ctx, user); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to upsert user on login")
		return c.JSON(http.StatusBadRequest, errors.NewUpstreamAuthFailure())
	}

	credential, err := a.sessions.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue session credential")
		return c.JSON(http.StatusBadRequest, errors.NewUpstreamAuthFailure())
	}

	redirect := fmt.Sprintf("%s?token=%s", a.frontendURL, url.QueryEscape(credential))
	return c.Redirect(http.StatusFound, redirect)
}

// MeHandler returns the authenticated caller's identity.
func (a *DashboardAPI) MeHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, userFrom(c))
}
