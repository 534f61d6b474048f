package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiscord(t *testing.T, handler http.Handler) *DiscordClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewDiscordClient(DiscordConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8001/api/auth/callback",
		BotToken:     "bot-token",
		APIBase:      srv.URL,
	})
}

func TestExchangeCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.FormValue("grant_type"))
		assert.Equal(t, "the-code", r.FormValue("code"))
		assert.Equal(t, "client-id", r.FormValue("client_id"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-123",
			"refresh_token": "refresh-456",
			"token_type":    "Bearer",
			"expires_in":    604800,
		})
	})

	client := newTestDiscord(t, mux)
	token, err := client.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "access-123", token.AccessToken)
	assert.Equal(t, "refresh-456", token.RefreshToken)
}

func TestExchangeCodeUpstreamFailure(t *testing.T) {
	client := newTestDiscord(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))

	_, err := client.ExchangeCode(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrUpstreamAuth)
}

func TestFetchIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "42",
			"username":      "someone",
			"discriminator": "0420",
			"avatar":        "abc123",
			"email":         "someone@example.com",
		})
	})

	client := newTestDiscord(t, mux)
	user, err := client.FetchIdentity(context.Background(), "access-123")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "someone", user.Username)
	assert.Equal(t, "0420", user.Discriminator)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, "abc123", *user.Avatar)
	require.NotNil(t, user.Email)
	assert.Equal(t, "someone@example.com", *user.Email)
}

func TestFetchIdentityUnauthorized(t *testing.T) {
	client := newTestDiscord(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"401: Unauthorized"}`, http.StatusUnauthorized)
	}))

	_, err := client.FetchIdentity(context.Background(), "stale-token")
	assert.ErrorIs(t, err, ErrUpstreamAuth)
}

func TestFetchUserGuilds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "G1", "name": "guild one", "owner": false, "permissions": "8"},
			{"id": "G2", "name": "guild two", "owner": true, "permissions": "2147483647"},
		})
	})

	client := newTestDiscord(t, mux)
	guilds, err := client.FetchUserGuilds(context.Background(), "access-123")
	require.NoError(t, err)
	require.Len(t, guilds, 2)
	assert.Equal(t, "G1", guilds[0].ID)
	assert.Equal(t, "8", guilds[0].Permissions)
	assert.True(t, guilds[1].Owner)
}

func TestFetchBotGuildsUsesBotAuthorization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bot bot-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "G1", "name": "guild one", "permissions": "8"},
		})
	})

	client := newTestDiscord(t, mux)
	guilds, err := client.FetchBotGuilds(context.Background())
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, "G1", guilds[0].ID)
}

func TestAuthURLCarriesScopes(t *testing.T) {
	client := NewDiscordClient(DiscordConfig{
		ClientID:    "client-id",
		RedirectURI: "http://localhost:8001/api/auth/callback",
	})

	url := client.AuthURL()
	assert.Contains(t, url, discordAuthorizeURL)
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "identify+guilds")
}
