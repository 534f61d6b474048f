package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/sentinel-mod/dashboard/domain"
)

const (
	// DefaultDiscordAPIBase is the Discord REST API root.
	DefaultDiscordAPIBase = "https://discord.com/api"

	discordAuthorizeURL = "https://discord.com/oauth2/authorize"

	// discordTimeout bounds every outbound Discord call so a wedged
	// upstream cannot pin dashboard requests.
	discordTimeout = 10 * time.Second
)

// DiscordConfig configures the Discord OAuth2 and REST adapter.
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// BotToken authenticates bot-scoped calls (guild membership listing).
	BotToken string
	// APIBase overrides the Discord API root, for tests.
	APIBase string
}

// DiscordClient is the identity-provider adapter: it exchanges OAuth2
// authorization codes and fetches identities and guild lists from Discord.
// Every failure surfaces as ErrUpstreamAuth; callers translate it to a
// generic authentication-failed response.
type DiscordClient struct {
	oauth    *oauth2.Config
	http     *http.Client
	apiBase  string
	botToken string
}

// NewDiscordClient builds the adapter with the identify+guilds scopes the
// dashboard needs.
func NewDiscordClient(cfg DiscordConfig) *DiscordClient {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = DefaultDiscordAPIBase
	}
	return &DiscordClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"identify", "guilds"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   discordAuthorizeURL,
				TokenURL:  apiBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		http:     &http.Client{Timeout: discordTimeout},
		apiBase:  apiBase,
		botToken: cfg.BotToken,
	}
}

// AuthURL returns the authorization URL the frontend redirects users to.
func (c *DiscordClient) AuthURL() string {
	return c.oauth.AuthCodeURL("")
}

// ExchangeCode trades an authorization code for an access/refresh token pair.
func (c *DiscordClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", ErrUpstreamAuth, err)
	}
	return token, nil
}

type discordUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`
	Email         *string `json:"email"`
}

// FetchIdentity returns the authenticated user behind an access token.
// Token fields on the returned User are left for the caller to fill.
func (c *DiscordClient) FetchIdentity(ctx context.Context, accessToken string) (*domain.User, error) {
	var du discordUser
	if err := c.get(ctx, "/users/@me", "Bearer "+accessToken, &du); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:            du.ID,
		Username:      du.Username,
		Discriminator: du.Discriminator,
		Avatar:        du.Avatar,
		Email:         du.Email,
	}, nil
}

// FetchUserGuilds lists the guilds the token's user belongs to, with their
// permission bitfields.
func (c *DiscordClient) FetchUserGuilds(ctx context.Context, accessToken string) ([]domain.Guild, error) {
	var guilds []domain.Guild
	if err := c.get(ctx, "/users/@me/guilds", "Bearer "+accessToken, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// FetchBotGuilds lists the guilds the bot itself is a member of.
func (c *DiscordClient) FetchBotGuilds(ctx context.Context) ([]domain.Guild, error) {
	var guilds []domain.Guild
	if err := c.get(ctx, "/users/@me/guilds", "Bot "+c.botToken, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

func (c *DiscordClient) get(ctx context.Context, path, authorization string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUpstreamAuth, err)
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s: status %d: %s", ErrUpstreamAuth, path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUpstreamAuth, path, err)
	}
	return nil
}
