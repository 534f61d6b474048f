package cache

import (
	"context"

	"github.com/sentinel-mod/dashboard/domain"
)

// GuildCache holds short-lived Discord guild-membership data: the set of
// guilds the bot is present in, and per-user guild lists with permission
// bits. Entries expire after the TTL configured on the implementation; a
// miss means the caller refetches from Discord.
type GuildCache interface {
	// SetBotGuilds replaces the cached set of guild ids the bot belongs to.
	SetBotGuilds(ctx context.Context, guildIDs []string) error
	// BotGuilds returns the cached bot guild set, or ok=false on a miss.
	BotGuilds(ctx context.Context) (guildIDs []string, ok bool)

	// SetUserGuilds caches the guild list Discord returned for a user.
	SetUserGuilds(ctx context.Context, userID string, guilds []domain.Guild) error
	// UserGuilds returns a user's cached guild list, or ok=false on a miss.
	UserGuilds(ctx context.Context, userID string) (guilds []domain.Guild, ok bool)
}
