package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/sentinel-mod/dashboard/domain"
)

const botGuildsKey = "bot_guilds"

// MemoryGuildCache implements GuildCache using ttlcache.
type MemoryGuildCache struct {
	bot   *ttlcache.Cache[string, []string]
	users *ttlcache.Cache[string, []domain.Guild]
}

// NewMemoryGuildCache creates an in-memory guild cache whose entries expire
// after ttl.
//
//nolint:ireturn
func NewMemoryGuildCache(ttl time.Duration) GuildCache {
	bot := ttlcache.New(
		ttlcache.WithTTL[string, []string](ttl),
		ttlcache.WithDisableTouchOnHit[string, []string](),
	)
	users := ttlcache.New(
		ttlcache.WithTTL[string, []domain.Guild](ttl),
		ttlcache.WithDisableTouchOnHit[string, []domain.Guild](),
	)

	go bot.Start()
	go users.Start()

	return &MemoryGuildCache{bot: bot, users: users}
}

// SetBotGuilds implements GuildCache.SetBotGuilds.
func (c *MemoryGuildCache) SetBotGuilds(_ context.Context, guildIDs []string) error {
	c.bot.Set(botGuildsKey, guildIDs, ttlcache.DefaultTTL)
	return nil
}

// BotGuilds implements GuildCache.BotGuilds.
func (c *MemoryGuildCache) BotGuilds(_ context.Context) ([]string, bool) {
	item := c.bot.Get(botGuildsKey)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// SetUserGuilds implements GuildCache.SetUserGuilds.
func (c *MemoryGuildCache) SetUserGuilds(_ context.Context, userID string, guilds []domain.Guild) error {
	c.users.Set(userID, guilds, ttlcache.DefaultTTL)
	return nil
}

// UserGuilds implements GuildCache.UserGuilds.
func (c *MemoryGuildCache) UserGuilds(_ context.Context, userID string) ([]domain.Guild, bool) {
	item := c.users.Get(userID)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}
