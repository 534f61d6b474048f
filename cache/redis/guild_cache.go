package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard/domain"
)

// GuildCache implements cache.GuildCache backed by Redis, for deployments
// running more than one dashboard process.
type GuildCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewGuildCache creates a Redis-backed guild cache. prefix namespaces the
// keys; entries expire after ttl.
func NewGuildCache(client *redis.Client, prefix string, ttl time.Duration) *GuildCache {
	return &GuildCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *GuildCache) botKey() string {
	return fmt.Sprintf("%s:guilds:bot", r.prefix)
}

func (r *GuildCache) userKey(userID string) string {
	return fmt.Sprintf("%s:guilds:user:%s", r.prefix, userID)
}

// SetBotGuilds stores the bot's guild-id set as a JSON string value.
func (r *GuildCache) SetBotGuilds(ctx context.Context, guildIDs []string) error {
	payload, err := json.Marshal(guildIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal bot guilds: %w", err)
	}
	if err := r.client.Set(ctx, r.botKey(), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set bot guilds in Redis: %w", err)
	}
	return nil
}

// BotGuilds returns the cached bot guild set, treating any Redis failure as
// a cache miss.
func (r *GuildCache) BotGuilds(ctx context.Context) ([]string, bool) {
	payload, err := r.client.Get(ctx, r.botKey()).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("redis guild cache read failed")
		}
		return nil, false
	}

	var guildIDs []string
	if err := json.Unmarshal(payload, &guildIDs); err != nil {
		return nil, false
	}
	return guildIDs, true
}

// SetUserGuilds stores one user's guild list as a JSON string value.
func (r *GuildCache) SetUserGuilds(ctx context.Context, userID string, guilds []domain.Guild) error {
	payload, err := json.Marshal(guilds)
	if err != nil {
		return fmt.Errorf("failed to marshal user guilds: %w", err)
	}
	if err := r.client.Set(ctx, r.userKey(userID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set user guilds in Redis: %w", err)
	}
	return nil
}

// UserGuilds returns one user's cached guild list, treating any Redis
// failure as a cache miss.
func (r *GuildCache) UserGuilds(ctx context.Context, userID string) ([]domain.Guild, bool) {
	payload, err := r.client.Get(ctx, r.userKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("redis guild cache read failed")
		}
		return nil, false
	}

	var guilds []domain.Guild
	if err := json.Unmarshal(payload, &guilds); err != nil {
		return nil, false
	}
	return guilds, true
}
