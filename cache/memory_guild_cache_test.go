package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-mod/dashboard/domain"
)

func TestMemoryGuildCacheBotGuilds(t *testing.T) {
	c := NewMemoryGuildCache(time.Minute)
	ctx := context.Background()

	_, ok := c.BotGuilds(ctx)
	assert.False(t, ok, "expected a miss before any set")

	require.NoError(t, c.SetBotGuilds(ctx, []string{"G1", "G2"}))

	ids, ok := c.BotGuilds(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"G1", "G2"}, ids)
}

func TestMemoryGuildCacheUserGuilds(t *testing.T) {
	c := NewMemoryGuildCache(time.Minute)
	ctx := context.Background()

	_, ok := c.UserGuilds(ctx, "U1")
	assert.False(t, ok)

	guilds := []domain.Guild{{ID: "G1", Name: "guild one", Permissions: "8"}}
	require.NoError(t, c.SetUserGuilds(ctx, "U1", guilds))

	got, ok := c.UserGuilds(ctx, "U1")
	require.True(t, ok)
	assert.Equal(t, guilds, got)

	// Other users stay isolated.
	_, ok = c.UserGuilds(ctx, "U2")
	assert.False(t, ok)
}

func TestMemoryGuildCacheEntriesExpire(t *testing.T) {
	c := NewMemoryGuildCache(50 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.SetBotGuilds(ctx, []string{"G1"}))
	require.NoError(t, c.SetUserGuilds(ctx, "U1", []domain.Guild{{ID: "G1"}}))

	time.Sleep(120 * time.Millisecond)

	_, ok := c.BotGuilds(ctx)
	assert.False(t, ok, "bot guild entry should have expired")
	_, ok = c.UserGuilds(ctx, "U1")
	assert.False(t, ok, "user guild entry should have expired")
}
