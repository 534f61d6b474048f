package domain

import "time"

// AIChannelSetting is the per-channel AI toggle, keyed by (guild, channel).
type AIChannelSetting struct {
	GuildID   string    `bson:"guild_id" json:"guild_id"`
	ChannelID string    `bson:"channel_id" json:"channel_id"`
	Enabled   bool      `bson:"enabled" json:"enabled"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
