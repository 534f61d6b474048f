package domain

import "context"

// UserRepository stores dashboard users.
type UserRepository interface {
	// UpsertUser inserts or replaces the user keyed by user.ID.
	UpsertUser(ctx context.Context, user *User) error
	// GetUserByID returns ErrNotFound when no record exists.
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// GuildSettingsRepository stores per-guild bot configuration.
type GuildSettingsRepository interface {
	// GetSettings returns ErrNotFound when the guild has no stored record.
	// Callers synthesize DefaultGuildSettings in that case; the repository
	// never persists defaults on read.
	GetSettings(ctx context.Context, guildID string) (*GuildSettings, error)
	// UpsertSettings writes the full settings document keyed by guild id.
	// Last write wins.
	UpsertSettings(ctx context.Context, settings *GuildSettings) error
}

// ModerationRepository stores the moderation-action log.
type ModerationRepository interface {
	InsertAction(ctx context.Context, action *ModerationAction) error
	// ListActions returns up to limit actions for the guild, newest first,
	// skipping offset records. Ordering is deterministic across pages.
	ListActions(ctx context.Context, guildID string, limit, offset int64) ([]ModerationAction, error)
	// ListWarnings returns all warn actions for one user in a guild, newest first.
	ListWarnings(ctx context.Context, guildID, userID string) ([]ModerationAction, error)
	// DeleteAction removes one action scoped to its guild; ErrNotFound when absent.
	DeleteAction(ctx context.Context, guildID, actionID string) error
	// CountByType aggregates action counts, optionally scoped to a guild
	// (empty guildID means global).
	CountByType(ctx context.Context, guildID string) (*ActionCounts, error)
}

// AISettingsRepository stores the per-channel AI toggles.
type AISettingsRepository interface {
	UpsertChannel(ctx context.Context, setting *AIChannelSetting) error
	ListByGuild(ctx context.Context, guildID string) ([]AIChannelSetting, error)
}
