package domain

import "time"

// ActionType enumerates the moderation actions the bot records.
type ActionType string

const (
	ActionWarn ActionType = "warn"
	ActionBan  ActionType = "ban"
	ActionKick ActionType = "kick"
	ActionMute ActionType = "mute"
)

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionWarn, ActionBan, ActionKick, ActionMute:
		return true
	}
	return false
}

// ModerationAction is an append-mostly record synced from the bot process.
// Duration is set for mutes only, in minutes. Records are never mutated;
// a dashboard admin may delete one.
type ModerationAction struct {
	ID          string     `bson:"_id" json:"id"`
	GuildID     string     `bson:"guild_id" json:"guild_id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	ActionType  ActionType `bson:"action_type" json:"action_type"`
	Reason      string     `bson:"reason" json:"reason"`
	ModeratorID string     `bson:"moderator_id" json:"moderator_id"`
	Timestamp   time.Time  `bson:"timestamp" json:"timestamp"`
	Duration    *int       `bson:"duration,omitempty" json:"duration,omitempty"`
}

// ActionCounts aggregates moderation actions by type.
type ActionCounts struct {
	TotalWarnings int64 `json:"total_warnings"`
	TotalBans     int64 `json:"total_bans"`
	TotalKicks    int64 `json:"total_kicks"`
	TotalMutes    int64 `json:"total_mutes"`
}

// GuildStats are the per-guild moderation counters shown on the dashboard.
type GuildStats struct {
	GuildID string `json:"guild_id"`
	ActionCounts
}

// BotStats are the global counters, visible to the bot owner only.
// Guild/user counts and uptime belong to the bot process; the dashboard
// reports zero values for them.
type BotStats struct {
	GuildCount int    `json:"guild_count"`
	UserCount  int    `json:"user_count"`
	Uptime     string `json:"uptime"`
	ActionCounts
}
