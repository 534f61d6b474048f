package domain

import "time"

// AdministratorPermission is the Discord permission bit that grants full
// control over a guild.
const AdministratorPermission = 0x8

// Guild is a Discord guild as returned by the users/@me/guilds endpoint.
// Permissions is the raw permission bitfield, kept as the decimal string
// Discord sends it as.
type Guild struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        *string `json:"icon,omitempty"`
	Owner       bool    `json:"owner"`
	Permissions string  `json:"permissions"`
}

// GuildSettings holds the per-guild bot configuration, keyed by guild id.
// A missing record means the guild runs on DefaultGuildSettings; defaults
// are synthesized on read and only persisted on the first explicit write.
type GuildSettings struct {
	GuildID       string    `bson:"guild_id" json:"guild_id"`
	Prefix        string    `bson:"prefix" json:"prefix"`
	LogChannelID  *string   `bson:"log_channel_id,omitempty" json:"log_channel_id,omitempty"`
	AutoRoleID    *string   `bson:"auto_role_id,omitempty" json:"auto_role_id,omitempty"`
	WarningRoleID *string   `bson:"warning_role_id,omitempty" json:"warning_role_id,omitempty"`
	JailRoleID    *string   `bson:"jail_role_id,omitempty" json:"jail_role_id,omitempty"`
	AntiSpam      bool      `bson:"anti_spam" json:"anti_spam"`
	AntiSwear     bool      `bson:"anti_swear" json:"anti_swear"`
	AntiLink      bool      `bson:"anti_link" json:"anti_link"`
	AIEnabled     bool      `bson:"ai_enabled" json:"ai_enabled"`
	AIChannels    []string  `bson:"ai_channels" json:"ai_channels"`
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedBy     string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// DefaultGuildSettings returns the configuration a guild runs on before
// anyone has saved settings for it.
func DefaultGuildSettings(guildID string) *GuildSettings {
	return &GuildSettings{
		GuildID:    guildID,
		Prefix:     "!",
		AntiSpam:   true,
		AntiSwear:  true,
		AntiLink:   true,
		AIEnabled:  true,
		AIChannels: []string{},
	}
}
