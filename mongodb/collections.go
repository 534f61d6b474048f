package mongodb

const (
	UsersCollection             = "users"
	GuildSettingsCollection     = "guild_settings"
	ModerationActionsCollection = "moderation_actions"
	AISettingsCollection        = "ai_settings"
)
