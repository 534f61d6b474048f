package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sentinel-mod/dashboard/domain"
)

// AISettingsRepository stores the per-channel AI toggles, one document per
// (guild, channel) pair.
type AISettingsRepository struct {
	settings *mongo.Collection
}

// NewAISettingsRepository creates the repository and its indexes.
func NewAISettingsRepository(ctx context.Context, db *mongo.Database) (*AISettingsRepository, error) {
	repo := &AISettingsRepository{
		settings: db.Collection(AISettingsCollection),
	}

	_, err := repo.settings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "guild_id", Value: 1}, {Key: "channel_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ai settings indexes: %w", err)
	}

	return repo, nil
}

// UpsertChannel writes the toggle keyed by (guild, channel); last write wins.
func (r *AISettingsRepository) UpsertChannel(ctx context.Context, setting *domain.AIChannelSetting) error {
	setting.UpdatedAt = time.Now().UTC()

	_, err := r.settings.UpdateOne(ctx,
		bson.M{"guild_id": setting.GuildID, "channel_id": setting.ChannelID},
		bson.M{"$set": setting},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ai setting for channel %s: %w", setting.ChannelID, err)
	}
	return nil
}

// ListByGuild returns every channel toggle stored for a guild.
func (r *AISettingsRepository) ListByGuild(ctx context.Context, guildID string) ([]domain.AIChannelSetting, error) {
	cursor, err := r.settings.Find(ctx, bson.M{"guild_id": guildID})
	if err != nil {
		return nil, fmt.Errorf("failed to list ai settings for guild %s: %w", guildID, err)
	}
	defer cursor.Close(ctx)

	settings := []domain.AIChannelSetting{}
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode ai settings for guild %s: %w", guildID, err)
	}
	return settings, nil
}
