package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sentinel-mod/dashboard"
	"github.com/sentinel-mod/dashboard/domain"
)

// GuildSettingsRepository stores per-guild bot configuration, one document
// per guild.
type GuildSettingsRepository struct {
	settings *mongo.Collection
}

// NewGuildSettingsRepository creates the repository and its indexes.
func NewGuildSettingsRepository(ctx context.Context, db *mongo.Database) (*GuildSettingsRepository, error) {
	repo := &GuildSettingsRepository{
		settings: db.Collection(GuildSettingsCollection),
	}

	_, err := repo.settings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "guild_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create guild settings indexes: %w", err)
	}

	return repo, nil
}

// GetSettings returns dashboard.ErrNotFound when the guild has no stored
// record; it never writes defaults on read.
func (r *GuildSettingsRepository) GetSettings(ctx context.Context, guildID string) (*domain.GuildSettings, error) {
	var settings domain.GuildSettings
	err := r.settings.FindOne(ctx, bson.M{"guild_id": guildID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, dashboard.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for guild %s: %w", guildID, err)
	}
	return &settings, nil
}

// UpsertSettings writes the full settings document keyed by guild id.
// There is no optimistic concurrency control; last write wins.
func (r *GuildSettingsRepository) UpsertSettings(ctx context.Context, settings *domain.GuildSettings) error {
	settings.UpdatedAt = time.Now().UTC()

	_, err := r.settings.UpdateOne(ctx,
		bson.M{"guild_id": settings.GuildID},
		bson.M{"$set": settings},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings for guild %s: %w", settings.GuildID, err)
	}
	return nil
}
