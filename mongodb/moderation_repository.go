package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sentinel-mod/dashboard"
	"github.com/sentinel-mod/dashboard/domain"
)

const warningsFetchLimit = 100

// ModerationRepository stores the moderation-action log synced from the
// bot process.
type ModerationRepository struct {
	actions *mongo.Collection
}

// NewModerationRepository creates the repository and its indexes.
func NewModerationRepository(ctx context.Context, db *mongo.Database) (*ModerationRepository, error) {
	repo := &ModerationRepository{
		actions: db.Collection(ModerationActionsCollection),
	}

	_, err := repo.actions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "guild_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "guild_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "action_type", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create moderation indexes: %w", err)
	}

	return repo, nil
}

// InsertAction appends one action. A missing id or timestamp is filled in,
// so records synced by older bot builds stay addressable.
func (r *ModerationRepository) InsertAction(ctx context.Context, action *domain.ModerationAction) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.Timestamp.IsZero() {
		action.Timestamp = time.Now().UTC()
	}

	if _, err := r.actions.InsertOne(ctx, action); err != nil {
		return fmt.Errorf("failed to insert moderation action: %w", err)
	}
	return nil
}

// actionSort orders newest first with _id as tie-break so equal timestamps
// paginate deterministically.
var actionSort = bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}

// ListActions returns one page of a guild's action log, newest first.
func (r *ModerationRepository) ListActions(ctx context.Context, guildID string, limit, offset int64) ([]domain.ModerationAction, error) {
	opts := options.Find().
		SetSort(actionSort).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.actions.Find(ctx, bson.M{"guild_id": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions for guild %s: %w", guildID, err)
	}
	defer cursor.Close(ctx)

	actions := []domain.ModerationAction{}
	if err := cursor.All(ctx, &actions); err != nil {
		return nil, fmt.Errorf("failed to decode actions for guild %s: %w", guildID, err)
	}
	return actions, nil
}

// ListWarnings returns the warn actions for one user in a guild, newest first.
func (r *ModerationRepository) ListWarnings(ctx context.Context, guildID, userID string) ([]domain.ModerationAction, error) {
	opts := options.Find().
		SetSort(actionSort).
		SetLimit(warningsFetchLimit)

	filter := bson.M{
		"guild_id":    guildID,
		"user_id":     userID,
		"action_type": domain.ActionWarn,
	}
	cursor, err := r.actions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	defer cursor.Close(ctx)

	warnings := []domain.ModerationAction{}
	if err := cursor.All(ctx, &warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	return warnings, nil
}

// DeleteAction removes one action scoped to its guild. Scoping by guild id
// keeps a caller authorized for one guild from deleting another guild's
// records by id.
func (r *ModerationRepository) DeleteAction(ctx context.Context, guildID, actionID string) error {
	result, err := r.actions.DeleteOne(ctx, bson.M{"_id": actionID, "guild_id": guildID})
	if err != nil {
		return fmt.Errorf("failed to delete action %s: %w", actionID, err)
	}
	if result.DeletedCount == 0 {
		return dashboard.ErrNotFound
	}
	return nil
}

// CountByType aggregates action counts by type. An empty guildID counts
// globally.
func (r *ModerationRepository) CountByType(ctx context.Context, guildID string) (*domain.ActionCounts, error) {
	counts := &domain.ActionCounts{}
	for _, t := range []struct {
		actionType domain.ActionType
		dest       *int64
	}{
		{domain.ActionWarn, &counts.TotalWarnings},
		{domain.ActionBan, &counts.TotalBans},
		{domain.ActionKick, &counts.TotalKicks},
		{domain.ActionMute, &counts.TotalMutes},
	} {
		filter := bson.M{"action_type": t.actionType}
		if guildID != "" {
			filter["guild_id"] = guildID
		}
		n, err := r.actions.CountDocuments(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s actions: %w", t.actionType, err)
		}
		*t.dest = n
	}
	return counts, nil
}
