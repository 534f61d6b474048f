package dashboard

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/sentinel-mod/dashboard/cache"
	"github.com/sentinel-mod/dashboard/domain"
)

// Principal is an authenticated caller: the verified session identity plus
// the Discord access token cached on the user record.
type Principal struct {
	UserID      string
	Username    string
	AccessToken string
}

// GuildProvider is the slice of the Discord adapter the authorizer needs.
type GuildProvider interface {
	FetchUserGuilds(ctx context.Context, accessToken string) ([]domain.Guild, error)
	FetchBotGuilds(ctx context.Context) ([]domain.Guild, error)
}

// Authorizer decides whether a caller may act on a guild.
//
// Policy: the configured bot owner is authorized unconditionally. Any other
// caller is authorized for a guild when their Discord guild list carries the
// Administrator bit or the owner flag for it, and the bot is present in that
// guild. The same check backs every guild-scoped operation; membership and
// permission data come from Discord through a short-TTL cache.
type Authorizer struct {
	ownerID string
	discord GuildProvider
	guilds  cache.GuildCache
}

// NewAuthorizer creates an Authorizer. ownerID is the deployment-configured
// bot-owner identity.
func NewAuthorizer(ownerID string, discord GuildProvider, guilds cache.GuildCache) *Authorizer {
	return &Authorizer{
		ownerID: ownerID,
		discord: discord,
		guilds:  guilds,
	}
}

// IsOwner reports whether userID is the configured bot owner.
func (a *Authorizer) IsOwner(userID string) bool {
	return userID == a.ownerID
}

// CanAdminister reports whether the principal may administer guildID.
// Errors mean the decision could not be made (Discord unreachable); callers
// must deny in that case.
func (a *Authorizer) CanAdminister(ctx context.Context, p *Principal, guildID string) (bool, error) {
	if a.IsOwner(p.UserID) {
		return true, nil
	}

	userGuilds, err := a.userGuilds(ctx, p)
	if err != nil {
		return false, err
	}
	botGuilds, err := a.botGuildSet(ctx)
	if err != nil {
		return false, err
	}

	for _, g := range userGuilds {
		if g.ID != guildID {
			continue
		}
		if !isGuildAdmin(g) {
			return false, nil
		}
		_, botPresent := botGuilds[guildID]
		return botPresent, nil
	}
	return false, nil
}

// AdminGuilds returns the guilds the principal can manage through the
// dashboard: guilds where they hold the Administrator bit or the owner
// flag, and where the bot is present. The bot owner skips the presence
// check, matching the dashboard's owner override.
func (a *Authorizer) AdminGuilds(ctx context.Context, p *Principal) ([]domain.Guild, error) {
	userGuilds, err := a.userGuilds(ctx, p)
	if err != nil {
		return nil, err
	}
	botGuilds, err := a.botGuildSet(ctx)
	if err != nil {
		return nil, err
	}

	admin := make([]domain.Guild, 0, len(userGuilds))
	for _, g := range userGuilds {
		if !isGuildAdmin(g) {
			continue
		}
		if _, botPresent := botGuilds[g.ID]; botPresent || a.IsOwner(p.UserID) {
			admin = append(admin, g)
		}
	}
	return admin, nil
}

func (a *Authorizer) userGuilds(ctx context.Context, p *Principal) ([]domain.Guild, error) {
	if guilds, ok := a.guilds.UserGuilds(ctx, p.UserID); ok {
		return guilds, nil
	}

	guilds, err := a.discord.FetchUserGuilds(ctx, p.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := a.guilds.SetUserGuilds(ctx, p.UserID, guilds); err != nil {
		log.Warn().Err(err).Str("user_id", p.UserID).Msg("failed to cache user guilds")
	}
	return guilds, nil
}

func (a *Authorizer) botGuildSet(ctx context.Context) (map[string]struct{}, error) {
	ids, ok := a.guilds.BotGuilds(ctx)
	if !ok {
		botGuilds, err := a.discord.FetchBotGuilds(ctx)
		if err != nil {
			return nil, err
		}
		ids = make([]string, 0, len(botGuilds))
		for _, g := range botGuilds {
			ids = append(ids, g.ID)
		}
		if err := a.guilds.SetBotGuilds(ctx, ids); err != nil {
			log.Warn().Err(err).Msg("failed to cache bot guilds")
		}
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// isGuildAdmin checks the Administrator permission bit or the guild owner
// flag on a guild entry from the user's own guild list.
func isGuildAdmin(g domain.Guild) bool {
	if g.Owner {
		return true
	}
	perms, err := strconv.ParseInt(g.Permissions, 10, 64)
	if err != nil {
		return false
	}
	return perms&domain.AdministratorPermission != 0
}
