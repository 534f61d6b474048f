package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-mod/dashboard/cache"
	"github.com/sentinel-mod/dashboard/domain"
)

// The authorization policy under test: the bot owner passes every check
// unconditionally, and everyone else needs the Administrator bit (or the
// owner flag) on the guild plus confirmed bot presence. The same check
// guards every guild-scoped operation.

const (
	ownerID = "510769103024291840"
	adminID = "200000000000000001"
)

type MockGuildProvider struct {
	mock.Mock
}

func (m *MockGuildProvider) FetchUserGuilds(ctx context.Context, accessToken string) ([]domain.Guild, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Guild), args.Error(1)
}

func (m *MockGuildProvider) FetchBotGuilds(ctx context.Context) ([]domain.Guild, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Guild), args.Error(1)
}

func newTestAuthorizer(t *testing.T) (*Authorizer, *MockGuildProvider) {
	t.Helper()
	provider := &MockGuildProvider{}
	authz := NewAuthorizer(ownerID, provider, cache.NewMemoryGuildCache(time.Minute))
	return authz, provider
}

func adminPrincipal() *Principal {
	return &Principal{UserID: adminID, Username: "mod", AccessToken: "user-token"}
}

func TestOwnerCanAdministerAnyGuildRegardlessOfState(t *testing.T) {
	authz, provider := newTestAuthorizer(t)

	for _, guildID := range []string{"G1", "G2", "nonexistent"} {
		ok, err := authz.CanAdminister(context.Background(), &Principal{UserID: ownerID}, guildID)
		require.NoError(t, err)
		assert.True(t, ok, "guild %s", guildID)
	}

	// The owner override short-circuits before any Discord call.
	provider.AssertNotCalled(t, "FetchUserGuilds", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "FetchBotGuilds", mock.Anything)
}

func TestAdminWithBotPresent(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "user-token").Return([]domain.Guild{
		{ID: "G1", Name: "guild one", Permissions: "8"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{
		{ID: "G1"},
	}, nil).Once()

	ok, err := authz.CanAdminister(context.Background(), adminPrincipal(), "G1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminWithBotAbsentDenied(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "user-token").Return([]domain.Guild{
		{ID: "G1", Permissions: "8"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{}, nil).Once()

	ok, err := authz.CanAdminister(context.Background(), adminPrincipal(), "G1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNonAdminDenied(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	// Permission bitfield without the 0x8 Administrator bit.
	provider.On("FetchUserGuilds", mock.Anything, "user-token").Return([]domain.Guild{
		{ID: "G1", Permissions: "104324673"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{
		{ID: "G1"},
	}, nil).Once()

	ok, err := authz.CanAdminister(context.Background(), adminPrincipal(), "G1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuildOwnerFlagCountsAsAdmin(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "user-token").Return([]domain.Guild{
		{ID: "G1", Owner: true, Permissions: "0"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{
		{ID: "G1"},
	}, nil).Once()

	ok, err := authz.CanAdminister(context.Background(), adminPrincipal(), "G1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnknownGuildDenied(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "user-token").Return([]domain.Guild{
		{ID: "G1", Permissions: "8"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{{ID: "G1"}}, nil).Once()

	ok, err := authz.CanAdminister(context.Background(), adminPrincipal(), "G2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMembershipDataIsCached(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "user-token").Return([]domain.Guild{
		{ID: "G1", Permissions: "8"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{{ID: "G1"}}, nil).Once()

	for i := 0; i < 3; i++ {
		ok, err := authz.CanAdminister(context.Background(), adminPrincipal(), "G1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// .Once() on both expectations: a second Discord fetch would fail the mock.
	provider.AssertExpectations(t)
}

func TestUpstreamFailurePropagates(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "user-token").
		Return(nil, errors.New("discord unreachable")).Once()

	_, err := authz.CanAdminister(context.Background(), adminPrincipal(), "G1")
	assert.Error(t, err)
}

func TestAdminGuildsFiltersByPermissionAndPresence(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "user-token").Return([]domain.Guild{
		{ID: "G1", Name: "admin, bot present", Permissions: "8"},
		{ID: "G2", Name: "admin, bot absent", Permissions: "8"},
		{ID: "G3", Name: "member only", Permissions: "0"},
		{ID: "G4", Name: "owned", Owner: true, Permissions: "0"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{
		{ID: "G1"}, {ID: "G4"},
	}, nil).Once()

	guilds, err := authz.AdminGuilds(context.Background(), adminPrincipal())
	require.NoError(t, err)

	ids := make([]string, 0, len(guilds))
	for _, g := range guilds {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []string{"G1", "G4"}, ids)
}

func TestAdminGuildsOwnerSkipsPresenceCheck(t *testing.T) {
	authz, provider := newTestAuthorizer(t)
	provider.On("FetchUserGuilds", mock.Anything, "owner-token").Return([]domain.Guild{
		{ID: "G1", Permissions: "8"},
	}, nil).Once()
	provider.On("FetchBotGuilds", mock.Anything).Return([]domain.Guild{}, nil).Once()

	guilds, err := authz.AdminGuilds(context.Background(), &Principal{
		UserID:      ownerID,
		AccessToken: "owner-token",
	})
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, "G1", guilds[0].ID)
}
