package repository

import (
	"context"
	"testing"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/testutil"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func Test_userRepository_AddMessage(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository(&testutil.MockRedisClient{})

	// User3 stays on level 2: no aura roll without a level-up.
	result, err := repo.AddMessage(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User3.XP+10, result.User.XP)
	require.Equal(t, testutil.User3.Messages+1, result.User.Messages)
	require.False(t, result.LeveledUp)
	require.Zero(t, result.AuraGained)

	persisted, err := repo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, result.User.XP, persisted.XP)
	require.Equal(t, result.User.Aura, persisted.Aura)
}

func Test_userRepository_AddMessage_levelUpRollsAura(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository(&testutil.MockRedisClient{})

	user := entity.User{Base: entity.Base{ID: "onboard"}, XP: 30, Level: 2, Messages: 3, Aura: 7}
	require.NoError(t, xcontext.DB(ctx).Create(&user).Error)

	result, err := repo.AddMessage(ctx, "onboard")
	require.NoError(t, err)
	require.True(t, result.LeveledUp)
	require.Equal(t, 3, result.User.Level)
	require.GreaterOrEqual(t, result.AuraGained, 1)
	require.LessOrEqual(t, result.AuraGained, 100)
	require.Equal(t, 7+result.AuraGained, result.User.Aura)
}

func Test_userRepository_leaderboardUpdates(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	incremented := map[string]int64{}
	redisClient := &testutil.MockRedisClient{
		ZIncrByFunc: func(_ context.Context, key string, incr int64, member string) error {
			incremented[member] += incr
			return nil
		},
	}
	repo := NewUserRepository(redisClient)

	_, err := repo.AddMessage(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), incremented[testutil.User2.ID])
}
