package cron

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maxovaroy/merlin-V2/internal/common"
	"github.com/maxovaroy/merlin-V2/internal/domain"
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/testutil"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func Test_GiveawayExpiryCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	giveawayRepo := repository.NewGiveawayRepository()
	communityRepo := repository.NewCommunityRepository()
	userRepo := repository.NewUserRepository(&testutil.MockRedisClient{})
	managerRoleRepo := repository.NewGiveawayManagerRoleRepository()
	announcer := testutil.NewMockAnnouncer()
	registry := domain.NewJoinRegistry()
	giveawayDomain := domain.NewGiveawayDomain(
		giveawayRepo, communityRepo, userRepo,
		common.NewManagerVerifier(testutil.NewMockRoleCaller(), managerRoleRepo),
		announcer, registry)

	overdue := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: testutil.Community1.ID,
		Title:       "Overdue",
		Prize:       "Nitro",
		WinnerCount: 1,
		EndTime:     time.Now().Add(-time.Minute),
		Active:      true,
	}
	running := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: testutil.Community2.ID,
		Title:       "Running",
		Prize:       "Nitro",
		WinnerCount: 1,
		EndTime:     time.Now().Add(time.Hour),
		Active:      true,
	}
	require.NoError(t, xcontext.DB(ctx).Create(overdue).Error)
	require.NoError(t, xcontext.DB(ctx).Create(running).Error)

	entry := entity.GiveawayEntry{GiveawayID: overdue.ID, UserID: testutil.User1.ID}
	require.NoError(t, xcontext.DB(ctx).Create(&entry).Error)

	job := NewGiveawayExpiryCronJob(ctx, giveawayRepo, giveawayDomain)
	require.True(t, job.RunNow())
	require.WithinDuration(t, time.Now().Add(30*time.Second), job.Next(), time.Second)

	job.Do(ctx)

	var result entity.Giveaway
	require.NoError(t, xcontext.DB(ctx).Take(&result, "id=?", overdue.ID).Error)
	require.False(t, result.Active)
	require.Equal(t, []string{testutil.User1.ID}, announcer.AnnouncedWinnerIDs[overdue.ID])

	var runningResult entity.Giveaway
	require.NoError(t, xcontext.DB(ctx).Take(&runningResult, "id=?", running.ID).Error)
	require.True(t, runningResult.Active)

	// Running again finds nothing left to do.
	job.Do(ctx)
	require.Len(t, announcer.AnnouncedWinnerIDs[overdue.ID], 1)
}

func Test_EntryRetentionCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	giveawayRepo := repository.NewGiveawayRepository()

	expired := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: testutil.Community1.ID,
		Title:       "Forgotten",
		Prize:       "Nitro",
		WinnerCount: 1,
		EndTime:     time.Now().Add(-48 * time.Hour),
		Active:      false,
	}
	recent := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: testutil.Community2.ID,
		Title:       "Recent",
		Prize:       "Nitro",
		WinnerCount: 1,
		EndTime:     time.Now().Add(-time.Hour),
		Active:      false,
	}
	require.NoError(t, xcontext.DB(ctx).Create(expired).Error)
	require.NoError(t, xcontext.DB(ctx).Create(recent).Error)

	for _, giveaway := range []*entity.Giveaway{expired, recent} {
		entry := entity.GiveawayEntry{GiveawayID: giveaway.ID, UserID: testutil.User1.ID}
		require.NoError(t, xcontext.DB(ctx).Create(&entry).Error)
	}

	job := NewEntryRetentionCronJob(ctx, giveawayRepo)
	require.False(t, job.RunNow())

	job.Do(ctx)

	expiredCount, err := giveawayRepo.CountEntries(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), expiredCount)

	recentCount, err := giveawayRepo.CountEntries(ctx, recent.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), recentCount)
}
