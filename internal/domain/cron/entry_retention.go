package cron

import (
	"context"
	"time"

	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

// EntryRetentionCronJob purges participant snapshots of finished giveaways
// once their retention window has passed. Keeping the snapshot around for a
// while is what makes reroll possible after the giveaway ends.
type EntryRetentionCronJob struct {
	giveawayRepo repository.GiveawayRepository
	retention    time.Duration
}

func NewEntryRetentionCronJob(
	ctx context.Context, giveawayRepo repository.GiveawayRepository,
) *EntryRetentionCronJob {
	return &EntryRetentionCronJob{
		giveawayRepo: giveawayRepo,
		retention:    xcontext.Configs(ctx).Giveaway.EntryRetention,
	}
}

func (job *EntryRetentionCronJob) Do(ctx context.Context) {
	cutoff := time.Now().Add(-job.retention)
	if err := job.giveawayRepo.DeleteEntriesBefore(ctx, cutoff); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot purge expired giveaway entries: %v", err)
	}
}

func (job *EntryRetentionCronJob) RunNow() bool {
	return false
}

func (job *EntryRetentionCronJob) Next() time.Time {
	return time.Now().Add(time.Hour)
}
