package cron

import (
	"context"
	"time"

	"github.com/maxovaroy/merlin-V2/internal/domain"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

// GiveawayExpiryCronJob polls for giveaways whose end time has passed and
// finalizes each of them. Finalization is idempotent, so overlapping runs or
// a manual end racing the poller are harmless.
type GiveawayExpiryCronJob struct {
	giveawayRepo   repository.GiveawayRepository
	giveawayDomain domain.GiveawayDomain
	interval       time.Duration
}

func NewGiveawayExpiryCronJob(
	ctx context.Context,
	giveawayRepo repository.GiveawayRepository,
	giveawayDomain domain.GiveawayDomain,
) *GiveawayExpiryCronJob {
	return &GiveawayExpiryCronJob{
		giveawayRepo:   giveawayRepo,
		giveawayDomain: giveawayDomain,
		interval:       xcontext.Configs(ctx).Giveaway.PollInterval,
	}
}

func (job *GiveawayExpiryCronJob) Do(ctx context.Context) {
	giveaways, err := job.giveawayRepo.GetDue(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load due giveaways: %v", err)
		return
	}

	for _, giveaway := range giveaways {
		if err := job.giveawayDomain.Finalize(ctx, giveaway.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot finalize giveaway %s: %v", giveaway.ID, err)
		}
	}
}

func (job *GiveawayExpiryCronJob) RunNow() bool {
	return true
}

func (job *GiveawayExpiryCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
