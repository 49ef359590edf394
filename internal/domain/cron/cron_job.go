package cron

import (
	"context"
	"time"

	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

type CronJob interface {
	Do(ctx context.Context)
	Next() time.Time
	RunNow() bool
}

type CronJobManager struct{}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{}
}

// Start runs every job on its own schedule until the context is canceled.
// This method blocks.
func (m *CronJobManager) Start(ctx context.Context, jobs ...CronJob) {
	for _, job := range jobs {
		go m.run(ctx, job)
	}

	<-ctx.Done()
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	if job.RunNow() {
		job.Do(ctx)
	}

	for {
		timer := time.NewTimer(time.Until(job.Next()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case <-timer.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						xcontext.Logger(ctx).Errorf("Cron job panicked: %v", r)
					}
				}()

				job.Do(ctx)
			}()
		}
	}
}
