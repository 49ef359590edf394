package main

import (
	"github.com/maxovaroy/merlin-V2/internal/domain/cron"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadClients()
	s.loadDomains()

	cron.NewCronJobManager().Start(
		s.ctx,
		cron.NewGiveawayExpiryCronJob(s.ctx, s.giveawayRepo, s.giveawayDomain),
		cron.NewEntryRetentionCronJob(s.ctx, s.giveawayRepo),
	)

	return nil
}
