package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Merlin"
	app.Usage = "community giveaway service"
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serves the giveaway API and the interaction webhook.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start background jobs",
			Category:    "Worker",
			Description: `Runs the expiry poller and the entry retention job without the API.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Category:    "Database",
		},
	}

	s.app = app
}
