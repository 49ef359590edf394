package main

import (
	"context"
	"os"
	"time"

	"github.com/maxovaroy/merlin-V2/config"
	"github.com/maxovaroy/merlin-V2/internal/client"
	"github.com/maxovaroy/merlin-V2/internal/common"
	"github.com/maxovaroy/merlin-V2/internal/domain"
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/model"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/authenticator"
	"github.com/maxovaroy/merlin-V2/pkg/discord"
	"github.com/maxovaroy/merlin-V2/pkg/logger"
	"github.com/maxovaroy/merlin-V2/pkg/router"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"github.com/maxovaroy/merlin-V2/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	redisClient xredis.Client

	giveawayRepo    repository.GiveawayRepository
	communityRepo   repository.CommunityRepository
	userRepo        repository.UserRepository
	managerRoleRepo repository.GiveawayManagerRoleRepository

	announcer  client.Announcer
	roleCaller client.RoleCaller
	registry   *domain.JoinRegistry

	giveawayDomain    domain.GiveawayDomain
	userDomain        domain.UserDomain
	authDomain        domain.AuthDomain
	interactionDomain domain.InteractionDomain

	router *router.Router
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "merlin"),
			Password: getEnv("MYSQL_PASSWORD", "merlin"),
			Database: getEnv("MYSQL_DATABASE", "merlin"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "24h")),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Discord: config.DiscordConfigs{
			APIEndpoint:          getEnv("DISCORD_API_ENDPOINT", ""),
			BotToken:             getEnv("DISCORD_BOT_TOKEN", ""),
			InteractionPublicKey: getEnv("DISCORD_INTERACTION_PUBLIC_KEY", ""),
		},
		Giveaway: config.GiveawayConfigs{
			PollInterval:    parseDuration(getEnv("GIVEAWAY_POLL_INTERVAL", "30s")),
			EntryRetention:  parseDuration(getEnv("GIVEAWAY_ENTRY_RETENTION", "24h")),
			ManagerKeywords: []string{"mod", "staff", "giveaway"},
		},
	}

	logLevel := logger.INFO
	if cfg.Env == "local" {
		logLevel = logger.DEBUG
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logLevel))
	s.ctx = xcontext.WithTokenEngine(s.ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.giveawayRepo = repository.NewGiveawayRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.userRepo = repository.NewUserRepository(s.redisClient)
	s.managerRoleRepo = repository.NewGiveawayManagerRoleRepository()
}

func (s *srv) loadClients() {
	discordClient := discord.NewClient(s.ctx)
	caller := client.NewDiscordCaller(discordClient)
	s.announcer = caller
	s.roleCaller = caller
}

func (s *srv) loadDomains() {
	s.registry = domain.NewJoinRegistry()
	managerVerifier := common.NewManagerVerifier(s.roleCaller, s.managerRoleRepo)

	s.giveawayDomain = domain.NewGiveawayDomain(
		s.giveawayRepo, s.communityRepo, s.userRepo,
		managerVerifier, s.announcer, s.registry)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.interactionDomain = domain.NewInteractionDomain(s.giveawayDomain, s.registry)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}
