package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxovaroy/merlin-V2/internal/domain"
	"github.com/maxovaroy/merlin-V2/internal/domain/cron"
	"github.com/maxovaroy/merlin-V2/internal/middleware"
	"github.com/maxovaroy/merlin-V2/pkg/discord"
	"github.com/maxovaroy/merlin-V2/pkg/router"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadClients()
	s.loadDomains()

	if err := s.restoreGiveaways(); err != nil {
		return err
	}

	go cron.NewCronJobManager().Start(
		s.ctx,
		cron.NewGiveawayExpiryCronJob(s.ctx, s.giveawayRepo, s.giveawayDomain),
		cron.NewEntryRetentionCronJob(s.ctx, s.giveawayRepo),
	)

	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port %s", cfg.ApiServer.Port)
	if err := httpServer.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) restoreGiveaways() error {
	manager := domain.NewRestorationManager(s.giveawayRepo, s.announcer, s.registry)
	return manager.Restore(s.ctx)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(router.HandleResponse())

	authRouter := s.router.Branch("/")
	authRouter.Before(middleware.AuthVerifier())
	{
		router.POST(authRouter, "/createGiveaway", s.giveawayDomain.Create)
		router.POST(authRouter, "/endGiveaway", s.giveawayDomain.End)
		router.POST(authRouter, "/rerollGiveaway", s.giveawayDomain.Reroll)
		router.POST(authRouter, "/joinGiveaway", s.giveawayDomain.Join)
		router.POST(authRouter, "/setGiveawayManagerRole", s.giveawayDomain.SetManagerRole)
		router.POST(authRouter, "/trackMessage", s.userDomain.TrackMessage)
	}

	// Public API.
	router.GET(s.router, "/generateAccessToken", s.authDomain.Generate)
	router.GET(s.router, "/getGiveaway", s.giveawayDomain.Get)
	router.GET(s.router, "/previewGiveaway", s.giveawayDomain.Preview)
	router.GET(s.router, "/getUser", s.userDomain.Get)
	router.GET(s.router, "/getLeaderboard", s.userDomain.GetLeaderboard)

	s.router.Inner.POST("/discord/interactions", s.handleInteraction)
}

// handleInteraction is the raw webhook endpoint. It bypasses the typed
// wrapper because Discord requires signature verification over the exact
// request body and a response format of its own.
func (s *srv) handleInteraction(ginCtx *gin.Context) {
	cfg := xcontext.Configs(s.ctx)
	publicKey, err := hex.DecodeString(cfg.Discord.InteractionPublicKey)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		ginCtx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if err := discord.Verify(ginCtx.Request, ed25519.PublicKey(publicKey)); err != nil {
		ginCtx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var interaction discord.Interaction
	if err := json.NewDecoder(ginCtx.Request.Body).Decode(&interaction); err != nil {
		ginCtx.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ginCtx.JSON(http.StatusOK, s.interactionDomain.Handle(s.ctx, &interaction))
}
