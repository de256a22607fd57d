package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/racingleague/racing-league-app/pkg/auth"
	"github.com/racingleague/racing-league-app/pkg/config"
	"github.com/racingleague/racing-league-app/pkg/gcp"
	"github.com/racingleague/racing-league-app/pkg/logger"
	invitesrepo "github.com/racingleague/racing-league-app/repos/invites"
	leaguesrepo "github.com/racingleague/racing-league-app/repos/leagues"
	"github.com/racingleague/racing-league-app/repos/resend"
	"github.com/racingleague/racing-league-app/repos/users"
	"github.com/racingleague/racing-league-app/services/invites"
	"github.com/racingleague/racing-league-app/services/leagues"
)

type notifier interface {
	leagues.Notifier
	invites.Notifier
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf, err := config.Load("./config.yml")
	if err != nil {
		panic(err)
	}
	if err := logger.Init(conf.API.Environment); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	var (
		leagueStore leagues.Store
		inviteStore invites.Store
		directory   leagues.Directory
		verifier    auth.TokenVerifier
		mailer      notifier = resend.Noop{}
	)

	switch conf.Store {
	case config.StoreMemory:
		leagueStore = leaguesrepo.NewMemoryStore()
		inviteStore = invitesrepo.NewMemoryStore()
		directory = users.Static{}
		verifier = auth.Unverified{}
		zap.L().Warn("using in-memory store, tokens are not verified")
	default:
		clients, err := gcp.Connect(ctx, conf.Firebase)
		if err != nil {
			zap.L().Fatal("failed to connect to firebase", zap.Error(err))
		}
		defer clients.Close()

		authClient, err := clients.App.Auth(ctx)
		if err != nil {
			zap.L().Fatal("failed to create auth client", zap.Error(err))
		}
		leagueStore = leaguesrepo.NewService(clients.Firestore)
		inviteStore = invitesrepo.NewService(clients.Firestore)
		directory = users.NewService(authClient)
		verifier = authClient
	}
	if conf.Mail.ResendKey != "" {
		mailer = resend.NewService(conf.Mail.ResendKey, conf.Mail.From, conf.Mail.HostURL)
	}

	leagueService := leagues.NewLeaguesService(leagueStore, directory, mailer)
	inviteService := invites.NewInvitesService(inviteStore, leagueStore, leagueService, mailer)

	if conf.API.GinMode != "" {
		gin.SetMode(conf.API.GinMode)
	} else if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = conf.API.CORSHosts
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.New()
	router.Use(gin.Recovery(), gin.Logger(), requestid.New())
	if len(corsConfig.AllowOrigins) > 0 {
		router.Use(cors.New(corsConfig))
	}

	api := router.Group("/api/v1")
	api.GET("/check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Service is alive!"})
	})

	leaguesPublic := api.Group("/leagues")
	leaguesRouter := api.Group("/leagues")
	leaguesRouter.Use(auth.AuthMiddleware(verifier))

	invitesRouter := api.Group("/invites")
	invitesRouter.Use(auth.AuthMiddleware(verifier))

	leagues.NewHTTPHandler(leagues.HTTPOptions{
		Service:      leagueService,
		Router:       leaguesRouter,
		PublicRouter: leaguesPublic,
	})

	invites.NewHTTPHandler(invites.HTTPOptions{
		Service: inviteService,
		Router:  invitesRouter,
	})

	srv := &http.Server{
		Addr:    ":" + conf.API.Port,
		Handler: router,
	}
	go func() {
		zap.L().Info("listening", zap.String("addr", srv.Addr), zap.String("store", conf.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
}
