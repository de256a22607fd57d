// Command migrate-participants rewrites the participant list of every league
// between bare emails and {email, league_user_name} entries.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/racingleague/racing-league-app/pkg/config"
	"github.com/racingleague/racing-league-app/pkg/gcp"
	"github.com/racingleague/racing-league-app/pkg/logger"
	leaguesrepo "github.com/racingleague/racing-league-app/repos/leagues"
	"github.com/racingleague/racing-league-app/repos/users"
)

func main() {
	rollback := pflag.Bool("rollback", false, "convert participants back to bare emails")
	dryRun := pflag.Bool("dry-run", false, "report the changes without writing them")
	configPath := pflag.String("config", "./config.yml", "path to the config file")
	pflag.Parse()

	if err := run(*configPath, *rollback, *dryRun); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, rollback, dryRun bool) error {
	ctx := context.Background()

	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(conf.API.Environment); err != nil {
		return err
	}
	defer zap.L().Sync()

	clients, err := gcp.Connect(ctx, conf.Firebase)
	if err != nil {
		return err
	}
	defer clients.Close()

	authClient, err := clients.App.Auth(ctx)
	if err != nil {
		return fmt.Errorf("failed to create auth client -> %w", err)
	}
	directory := users.NewService(authClient)

	report, err := leaguesrepo.NewService(clients.Firestore).MigrateParticipants(ctx, leaguesrepo.MigrationOptions{
		Rollback: rollback,
		DryRun:   dryRun,
		Names: func(ctx context.Context, email string) string {
			u, err := directory.Lookup(ctx, email)
			if err != nil {
				return ""
			}
			return u.Name
		},
	})
	if err != nil {
		return err
	}

	mode := "migration"
	if rollback {
		mode = "rollback"
	}
	if dryRun {
		mode += " (dry run)"
	}
	fmt.Printf("%s finished: %s\n", mode, report)
	return nil
}
