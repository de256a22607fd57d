// Command standings prints the overall standings and team leaderboard of a
// league.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"

	"github.com/racingleague/racing-league-app/pkg/config"
	"github.com/racingleague/racing-league-app/pkg/gcp"
	"github.com/racingleague/racing-league-app/pkg/render"
	timehelper "github.com/racingleague/racing-league-app/pkg/timeHelper"
	leaguesrepo "github.com/racingleague/racing-league-app/repos/leagues"
)

func main() {
	leagueID := pflag.StringP("league", "l", "", "league id")
	configPath := pflag.String("config", "./config.yml", "path to the config file")
	pflag.Parse()

	if *leagueID == "" {
		pflag.Usage()
		os.Exit(2)
	}
	if err := run(*configPath, *leagueID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, leagueID string) error {
	ctx := context.Background()

	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}
	clients, err := gcp.Connect(ctx, conf.Firebase)
	if err != nil {
		return err
	}
	defer clients.Close()

	l, err := leaguesrepo.NewService(clients.Firestore).Get(ctx, leagueID)
	if err != nil {
		return err
	}

	fmt.Println(l.Name)
	fmt.Println(render.OverallTable(l))
	if len(l.Teams) > 0 {
		fmt.Println(render.TeamTable(l))
	}
	if next := l.NextRace(time.Now()); next != nil {
		fmt.Printf("Next race: %s on %s\n", next.Track, timehelper.FormatRaceDate(next.Date))
	} else {
		fmt.Println("No upcoming races.")
	}
	return nil
}
