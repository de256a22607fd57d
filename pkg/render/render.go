// Package render prints league standings as text tables.
package render

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/racingleague/racing-league-app/domain"
)

type OverallRow struct {
	Position int
	Email    string
	Name     string
	Stats    domain.Stats
}

// OverallRows orders the overall standings by points, wins and podiums.
// Remaining ties are ordered by email so the output is stable.
func OverallRows(l *domain.League) []OverallRow {
	rows := make([]OverallRow, 0, len(l.Standings.Overall))
	for email, stats := range l.Standings.Overall {
		rows = append(rows, OverallRow{Email: email, Name: l.DisplayName(email), Stats: stats})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Stats, rows[j].Stats
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Podiums != b.Podiums {
			return a.Podiums > b.Podiums
		}
		return rows[i].Email < rows[j].Email
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

func OverallTable(l *domain.League) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(l.Name)
	t.AppendHeader(table.Row{"#", "Driver", "Points", "Wins", "Podiums", "DNF", "FL"})
	for _, r := range OverallRows(l) {
		t.AppendRow(table.Row{r.Position, r.Name, r.Stats.Points, r.Stats.Wins, r.Stats.Podiums, r.Stats.DNFs, r.Stats.FastestLaps})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	return t.Render()
}

func TeamTable(l *domain.League) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(l.Name + " teams")
	t.AppendHeader(table.Row{"#", "Team", "Points", "Wins", "Podiums", "Drivers"})
	for _, s := range l.TeamStandings() {
		names := ""
		for i, m := range s.Members {
			if i > 0 {
				names += ", "
			}
			names += m.Name
		}
		t.AppendRow(table.Row{s.Position, s.Name, s.TotalPoints, s.TotalWins, s.TotalPodiums, names})
	}
	return t.Render()
}
