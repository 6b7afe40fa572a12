package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"stormlightlabs.org/sabermetrics/internal/config"
	"stormlightlabs.org/sabermetrics/internal/echo"
	"stormlightlabs.org/sabermetrics/internal/retro/parse"
)

// RetrosheetCmd creates the retrosheet command group: ingestion of the raw
// Retrosheet event-file tree (parks.dat/retroid.dat/TEAM<yyyy>/*.ROS/
// *.EVA/*.EVN), distinct from the CSV-derived `etl fetch/load retrosheet`
// pipeline that already loads pre-flattened Retrosheet exports into
// PostgreSQL.
func RetrosheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrosheet",
		Short: "Raw Retrosheet event-file ingestion",
		Long:  "Parse a directory tree of raw Retrosheet files into an in-memory player/team/game model.",
	}
	cmd.AddCommand(RetrosheetIngestCmd())
	return cmd
}

// RetrosheetIngestCmd creates the ingest command under retrosheet.
func RetrosheetIngestCmd() *cobra.Command {
	var dirFlag, yearsFlag string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Parse a Retrosheet event-file tree",
		Long: `Walks a Retrosheet root directory (parks.dat, retroid.dat, and one
<yyyy>/ subdirectory per season holding TEAM<yyyy>, *.ROS rosters, and
*.EVA/*.EVN play-by-play files), replaying every play into an in-memory
record of players, teams, games, and per-play state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ingestRetrosheet(cmd, dirFlag, yearsFlag)
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", "", "root directory of the Retrosheet event-file tree (default: config retrosheet.data_dir)")
	cmd.Flags().StringVar(&yearsFlag, "years", "", "comma-separated years or ranges to restrict ingestion to, or \"all\" (default: unrestricted)")
	return cmd
}

func ingestRetrosheet(cmd *cobra.Command, dirFlag, yearsFlag string) error {
	echo.Header("Ingesting Retrosheet Event Files")

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := dirFlag
	if dir == "" {
		dir = cfg.Retrosheet.DataDir
	}

	years := cfg.Retrosheet.Years
	if yearsFlag != "" {
		parsed, err := parseYearFlag(yearsFlag)
		if err != nil {
			return fmt.Errorf("invalid --years: %w", err)
		}
		years = parsed
	}

	if len(years) > 0 {
		echo.Infof("Restricting ingestion to %s", formatYearRangeWithGaps(years))
	}

	driver := parse.NewDriver(nil)
	driver.RestrictYears(years)

	if err := driver.Parse(context.Background(), dir); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	echo.Successf(
		"Ingested %d ballparks, %d players, %d teams, %d games",
		driver.Ballparks.Count(), driver.Players.Count(), driver.Teams.Count(), driver.Games.Count(),
	)
	return nil
}
