package parse

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/store"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// parseTeams consumes root/TEAM<yyyy>: teamTag,leagueLetter,location,name.
// Creates or updates the TeamYear entry for yr.
func (d *Driver) parseTeams(root string, yr int) error {
	path := filepath.Join(root, fmt.Sprintf("TEAM%d", yr))
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d.Sink.Raw("Parsing Teams:")

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		chunks := strings.Split(line, ",")
		if len(chunks) != 4 {
			continue
		}

		teamTag := tag.NewTeam(chunks[0])
		r := d.Teams.CreateOrGet(teamTag)

		y := r.Year(yr)
		y.Validate()
		y.League = domain.ParseLeagueLetter(chunks[1])
		y.Location = chunks[2]
		y.Name = chunks[3]

		d.Sink.Raw(" %s", teamTag.Ref)
	}

	d.Sink.Flush()
	return scanner.Err()
}

// parseRosters consumes every *.ROS/*.ros file under root: playerTag,
// surname,given,bats,throws,teamTag,positionCode. The player record must
// already exist (from retroid.dat); a line for an unknown player is skipped.
func (d *Driver) parseRosters(root string, yr int) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	d.Sink.Raw("Processing rosters")

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !hasSuffixFold(name, ".ROS") {
			continue
		}

		if err := d.parseRosterFile(filepath.Join(root, name), yr); err != nil {
			d.Sink.Logf("error: could not open %s: %v", name, err)
		}
		d.Sink.Raw(".")
	}

	d.Sink.Flush()
	return nil
}

func (d *Driver) parseRosterFile(path string, yr int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		chunks := strings.Split(line, ",")
		if len(chunks) != 7 {
			continue
		}

		playerTag := tag.NewPlayer(chunks[0])
		r := d.Players.Get(playerTag)
		if r == nil {
			continue
		}

		teamTag := tag.NewTeam(chunks[5])
		y := r.Year(store.NewTeamYearKey(teamTag, yr))
		y.Validate()
		y.Bats = domain.ParseHandedness(chunks[3])
		y.Throws = domain.ParseHandedness(chunks[4])
	}

	return scanner.Err()
}

// hasSuffixFold reports whether name ends with suffix, case-insensitively.
func hasSuffixFold(name, suffix string) bool {
	if len(name) < len(suffix) {
		return false
	}
	return strings.EqualFold(name[len(name)-len(suffix):], suffix)
}
