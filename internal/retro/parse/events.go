package parse

import (
	"fmt"
	"strconv"
	"strings"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/lineup"
	"stormlightlabs.org/sabermetrics/internal/retro/store"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// parseSub handles one "start" or "sub" line: playerTag,name,visitorFlag,
// battingOrder,position. visitorFlag is 0 for the visiting team, 1 for
// home — the inverse of the bool a Go reader would expect, so it is
// compared against 0 rather than named "home".
func (d *Driver) parseSub(line string) error {
	if d.cur.Game == nil {
		return fmt.Errorf("sub line with no open game")
	}

	fields := strings.Split(line, ",")
	if len(fields) < 6 {
		return fmt.Errorf("want at least 6 fields, got %d", len(fields))
	}

	// fields[0] is the "start"/"sub" literal itself.
	playerTag := tag.NewPlayer(fields[1])
	visitFlag, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("bad visiting flag %q: %w", fields[3], err)
	}
	order, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("bad batting order %q: %w", fields[4], err)
	}
	position := domain.ParsePosition(fields[5])
	visiting := visitFlag == 0

	fresh := d.cur.Game.Lineup.Sub(playerTag, d.cur.Instance, position, order, visiting)

	player := d.Players.Get(playerTag)
	if player == nil {
		return nil
	}

	teamTag := d.cur.Game.TeamVisiting
	if !visiting {
		teamTag = d.cur.Game.TeamHome
	}

	y := player.Year(store.NewTeamYearKey(teamTag, d.cur.Game.Year))
	y.Validate()
	y.Team = teamTag

	if fresh {
		y.General.GP++
		if d.cur.Instance == lineup.Starter {
			y.General.GS++
		}
	}

	return nil
}
