package parse

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/state"
	"stormlightlabs.org/sabermetrics/internal/retro/store"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// Driver is the ingestion pipeline's top-level orchestrator: the record
// tables, the state arena, the logging sink, a year restriction, and the
// file/game cursors threaded through every sub-parser. It replaces the
// source's Parser class, which held the same collaborators as member
// fields and a process-global StateManager/table singleton; here every
// collaborator is an explicit value so tests can build a fresh Driver per
// case instead of sharing global state.
type Driver struct {
	Ballparks *store.BallparkTable
	Players   *store.PlayerTable
	Teams     *store.TeamTable
	Games     *store.GameTable
	Arena     *state.Arena

	Sink Sink

	years []int // sorted ascending; empty means unrestricted

	file fileCursor
	cur  GameCursor
}

// NewDriver returns a Driver with fresh tables and arena, logging through
// sink (a default LogSink if nil).
func NewDriver(sink Sink) *Driver {
	if sink == nil {
		sink = NewLogSink(nil)
	}
	return &Driver{
		Ballparks: store.NewBallparkTable(),
		Players:   store.NewPlayerTable(),
		Teams:     store.NewTeamTable(),
		Games:     store.NewGameTable(),
		Arena:     state.NewArena(),
		Sink:      sink,
		cur:       GameCursor{LastState: state.NoHandle, State: state.NoHandle},
	}
}

// RestrictYears limits parseYearlyData to the given years. An empty or nil
// slice restores unrestricted ingestion.
func (d *Driver) RestrictYears(years []int) {
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)
	d.years = sorted
}

// yearRestricted reports whether year y should be ingested, mirroring the
// source's Parser::yearRestricted: an empty restriction list admits every
// year; otherwise y must appear in the (sorted) list.
func (d *Driver) yearRestricted(y int) bool {
	if len(d.years) == 0 {
		return true
	}
	for _, z := range d.years {
		if z == y {
			return true
		}
		if z > y {
			return false
		}
	}
	return false
}

var yearDirPattern = regexp.MustCompile(`^\d{4}$`)

// Parse runs the full ingestion pipeline against root: the ballpark and
// retroid masters, then every admitted year's team/roster/event-file data.
// ctx is checked once per input line, so cancellation surfaces as ctx.Err()
// once the current line finishes processing rather than mid-line.
func (d *Driver) Parse(ctx context.Context, root string) error {
	if err := d.parseBallparks(root); err != nil {
		d.Sink.Logf("failed to process parks.dat: %v", err)
	}

	if err := d.parseRetroIds(root); err != nil {
		d.Sink.Logf("failed to process retroid.dat: %v", err)
	}

	return d.parseYearlyData(ctx, root)
}

// parseYearlyData walks root for yyyy-named subdirectories and parses each
// admitted year's team file, rosters, and event files in order.
func (d *Driver) parseYearlyData(ctx context.Context, root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() || !yearDirPattern.MatchString(entry.Name()) {
			continue
		}

		yr, err := strconv.Atoi(entry.Name())
		if err != nil || !d.yearRestricted(yr) {
			continue
		}

		d.Sink.Logf("Processing data files for year %d...", yr)

		yearDir := filepath.Join(root, entry.Name())

		if err := d.parseTeams(yearDir, yr); err != nil {
			d.Sink.Logf("failed to process team file for %d: %v", yr, err)
		}
		if err := d.parseRosters(yearDir, yr); err != nil {
			d.Sink.Logf("failed to process rosters for %d: %v", yr, err)
		}
		if err := d.parseGameData(ctx, yearDir, yr); err != nil {
			return err
		}
	}

	return nil
}

// parseGameData parses every *.EVA/*.EVN file in dir for season yr.
func (d *Driver) parseGameData(ctx context.Context, dir string, yr int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	d.Sink.Raw("Processing games")

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(hasSuffixFold(name, ".EVA") || hasSuffixFold(name, ".EVN")) {
			continue
		}

		d.Sink.Raw(".")
		if err := d.parseFile(ctx, filepath.Join(dir, name), yr); err != nil {
			return err
		}
	}

	d.Sink.Flush()
	return nil
}

// parseFile reads one event file line by line, dispatching on the first
// comma field: id/info/start/sub/play/data/com/badj.
func (d *Driver) parseFile(ctx context.Context, path string, year int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d.file = fileCursor{Name: path, Line: 1}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		chunks := strings.Split(line, ",")

		switch chunks[0] {
		case "id":
			if len(chunks) >= 2 {
				g := d.Games.CreateOrGet(tag.NewGame(chunks[1]))
				g.Year = year
				d.cur.reset(g)
			}
		case "info":
			if !d.parseInfo(chunks) {
				d.Sink.Diagnostic(d.file.Name, d.file.Line, "malformed info line: %s", line)
			}
		case "data", "com", "badj":
			// accepted, no effect on the in-memory model
		case "start", "sub":
			if err := d.parseSub(line); err != nil {
				d.Sink.Diagnostic(d.file.Name, d.file.Line, "malformed %s line: %v", chunks[0], err)
			}
		case "play":
			if err := d.parsePlay(line); err != nil {
				d.Sink.Diagnostic(d.file.Name, d.file.Line, "parse error: %v", err)
			}
		}

		d.file.Line++
	}

	if err := scanner.Err(); err != nil {
		return NewParseError(path, d.file.Line, err)
	}
	return nil
}

// parseInfo sets a typed field on the current game from an "info,key,value"
// line. Unrecognized keys set nothing and return false, which the caller
// reports as a malformed info line (only the keys spec.md names carry
// semantics here).
func (d *Driver) parseInfo(info []string) bool {
	if d.cur.Game == nil {
		return false
	}
	if len(info) < 3 {
		return false
	}

	switch info[1] {
	case "visteam":
		d.cur.Game.TeamVisiting = tag.NewTeam(info[2])
	case "hometeam":
		d.cur.Game.TeamHome = tag.NewTeam(info[2])
	case "date":
		d.cur.Game.StartDate = parseInfoDate(info[2])
	case "number":
		n, err := strconv.Atoi(info[2])
		if err != nil {
			d.cur.Game.Type = domain.UnknownGameType
		} else {
			d.cur.Game.Type = domain.ParseGameType(n)
		}
	case "starttime":
		d.cur.Game.StartTime = info[2]
	case "daynight":
		d.cur.Game.Night = info[2] == "night"
	case "usedh":
		d.cur.Game.UseDH = domain.ParseBool(info[2])
	default:
		return false
	}

	return true
}

// parseInfoDate parses the info line's date field, which is YYYY/MM/DD -
// the reverse order of the MM/DD/YYYY fields domain.ParseDate handles
// elsewhere (ballpark opened/closed, player debut).
func parseInfoDate(s string) domain.Date {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &y, &m, &d); err != nil {
		return domain.Date{}
	}
	return domain.Date{Month: m, Day: d, Year: y}
}
