package parse

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// parseBallparks consumes root/parks.dat: tag,name,aka,city,state,open,close,
// league,notes... Notes absorb every remaining comma-delimited field, so it
// is sliced from after the eighth comma of the raw line rather than rejoined from
// the split chunks.
func (d *Driver) parseBallparks(root string) error {
	path := filepath.Join(root, "parks.dat")
	f, err := os.Open(path)
	if err != nil {
		d.Sink.Logf("could not open %s: %v", path, err)
		return err
	}
	defer f.Close()

	d.Sink.Logf("Processing file %s...", path)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		chunks := strings.Split(line, ",")
		if len(chunks) < 9 {
			continue
		}

		r := d.Ballparks.CreateOrGet(tag.NewBallpark(chunks[0]))
		r.Name = chunks[1]
		r.Nickname = chunks[2]
		r.City = chunks[3]
		r.State = chunks[4]
		r.Opened = domain.ParseDate(chunks[5])
		r.Closed = domain.ParseDate(chunks[6])
		r.League = domain.ParseLeague(chunks[7])

		if notesParts := strings.SplitN(line, ",", 9); len(notesParts) == 9 {
			r.Notes = notesParts[8]
		}
	}

	d.Sink.Logf("Processed %d records", d.Ballparks.Count())
	return scanner.Err()
}
