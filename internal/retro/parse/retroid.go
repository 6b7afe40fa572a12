package parse

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// parseRetroIds consumes root/retroid.dat: surname,given,retroid(8),debut.
// retroid's sixth character classifies the person: 0 active-after-1984,
// 1 retired-before-1984, 8 manager-only, 9 umpire-only. Only 0/1 become
// Player records.
func (d *Driver) parseRetroIds(root string) error {
	path := filepath.Join(root, "retroid.dat")
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
		if len(chunks) != 4 {
			continue
		}

		retroid := chunks[2]
		if len(retroid) < 6 {
			continue
		}

		// managers/coaches/umpires are out of scope for the player table
		switch retroid[5] {
		case '8', '9':
			continue
		}

		r := d.Players.CreateOrGet(tag.NewPlayer(retroid))
		r.SurName = chunks[0]
		r.FirstName = chunks[1]
		r.Debut = domain.ParseDate(chunks[3])
	}

	d.Sink.Logf("Processed %d records", d.Players.Count())
	return scanner.Err()
}
