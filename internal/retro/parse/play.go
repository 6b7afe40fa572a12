package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/lineup"
	"stormlightlabs.org/sabermetrics/internal/retro/state"
	"stormlightlabs.org/sabermetrics/internal/retro/store"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// playContext carries the per-play values every event sub-parser needs:
// the state node being filled in, the batter's lineup card, the instance
// fielder lookups should resolve against, and the batting/fielding team's
// year keys.
type playContext struct {
	node         *state.Node
	card         lineup.Card
	preEventInst lineup.Instance
	tybat        store.TeamYearKey
	tyfield      store.TeamYearKey
}

// parsePlay handles one "play" line: inning,visitingFlag,batter,count,
// pitches,event. It resolves which state node this play belongs to (reusing
// the node pre-allocated by the previous play, or starting a fresh chain),
// fills in the batter/count/pitches preamble, resolves the pitcher, decodes
// the event, and pre-allocates the next play's node.
func (d *Driver) parsePlay(line string) error {
	if d.cur.Game == nil {
		return fmt.Errorf("play line with no open game")
	}

	fields := strings.Split(line, ",")
	if len(fields) < 7 {
		return fmt.Errorf("want at least 7 fields, got %d", len(fields))
	}
	fields = fields[1:] // drop the "play" literal

	last := d.Arena.At(d.cur.LastState)
	var cur state.Handle
	switch {
	case last == nil || last.Type == state.SNULL || last.Type == state.SENDGAME:
		cur = d.Arena.Create(state.S___0)
		d.cur.Game.Plays = cur
	case last.Type.EndInning():
		cur = d.Arena.Create(state.S___0)
		last.GameLink = cur
	default:
		if last.GameLink == state.NoHandle {
			return fmt.Errorf("no pre-allocated next state for game %s", d.cur.Game.Tag.Ref)
		}
		cur = last.GameLink
	}
	node := d.Arena.At(cur)
	if node == nil {
		return fmt.Errorf("invalid state handle for game %s", d.cur.Game.Tag.Ref)
	}
	d.cur.State = cur

	// Snapshot the pitcher-lookup instance before this play's inning is
	// assigned: it carries the previous play's inning but the same
	// base/out state the node was created with.
	curInst := d.cur.Instance

	inning, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("bad inning %q: %w", fields[0], err)
	}
	node.Inning = inning
	d.cur.Instance.Inning = inning

	// fields[1] is the visiting flag; it's derivable from the batter's
	// lineup card (set below) and isn't stored separately.

	batterTag := tag.NewPlayer(fields[2])
	card := d.cur.Game.Lineup.Card(batterTag)
	d.cur.Batter = d.Players.Get(batterTag)
	node.Batter = domain.PositionRef{Position: card.Position, PlayerRef: batterTag.Ref}
	node.Visiting = card.Visiting

	node.Count = domain.ParseCount(fields[3])
	node.Pitches = parsePlayPitches(fields[4])

	pitcherTag := d.cur.Game.Lineup.FindByPosition(domain.Pitcher, !card.Visiting, curInst)
	d.cur.Pitcher = d.Players.Get(pitcherTag)

	battingTeam, fieldingTeam := d.cur.Game.TeamHome, d.cur.Game.TeamVisiting
	if card.Visiting {
		battingTeam, fieldingTeam = d.cur.Game.TeamVisiting, d.cur.Game.TeamHome
	}

	ctx := &playContext{
		node: node,
		card: card,
		preEventInst: lineup.Instance{
			BaseOut: d.cur.Instance.BaseOut,
			Inning:  node.Inning,
			Runs:    node.RunsScored(),
		},
		tybat:   store.NewTeamYearKey(battingTeam, d.cur.Game.Year),
		tyfield: store.NewTeamYearKey(fieldingTeam, d.cur.Game.Year),
	}

	eventString := strings.Join(fields[5:], ",")
	d.parseEvent(eventString, ctx)

	node.GameLink = d.Arena.Create(d.cur.Instance.BaseOut.State())
	d.cur.LastState = cur

	return nil
}

// parseEvent decodes one play's event field: an optional advance clause
// (after the first '.'), matched against the full original string with the
// event-type dispatch table, plus an optional '/'-delimited description
// list that is parsed out but — matching the source — not acted upon.
func (d *Driver) parseEvent(eventString string, ctx *playContext) {
	al := strings.SplitN(eventString, ".", 2)
	if len(al) > 1 {
		d.parseEventAdv(al[1], ctx)
	}

	ev := stripEventNoise(eventString)
	d.parseEventEv(ev, ctx)

	if dl := strings.Split(al[0], "/"); len(dl) > 1 {
		d.parseEventDesc(dl[1:], ctx)
	}
}

func stripEventNoise(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '#' || r == '!' {
			return -1
		}
		return r
	}, s)
}

type eventHandler func(*Driver, string, *playContext)

// eventDispatch is the ordered, first-match-wins regex table classifying an
// event string's type. Every pattern is left-anchored; a handler receives
// only the matched prefix, not the whole event string.
var eventDispatch = []struct {
	re     *regexp.Regexp
	handle eventHandler
}{
	{regexp.MustCompile(`^([1-9]{0,8}[1-9](\([123B]\))?){1,3}`), (*Driver).parseEvOut},
	{regexp.MustCompile(`^(DGR([1-9])?|([SDT][1-9?]*)|H[^P]R?(\([1-9]\))?)`), (*Driver).parseEvHit},
	{regexp.MustCompile(`^FC([1-9?])?`), (*Driver).parseEvFC},
	{regexp.MustCompile(`^([1-9]{0,8}E[1-9]|FLE[1-9])`), (*Driver).parseEvError},
	{regexp.MustCompile(`^(HP|C)`), (*Driver).parseEvBatter},
	{regexp.MustCompile(`^K(.*)?`), (*Driver).parseEvStrikeout},
	{regexp.MustCompile(`^(IW?|W)(.*)?`), (*Driver).parseEvWalk},
	{regexp.MustCompile(`^NP`), (*Driver).parseEvIgnore},
	{regexp.MustCompile(`^(CS[23H](\([1-9]{0,8}((E[1-9](/TH)?)|[1-9])\))?(\(UR\))?;?)+`), (*Driver).parseEvBaseRunning},
	{regexp.MustCompile(`^(BK|DI|OA|PB|WP)`), (*Driver).parseEvBaseRunning},
	{regexp.MustCompile(`^PO[123]\([1-9]{0,8}((E[1-9](/TH)?)|[1-9])\)`), (*Driver).parseEvBaseRunning},
	{regexp.MustCompile(`^POCS[123H]\([1-9]{0,8}((E[1-9](/TH)?)|[1-9])\)`), (*Driver).parseEvBaseRunning},
	{regexp.MustCompile(`^(((SB[23])|(SBH(\(UR\))?));?)+`), (*Driver).parseEvBaseRunning},
}

// parseEventEv classifies ev against eventDispatch and invokes the first
// matching handler. An unmatched event is logged but does not abort
// ingestion.
func (d *Driver) parseEventEv(ev string, ctx *playContext) {
	for _, entry := range eventDispatch {
		loc := entry.re.FindStringIndex(ev)
		if loc == nil || loc[0] != 0 {
			continue
		}
		entry.handle(d, ev[loc[0]:loc[1]], ctx)
		return
	}
	d.Sink.Diagnostic(d.file.Name, d.file.Line, "unmatched event string %q", ev)
}

// parseEventDesc is intentionally a no-op: the description-list flags
// (batted-ball trajectory, GDP, SF, and the like) are split out here but not
// acted upon, matching the outs/hits already decoded independently by their
// own handlers.
func (d *Driver) parseEventDesc(flags []string, ctx *playContext) {}

var advanceTokenRe = regexp.MustCompile(`^[B123][-X][123H]`)

// parseEventAdv decodes a ';'-delimited advance clause. Each token's
// successful-advance destination is accumulated into one Advance value and
// applied to the live BaseOut once, after every token is processed — a
// single BaseOut.Advance call replaces occupancy wholesale from its
// argument, so applying it per-token would let a later token in the same
// clause erase an earlier one's advance.
func (d *Driver) parseEventAdv(advString string, ctx *playContext) {
	var merged domain.Advance

	for _, sz := range strings.Split(advString, ";") {
		if sz == "" {
			continue
		}

		loc := advanceTokenRe.FindStringIndex(sz)
		if loc == nil || loc[0] != 0 {
			continue
		}

		from := domain.ParseBase(sz[0:1])
		to := domain.ParseBase(sz[2:3])
		out := sz[1] == 'X'

		var ur, norbi, rbi, wp bool
		if len(sz) > loc[1] {
			suffix := sz[loc[1]:]
			ur = strings.Contains(suffix, "(UR)")
			norbi = strings.Contains(suffix, "(NORBI)") || strings.Contains(suffix, "(NR)")
			rbi = strings.Contains(suffix, "(RBI)")
			wp = strings.Contains(suffix, "(WP)")
		}

		var tokenAdv domain.Advance
		if out {
			d.cur.Instance.BaseOut.Runner(from, true)
			ctx.node.Event.Outs = append(ctx.node.Event.Outs, domain.Out{TagOut: true, Base: to})
			d.incrementOuts()
		} else {
			tokenAdv.Set(from, to)
			merged.Set(from, to)
		}

		if to == domain.Home && !out {
			if rbi || !norbi {
				if d.cur.Batter != nil {
					y := d.cur.Batter.Year(ctx.tybat)
					y.Validate()
					y.Batting.RBI++
				}
			}
			if !ur && d.cur.Pitcher != nil {
				y := d.cur.Pitcher.Year(ctx.tyfield)
				y.Validate()
				y.Pitching.ER++
			}
			ctx.node.Event.RunsScored++
		}

		if wp && d.cur.Pitcher != nil {
			y := d.cur.Pitcher.Year(ctx.tyfield)
			y.Validate()
			y.Pitching.WP++
		}

		ctx.node.Event.Advance.Merge(tokenAdv)
	}

	d.cur.Instance.BaseOut.Advance(merged)
}

// incrementOuts records one more out against the live instance, resetting
// occupancy and outs once three are reached (the start of the next half).
func (d *Driver) incrementOuts() {
	d.cur.Instance.BaseOut.Outs++
	if d.cur.Instance.BaseOut.Outs >= 3 {
		d.cur.Instance.BaseOut.Reset()
	}
}

var outSeqRe = regexp.MustCompile(`[1-9]{0,8}[1-9](\([123B]\))?`)

// parseEvOut decodes a batted-ball out sequence, possibly repeated up to
// three times for a multi-out play. Each digit is an assist unless it's the
// last fielding digit (or immediately followed by a parenthesized base),
// in which case it's the putout; an 'E' switches the remaining digits in
// that sequence into error bookkeeping instead.
func (d *Driver) parseEvOut(matched string, ctx *playContext) {
	if d.cur.Pitcher != nil {
		y := d.cur.Pitcher.Year(ctx.tyfield)
		y.Validate()
		y.Pitching.BFP++
	}
	ctx.node.Event.Type = state.EventO

	for _, seq := range outSeqRe.FindAllString(matched, -1) {
		out := domain.Out{Unassisted: true}
		errMode := false
		exBase := false
		base := domain.NoBase

		for i := 0; i < len(seq); i++ {
			c := seq[i]
			switch {
			case exBase && (c == '1' || c == '2' || c == '3' || c == 'B'):
				base = domain.ParseBase(string(c))
			case c == 'E':
				errMode = true
			case c >= '1' && c <= '9':
				pos := domain.Position(c - '0')
				ref := d.cur.Game.Lineup.FindByPosition(pos, !ctx.card.Visiting, ctx.preEventInst)
				fielder := d.Players.Get(ref)

				switch {
				case errMode:
					ctx.node.Event.Type = state.EventE
					if fielder != nil {
						y := fielder.Year(ctx.tyfield)
						y.Validate()
						y.Fielding.E++
					}
				case i+1 >= len(seq) || seq[i+1] == '(':
					if fielder != nil {
						y := fielder.Year(ctx.tyfield)
						y.Validate()
						y.Fielding.PO++
					}
					out.Putout = domain.PositionRef{Position: pos, PlayerRef: ref.Ref}
					d.incrementOuts()
					if d.cur.Pitcher != nil {
						y := d.cur.Pitcher.Year(ctx.tyfield)
						y.Validate()
						y.Pitching.IP++
					}
				default:
					if fielder != nil {
						y := fielder.Year(ctx.tyfield)
						y.Validate()
						y.Fielding.A++
					}
					out.Assists = append(out.Assists, domain.PositionRef{Position: pos, PlayerRef: ref.Ref})
					out.Unassisted = false
				}
			case c == '(':
				exBase = true
			case c == ')':
				exBase = false
			}
		}

		out.Base = base
		ctx.node.Event.Outs = append(ctx.node.Event.Outs, out)
	}
}

var hrShapeRe = regexp.MustCompile(`^H[^P]R?(\([1-9]\))?`)

// parseEvHit charges the pitcher a hit and, for a home-run shape
// specifically, the batter an HR plus a Batter->Home advance, and an RBI
// unless the advance clause already moved the batter home (and credited it).
// Single/double/triple detail isn't decoded beyond this.
func (d *Driver) parseEvHit(matched string, ctx *playContext) {
	if d.cur.Pitcher != nil {
		y := d.cur.Pitcher.Year(ctx.tyfield)
		y.Validate()
		y.Pitching.BFP++
		y.Pitching.H++
	}

	if !hrShapeRe.MatchString(matched) {
		return
	}

	if d.cur.Batter != nil {
		y := d.cur.Batter.Year(ctx.tybat)
		y.Validate()
		y.Batting.HR++
		if ctx.node.Event.Advance.Get(domain.Batter) != domain.Home {
			y.Batting.RBI++
		}
	}

	var adv domain.Advance
	adv.Set(domain.Batter, domain.Home)
	ctx.node.Event.Advance.Merge(adv)
	ctx.node.Event.Type = state.EventHR
}

var fcDetailRe = regexp.MustCompile(`[1-9]{0,8}((E[1-9](/TH)?)|[1-9])`)

// parseEvFC decodes a fielder's choice: an out on a force elsewhere, the
// batter reaching base safely. The fielding detail is parsed for its stat
// side effects only — it is not recorded on the event's Outs.
func (d *Driver) parseEvFC(matched string, ctx *playContext) {
	d.incrementOuts()
	if d.cur.Pitcher != nil {
		y := d.cur.Pitcher.Year(ctx.tyfield)
		y.Validate()
		y.Pitching.IP++
		y.Pitching.BFP++
	}
	ctx.node.Event.Type = state.EventFC

	if loc := fcDetailRe.FindStringIndex(matched); loc != nil {
		d.parseOutString(matched[loc[0]:loc[1]], ctx)
	}
}

// parseOutString decodes a fielding-detail string (assist digits, a final
// putout digit, or an 'E'-prefixed error run) into an Out, applying fielder
// stat side effects along the way. Used by parseEvFC, which discards the
// result beyond those side effects.
func (d *Driver) parseOutString(sz string, ctx *playContext) domain.Out {
	out := domain.Out{Unassisted: true, Base: domain.Batter}

	errMode := false
	tcheck := 0

	for i := 0; i < len(sz); i++ {
		c := sz[i]
		switch {
		case c == 'E':
			errMode = true
		case errMode:
			switch {
			case c >= '1' && c <= '9' && tcheck < 3:
				pos := domain.Position(c - '0')
				ref := d.cur.Game.Lineup.FindByPosition(pos, !ctx.card.Visiting, ctx.preEventInst)
				out.Putout = domain.PositionRef{Position: pos, PlayerRef: ref.Ref}
				if fielder := d.Players.Get(ref); fielder != nil {
					y := fielder.Year(ctx.tyfield)
					y.Validate()
					y.Fielding.E++
				}
			case c == '/' && tcheck == 0:
				tcheck = 1
			case c == 'T' && tcheck == 1:
				tcheck = 2
			case c == 'H' && tcheck == 2:
				tcheck = 3
			}
		case c >= '1' && c <= '9':
			pos := domain.Position(c - '0')
			ref := d.cur.Game.Lineup.FindByPosition(pos, !ctx.card.Visiting, ctx.preEventInst)
			fielder := d.Players.Get(ref)

			if i+1 >= len(sz) {
				out.Putout = domain.PositionRef{Position: pos, PlayerRef: ref.Ref}
				if fielder != nil {
					y := fielder.Year(ctx.tyfield)
					y.Validate()
					y.Fielding.PO++
				}
				if !out.Unassisted {
					switch pos {
					case domain.FirstBase:
						out.Base = domain.First
						out.TagOut = !ctx.preEventInst.BaseOut.Force(domain.First)
					case domain.SecondBase:
						out.Base = domain.Second
						out.TagOut = !ctx.preEventInst.BaseOut.Force(domain.Second)
					case domain.ThirdBase:
						out.Base = domain.Third
						out.TagOut = !ctx.preEventInst.BaseOut.Force(domain.Third)
					}
				}
			} else {
				if fielder != nil {
					y := fielder.Year(ctx.tyfield)
					y.Validate()
					y.Fielding.A++
				}
				out.Assists = append(out.Assists, domain.PositionRef{Position: pos, PlayerRef: ref.Ref})
				out.Unassisted = false
			}
		}
	}

	return out
}

// parseEvError, parseEvBatter, and parseEvBaseRunning are intentionally
// no-ops: the source's equivalents are empty stubs, and error-on-batted-ball,
// catcher's interference/HBP event detail, and stolen-base/pickoff/balk/wild
// pitch/passed ball base-running detail are tolerated but not decoded.
func (d *Driver) parseEvError(matched string, ctx *playContext)       {}
func (d *Driver) parseEvBatter(matched string, ctx *playContext)      {}
func (d *Driver) parseEvBaseRunning(matched string, ctx *playContext) {}

// parseEvWalk credits the batter a walk and, absent any advance clause
// already placing the batter, sends them to first.
func (d *Driver) parseEvWalk(matched string, ctx *playContext) {
	if d.cur.Batter != nil {
		y := d.cur.Batter.Year(ctx.tybat)
		y.Validate()
		y.Batting.BB++
	}
	ctx.node.Event.Type = state.EventW

	if ctx.node.Event.Advance.Get(domain.Batter) != domain.NoBase {
		return
	}

	var adv domain.Advance
	adv.Set(domain.Batter, domain.First)
	ctx.node.Event.Advance.Merge(adv)
	d.cur.Instance.BaseOut.Advance(adv)
}

// parseEvStrikeout credits the pitcher a strikeout. Any base-running suffix
// (stolen base, wild pitch, passed ball, other advance) is tolerated but not
// decoded.
func (d *Driver) parseEvStrikeout(matched string, ctx *playContext) {
	d.incrementOuts()
	ctx.node.Event.Type = state.EventK

	if d.cur.Pitcher != nil {
		y := d.cur.Pitcher.Year(ctx.tyfield)
		y.Validate()
		y.Pitching.SO++
		y.Pitching.IP++
		y.Pitching.BFP++
	}
}

// parseEvIgnore handles "NP" (no play) tokens: nothing to record.
func (d *Driver) parseEvIgnore(matched string, ctx *playContext) {}
