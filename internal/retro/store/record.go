// Package store implements the process-wide, tag-keyed record tables for
// ballparks, teams, players, and games, plus the per-player-year statistical
// counters accumulated during ingestion.
package store

import "stormlightlabs.org/sabermetrics/internal/retro/tag"

// Record is the shared header every concrete record embeds: its identifying
// tag. The source's CoreRecord base class also carried a print() hook and a
// weight() size estimate; neither has a home in an in-memory-only core with
// no printer collaborator, so Record stays to just the tag.
type Record struct {
	Tag tag.Tag
}

// ID returns the record's identifying tag.
func (r Record) ID() tag.Tag { return r.Tag }

// YearEntry is the "born null, becomes valid on first touch" marker embedded
// in every per-year record (TeamYear, PlayerYear).
type YearEntry struct {
	valid bool
}

// IsValid reports whether this year entry has been touched by a roster or
// substitution event yet.
func (y YearEntry) IsValid() bool { return y.valid }

// Validate marks this year entry as touched (P5).
func (y *YearEntry) Validate() { y.valid = true }
