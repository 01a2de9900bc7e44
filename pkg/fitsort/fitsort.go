// Package fitsort sorts astronomical FITS frames into a camera/target/night hierarchy
// based on the tokens in their file names.
package fitsort

import "time"

var (
	// DefaultExt is the file extension frames are discovered by.
	DefaultExt = ".fit"
	// DefaultNightCutoff is the HHMMSS clock at or after which a frame rolls over to the next date.
	DefaultNightCutoff = 160000
	// NightFormat is the layout of the date part of a night directory.
	NightFormat = "2006-01-02"
)

// Config holds configuration for fitsort.
type Config struct {
	InDir  string
	OutDir string
	Ext    string

	// NightCutoff is the HHMMSS rollover clock. Zero selects DefaultNightCutoff,
	// so rolling every frame over needs a cutoff of 1 (all but 000000).
	NightCutoff int
	DryRun      bool
	Inspect     bool

	// Settle is how long the source tree must be quiet before a watch rerun.
	Settle time.Duration
}

func (c *Config) ext() string {
	if c.Ext == "" {
		return DefaultExt
	}
	return c.Ext
}

func (c *Config) cutoff() int {
	if c.NightCutoff == 0 {
		return DefaultNightCutoff
	}
	return c.NightCutoff
}
