package fitsort

import "time"

// NightOf returns the observing night a frame belongs to. Frames whose clock is at
// or after cutoff (HHMMSS) roll over to the following calendar day.
func NightOf(f *Frame, cutoff int) time.Time {
	y, m, d := f.Captured.Date()
	night := time.Date(y, m, d, 0, 0, 0, 0, f.Captured.Location())
	if f.Clock >= cutoff {
		return night.AddDate(0, 0, 1)
	}
	return night
}

// NightDate formats a night as used in directory names.
func NightDate(night time.Time) string {
	return night.Format(NightFormat)
}
