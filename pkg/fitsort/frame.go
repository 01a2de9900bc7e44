package fitsort

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CalibrationTarget is the target directory shared by all calibration frames.
var CalibrationTarget = "_Calibration Frames"

// NoFilter is the filter recorded for color calibration frames.
var NoFilter = "No_Filter"

var (
	calibrationTypes = map[string]bool{"Flat": true, "Dark": true, "Bias": true}
	monoFilters      = map[string]bool{
		"L": true, "R": true, "G": true, "B": true,
		"Ha": true, "OIII": true, "SII": true,
		"H": true, "O": true, "S": true,
	}
)

// minTokens is the token count every frame name must reach.
const minTokens = 6

// FrameKind distinguishes science frames from calibration frames.
type FrameKind int

const (
	Light FrameKind = iota
	Calibration
)

func (k FrameKind) String() string {
	if k == Calibration {
		return "calibration"
	}
	return "light"
}

// ColorMode distinguishes frames shot through a mono filter from one-shot-color frames.
type ColorMode int

const (
	Color ColorMode = iota
	Mono
)

func (m ColorMode) String() string {
	if m == Mono {
		return "mono"
	}
	return "color"
}

// Frame is the metadata decoded from a frame's file name.
type Frame struct {
	Name      string
	FrameType string
	Kind      FrameKind
	Mode      ColorMode
	Target    string
	Camera    string
	Filter    string

	// Captured is the capture date and clock, in no particular zone.
	Captured time.Time
	// Clock is the capture time of day as the number HHMMSS.
	Clock int
}

// IsMono reports whether the frame was shot through a mono filter.
func (f *Frame) IsMono() bool { return f.Mode == Mono }

// IsCalibration reports whether the frame is a Flat, Dark or Bias.
func (f *Frame) IsCalibration() bool { return f.Kind == Calibration }

// ParseError describes a file name that does not follow the frame naming convention.
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Name, e.Reason)
}

// noToken marks a field that is not read from a token.
const noToken = -1

// lastToken marks a field read from the final token.
const lastToken = -2

// layout holds the token positions of each field for one kind and mode.
type layout struct {
	target   int
	camera   int
	filter   int
	dateTime int
}

var layouts = map[FrameKind]map[ColorMode]layout{
	Calibration: {
		Mono:  {target: noToken, camera: 3, filter: 4, dateTime: 5},
		Color: {target: noToken, camera: 3, filter: noToken, dateTime: 5},
	},
	Light: {
		Mono:  {target: 1, camera: 4, filter: 5, dateTime: 7},
		Color: {target: 1, camera: 4, filter: lastToken, dateTime: 6},
	},
}

// filterSlot is the token checked for a mono filter name.
var filterSlot = map[FrameKind]int{
	Calibration: 4,
	Light:       5,
}

// ParseName decodes a frame file name such as
// Light_M31_Setup1_Cam_ZWO_L_300.00s_20250721-223000_0001.fit.
func ParseName(name string) (*Frame, error) {
	toks := strings.Split(name, "_")
	if len(toks) < minTokens {
		return nil, &ParseError{Name: name, Reason: fmt.Sprintf("%d tokens, need at least %d", len(toks), minTokens)}
	}

	f := &Frame{Name: name, FrameType: toks[0]}
	if calibrationTypes[f.FrameType] {
		f.Kind = Calibration
	}
	if monoFilters[toks[filterSlot[f.Kind]]] {
		f.Mode = Mono
	}

	l := layouts[f.Kind][f.Mode]
	tok := func(field string, i int) (string, error) {
		if i == lastToken {
			i = len(toks) - 1
		}
		if i >= len(toks) {
			return "", &ParseError{Name: name, Reason: fmt.Sprintf("no %s token at position %d for %s %s frame", field, i, f.Mode, f.Kind)}
		}
		return toks[i], nil
	}

	var err error
	f.Target = CalibrationTarget
	if l.target != noToken {
		if f.Target, err = tok("target", l.target); err != nil {
			return nil, err
		}
	}

	if f.Camera, err = tok("camera", l.camera); err != nil {
		return nil, err
	}

	f.Filter = NoFilter
	if l.filter != noToken {
		if f.Filter, err = tok("filter", l.filter); err != nil {
			return nil, err
		}
		f.Filter = cutExt(f.Filter)
	}

	dt, err := tok("date-time", l.dateTime)
	if err != nil {
		return nil, err
	}
	if f.Captured, f.Clock, err = parseDateTime(cutExt(dt)); err != nil {
		return nil, &ParseError{Name: name, Reason: err.Error()}
	}

	return f, nil
}

// cutExt drops everything from the first dot, so "LPro.fit" becomes "LPro".
func cutExt(s string) string {
	before, _, _ := strings.Cut(s, ".")
	return before
}

// parseDateTime parses a YYYYMMDD-HHMMSS token.
func parseDateTime(s string) (time.Time, int, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return time.Time{}, 0, fmt.Errorf("date-time %q has no '-'", s)
	}

	day, err := time.Parse("20060102", parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("date %q is not YYYYMMDD", parts[0])
	}

	clock := parts[1]
	if len(clock) != 6 {
		return time.Time{}, 0, fmt.Errorf("time %q is not HHMMSS", clock)
	}
	tod, err := time.Parse("150405", clock)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("time %q is not HHMMSS: %w", clock, err)
	}
	n, err := strconv.Atoi(clock)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("time %q: %w", clock, err)
	}

	captured := day.Add(time.Duration(tod.Hour())*time.Hour +
		time.Duration(tod.Minute())*time.Minute +
		time.Duration(tod.Second())*time.Second)
	return captured, n, nil
}
