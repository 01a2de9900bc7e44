package fitsort

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"

	"github.com/tstromberg/fitsort/pkg/fits"
)

// FilterKeyword is the header keyword patched on copied color frames.
var FilterKeyword = "FILTER"

// copyOpts copies the target of symlinked frames so patching never writes through to a source.
var copyOpts = copy.Options{
	PreserveTimes: true,
	OnSymlink:     func(string) copy.SymlinkAction { return copy.Deep },
}

// Failure records a frame that could not be sorted.
type Failure struct {
	Path  string
	Stage string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Stage, f.Path, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Summary counts the outcome of a run.
type Summary struct {
	Found   int
	Copied  int
	Patched int
	Skipped int
	Planned int
	Failed  int

	Failures []*Failure
}

func (s *Summary) fail(path string, stage string, err error) {
	klog.Errorf("%s failed for %s: %v", stage, path, err)
	s.Failed++
	s.Failures = append(s.Failures, &Failure{Path: path, Stage: stage, Err: err})
}

type outcome int

const (
	copied outcome = iota
	patched
	skipped
	planned
)

// Organize sorts every frame found in c.InDir into c.OutDir. Frames that fail are
// recorded in the summary and do not stop the run.
func Organize(c *Config) (*Summary, error) {
	klog.Infof("organize: %s -> %s", c.InDir, c.OutDir)

	paths, err := Find(c.InDir, c.ext())
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	var in *Inspector
	if c.Inspect && !c.DryRun {
		in, err = NewInspector()
		if err != nil {
			klog.Warningf("inspection disabled: %v", err)
		} else {
			defer func() {
				if err := in.Close(); err != nil {
					klog.Warningf("unable to stop exiftool: %v", err)
				}
			}()
		}
	}

	s := &Summary{Found: len(paths)}
	for _, p := range paths {
		o, err := sortFrame(c, p, in)
		if err != nil {
			var f *Failure
			if errors.As(err, &f) {
				s.fail(f.Path, f.Stage, f.Err)
			} else {
				s.fail(p, "sort", err)
			}
			continue
		}

		switch o {
		case copied:
			s.Copied++
		case patched:
			s.Copied++
			s.Patched++
		case skipped:
			s.Skipped++
		case planned:
			s.Planned++
		}
	}

	klog.Infof("organized %d frames: %d copied (%d patched), %d skipped, %d failed",
		s.Found, s.Copied, s.Patched, s.Skipped, s.Failed)
	return s, nil
}

// sortFrame parses, plans and materializes a single frame.
func sortFrame(c *Config, path string, in *Inspector) (outcome, error) {
	name := filepath.Base(path)
	klog.Infof("processing %s", name)

	f, err := ParseName(name)
	if err != nil {
		return 0, &Failure{Path: path, Stage: "parse", Err: err}
	}
	klog.Infof("frame type: %s, target: %s, camera: %s, filter: %s, date: %s, time: %06d (%s, %s)",
		f.FrameType, f.Target, f.Camera, f.Filter, f.Captured.Format("20060102"), f.Clock, f.Kind, f.Mode)

	night := NightOf(f, c.cutoff())
	klog.Infof("adjusted date: %s", NightDate(night))

	dst := Destination(c.OutDir, f, night)
	if c.DryRun {
		klog.Infof("%s -> %s (dry run)", path, dst)
		return planned, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, &Failure{Path: path, Stage: "mkdir", Err: err}
	}

	_, err = os.Stat(dst)
	if err == nil {
		klog.V(1).Infof("%s exists, skipping", dst)
		return skipped, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return 0, &Failure{Path: path, Stage: "stat", Err: err}
	}

	klog.Infof("%s -> %s", path, dst)
	if err := copy.Copy(path, dst, copyOpts); err != nil {
		return 0, &Failure{Path: path, Stage: "copy", Err: err}
	}

	o := copied
	if !f.IsMono() {
		if err := fits.SetKeyword(dst, FilterKeyword, f.Filter); err != nil {
			return 0, &Failure{Path: path, Stage: "patch", Err: fmt.Errorf("%s: %w", dst, err)}
		}
		klog.V(1).Infof("set %s=%q in %s", FilterKeyword, f.Filter, dst)
		o = patched
	}

	if in != nil {
		in.Log(dst)
	}

	return o, nil
}
