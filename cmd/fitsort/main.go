// fitsort sorts FITS frames into camera/target/frame type/night directories
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/tstromberg/fitsort/pkg/fitsort"
)

var (
	ext       = flag.String("ext", fitsort.DefaultExt, "extension of frames to sort")
	cutoff    = flag.Int("cutoff", fitsort.DefaultNightCutoff, "HHMMSS at or after which frames roll over to the next date (0 selects the default)")
	dryRun    = flag.Bool("n", false, "dry-run mode, don't copy things")
	inspect   = flag.Bool("inspect", false, "log embedded metadata of copied frames (requires exiftool)")
	watchFlag = flag.Bool("watch", false, "watch the source directory for new frames and re-sort")
	settle    = flag.Duration("settle", fitsort.DefaultSettle, "quiet period before re-sorting in watch mode")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <source dir> [output dir]\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	out, err := outDir(flag.Arg(1))
	if err != nil {
		klog.Exitf("output dir: %v", err)
	}

	c := &fitsort.Config{
		InDir:       flag.Arg(0),
		OutDir:      out,
		Ext:         *ext,
		NightCutoff: *cutoff,
		DryRun:      *dryRun,
		Inspect:     *inspect,
		Settle:      *settle,
	}

	s, err := fitsort.Organize(c)
	if err != nil {
		klog.Exitf("organize failed: %v", err)
	}
	report(s)

	if !*watchFlag {
		return
	}

	dirs, err := fitsort.Dirs(c.InDir)
	if err != nil {
		klog.Exitf("watch: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = fitsort.Watch(ctx, dirs, c.Settle, func() {
		s, err := fitsort.Organize(c)
		if err != nil {
			klog.Errorf("organize failed: %v", err)
			return
		}
		report(s)
	})
	if err != nil {
		klog.Exitf("watch failed: %v", err)
	}
}

// outDir resolves the output root: the given path made absolute, or ./output.
func outDir(arg string) (string, error) {
	if arg != "" {
		return filepath.Abs(arg)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, "output"), nil
}

func report(s *fitsort.Summary) {
	fmt.Printf("found %d, copied %d, patched %d, skipped %d, planned %d, failed %d\n",
		s.Found, s.Copied, s.Patched, s.Skipped, s.Planned, s.Failed)
	for _, f := range s.Failures {
		fmt.Printf("  %v\n", f)
	}
}
