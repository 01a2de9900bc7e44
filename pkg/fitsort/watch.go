package fitsort

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// DefaultSettle is how long a watched tree must stay quiet before a rerun.
var DefaultSettle = 5 * time.Second

// Watch calls fn each time the directories in dirs have seen changes and then been
// quiet for settle. It returns when ctx is done.
func Watch(ctx context.Context, dirs []string, settle time.Duration, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	klog.Infof("watching %d dirs ...", len(dirs))

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			klog.V(1).Infof("event: %v", event)
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.Add(event.Name); err != nil {
					klog.Warningf("unable to watch %s: %v", event.Name, err)
				}
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		case <-timer.C:
			fn()
		}
	}
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
