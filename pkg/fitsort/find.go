package fitsort

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Find returns the paths of all non-hidden files below root ending in ext, in walk order.
func Find(root string, ext string) ([]string, error) {
	found := []string{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}

			base := filepath.Base(path)
			if strings.HasPrefix(base, ".") {
				klog.V(2).Infof("skipping hidden file %s", path)
				return nil
			}

			if strings.HasSuffix(base, ext) {
				klog.V(1).Infof("found %s", path)
				found = append(found, path)
			}

			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return found, nil
}

// Dirs returns root and every directory below it.
func Dirs(root string) ([]string, error) {
	dirs := []string{}
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				dirs = append(dirs, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return dirs, nil
}
