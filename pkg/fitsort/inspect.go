package fitsort

import (
	"fmt"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// Inspector reads embedded header metadata from sorted frames via exiftool.
type Inspector struct {
	et *exiftool.Exiftool
}

// NewInspector starts an exiftool process.
func NewInspector() (*Inspector, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &Inspector{et: et}, nil
}

// Fields returns the metadata exiftool extracts from path.
func (i *Inspector) Fields(path string) (map[string]interface{}, error) {
	fis := i.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return nil, fmt.Errorf("no metadata for %q", path)
	}
	fi := fis[0]
	if fi.Err != nil {
		return nil, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}
	return fi.Fields, nil
}

// Log logs the metadata of path at verbosity 1.
func (i *Inspector) Log(path string) {
	fields, err := i.Fields(path)
	if err != nil {
		klog.Warningf("unable to inspect %s: %v", path, err)
		return
	}
	for k, v := range fields {
		klog.V(1).Infof("%s: %q=%v", path, k, v)
	}
}

// Close stops the exiftool process.
func (i *Inspector) Close() error {
	return i.et.Close()
}
