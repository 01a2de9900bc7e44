package fitsort

import (
	"fmt"
	"path/filepath"
	"time"
)

// Destination returns where a frame is sorted to below outRoot:
// <camera>/<target>/<frame type>/<night> - <filter>/<name>.
func Destination(outRoot string, f *Frame, night time.Time) string {
	return filepath.Join(outRoot, f.Camera, f.Target, f.FrameType, nightDir(f, night), f.Name)
}

func nightDir(f *Frame, night time.Time) string {
	return fmt.Sprintf("%s - %s", NightDate(night), f.Filter)
}
