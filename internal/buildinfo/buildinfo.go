// Package buildinfo reports the version stamped into the binaries at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/casiec/internal/buildinfo.Version=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// Print writes the build stamp to w, one field per line.
func Print(w io.Writer, name string) {
	fmt.Fprintf(w, "%s\nBuild version: %s\nBuild date: %s\nBuild commit: %s\n", name, Version, Date, Commit)
}
