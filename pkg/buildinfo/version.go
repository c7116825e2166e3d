// Package buildinfo carries the version stamped into the carousel binary.
//
// Release builds set the variables with -ldflags "-X", e.g.
//
//	-X github.com/matzehuels/carousel/pkg/buildinfo.Version=v0.3.0
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	// go install builds carry no ldflags but do record the module version.
	if Version != "dev" {
		return
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
}

// String is the multi-line build description logged under --verbose.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return "{{.Name}} version " + Version + "\ncommit: " + Commit + "\nbuilt: " + Date + "\n"
}

// UserAgent is the Server header sent by "carousel serve".
func UserAgent() string { return "carousel/" + Version }
