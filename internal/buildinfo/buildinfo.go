// Package buildinfo carries the version stamped in with -ldflags "-X".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the release version, else the commit, else "dev". It goes in
// the window title and the startup log line.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	default:
		return "dev"
	}
}

// String is the -version output.
func String() string {
	return fmt.Sprintf("roam %s (commit %s, built %s)", Version, Commit, Date)
}
