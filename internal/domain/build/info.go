// Package build describes the running binary.
package build

import "fmt"

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// String renders a one-line version banner.
func (i Info) String() string {
	version := i.Version
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("harpoon %s (commit %s, built %s, %s)", version, orUnknown(i.Commit), orUnknown(i.BuildDate), orUnknown(i.GoVersion))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// RepoURL returns the repository URL.
func RepoURL() string {
	return "https://github.com/reklai/harpoon-telescope"
}
