// Package version holds build metadata, overridden at link time with
// -ldflags "-X github.com/Etherlyvan/movie-mate/internal/version.Version=v1.2.3".
package version

import "time"

var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // fallback when not set at link time
)
