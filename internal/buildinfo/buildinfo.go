package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("marblemachine %s (commit=%s, date=%s)", Version, Commit, Date)
}
