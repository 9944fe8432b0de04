package ppcollect

var (
	// Version is the version of ppcollect, set by build flags.
	Version = "v0.1.0"
	// Build is the build timestamp, set by build flags.
	Build = "n/a"
)
