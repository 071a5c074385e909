package version

// Version is set at build time via -ldflags.
var Version = "dev"

// UserAgent identifies this build in outgoing HTTP requests.
func UserAgent() string {
	return "skillsync/" + Version
}
