package version

// Populated at release time via -ldflags
var (
	version = "Development"
	commit  = "unknown"
)

func GetVersion() string {
	return version
}

func GetCommit() string {
	return commit
}
