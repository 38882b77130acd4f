package version

var (
	Version   = "0.1.0"
	GitCommit = "dev"
)

// String returns a human-readable version string.
func String() string {
	return "kmodtui " + Version + " (" + GitCommit + ")"
}
