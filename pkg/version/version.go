package version

// Build metadata injected via ldflags, e.g.
// -X 'github.com/vizforge/vizforge/pkg/version.Version=v1.0.0'
var (
	// Version is the semantic version of the binary
	Version = "unknown"
	// CommitHash is the git commit the binary was built from
	CommitHash = "unknown"
	// BuildDate is the build timestamp in RFC3339 format
	BuildDate = "unknown"
)

// Info holds the build information in a structured format.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildDate:  BuildDate,
	}
}
