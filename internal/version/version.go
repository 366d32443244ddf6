package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/libtour/libtour/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/libtour/libtour/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/libtour/libtour/internal/version.Date={{.Date}}
)
