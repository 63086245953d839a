package wall

// Version is stamped at build time with
// -ldflags "-X github.com/tauraamui/videowall/pkg/wall.Version=<version>".
var Version = "dev"
