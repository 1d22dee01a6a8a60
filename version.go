package glimpse

// Version is the library version. Release builds override it via
// -ldflags "-X github.com/glimpse-dev/glimpse.Version=...".
var Version = "0.1.0"
