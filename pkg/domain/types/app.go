package types

// AppName is the CLI binary name.
const AppName = "shipit"

// Version is the build version, overridden via -ldflags at release time.
var Version = "v0.0.0"
