package types

// ServiceName is used in health responses and log output.
const ServiceName = "gramfetch"

// Version is overwritten at build time via -ldflags.
var Version = "dev"
