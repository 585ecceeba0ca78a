package meta

// Version is set at build time via -ldflags "-X thispc/internal/meta.Version=...".
var Version = "dev"
