package version

// GitVersion is injected at build time via -ldflags.
var GitVersion = "dev"
