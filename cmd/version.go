// File: cmd/version.go
package cmd

// Version is the application version, set at build time via ldflags:
// go build -ldflags "-X github.com/driftcursor/driftcursor/cmd.Version=1.0.0"
var Version = "0.1.0"
