// Package main hosts the framediff CLI entrypoint and command graph.
//
// The Cobra-based command tree answers the same queries as the HTTP server
// directly against the archive: target and build listings, verdict matrices,
// frame comparisons, and directory browsing. It centralizes configuration
// resolution and output formatting (tables or --json) so subcommands only
// call into internal/query and render the result.
package main
