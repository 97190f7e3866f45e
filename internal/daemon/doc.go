// Package daemon owns the lifecycle of the long-running framediffd process.
//
// It ties configuration, the query service, and the HTTP server into a single
// Start/Stop pair guarded by a flock-based lock file so only one instance
// serves a given log directory. Startup runs the filesystem preflight checks
// and prunes old log files; failures there are logged as warnings rather than
// aborting, since an archive root can appear after the server starts.
//
// Query and rendering logic live in internal/query and internal/server; this
// package only coordinates them.
package daemon
