// Package preflight provides readiness checks for the filesystem paths and
// HTTP server framediff depends on.
//
// These checks run in two contexts:
//   - framediffd calls RunAll at startup and logs every failure before it
//     begins serving.
//   - The CLI "framediff status" command shows the same results alongside a
//     probe of the running server.
package preflight
