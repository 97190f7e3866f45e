// Package browse lists directories inside the archive root for the file
// browser page, with breadcrumbs and human-readable sizes.
package browse
