// Package server exposes the query façade over HTTP with gin.
//
// JSON endpoints live under /api, HTML pages at / and /targets, and raw
// archive files under /images. Every request is tagged with an X-Request-ID
// that also appears in the access log and in the query logs it triggers.
package server
