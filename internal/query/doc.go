// Package query is the read-only façade the presentation layer calls.
//
// Every method is one query: it takes a fresh structural snapshot of the
// archive, builds fresh diff memos, and returns plain data. Nothing computed
// by one query is visible to the next. Each query is tagged with a uuid that
// appears in its log lines as query_id.
package query
