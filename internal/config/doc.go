// Package config loads, normalizes, and validates framediff configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FRAMEDIFF_ARCHIVE_ROOT. The Config type centralizes every knob the server
// and CLI need, so the archive root, filename grammar, diff encoding, and log
// routing are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
