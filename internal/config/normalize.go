package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeArchive()
	c.normalizeDiff()
	c.normalizeServer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(archiveRootEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.ArchiveRoot = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.ArchiveRoot) == "" {
		c.Paths.ArchiveRoot = defaultArchiveRoot
	}
	var err error
	if c.Paths.ArchiveRoot, err = expandPath(strings.TrimSpace(c.Paths.ArchiveRoot)); err != nil {
		return fmt.Errorf("paths.archive_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeArchive() {
	c.Archive.MovieSplit = strings.ToLower(strings.TrimSpace(c.Archive.MovieSplit))
	if c.Archive.MovieSplit == "" {
		c.Archive.MovieSplit = defaultMovieSplit
	}
	exts := make([]string, 0, len(c.Archive.Extensions))
	seen := make(map[string]struct{}, len(c.Archive.Extensions))
	for _, ext := range c.Archive.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = []string{defaultFrameExtension}
	}
	c.Archive.Extensions = exts
}

func (c *Config) normalizeDiff() {
	if c.Diff.Workers <= 0 {
		c.Diff.Workers = defaultDiffWorkers
	}
	c.Diff.Encoding = strings.ToLower(strings.TrimSpace(c.Diff.Encoding))
	if c.Diff.Encoding == "" {
		c.Diff.Encoding = defaultDiffEncoding
	}
}

func (c *Config) normalizeServer() {
	origins := c.Server.AllowedOrigins[:0]
	for _, origin := range c.Server.AllowedOrigins {
		if trimmed := strings.TrimRight(strings.TrimSpace(origin), "/"); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.Server.AllowedOrigins = origins
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = defaultReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = defaultWriteTimeout
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = defaultIdleTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
