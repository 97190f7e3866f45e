package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateDiff(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.ArchiveRoot) == "" {
		return fmt.Errorf("paths.archive_root must be set (or export %s)", archiveRootEnv)
	}
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		return errors.New("paths.api_bind must be set")
	}
	return nil
}

func (c *Config) validateArchive() error {
	switch c.Archive.MovieSplit {
	case SplitFirst, SplitLast:
	default:
		return fmt.Errorf("archive.movie_split must be %q or %q, got %q", SplitFirst, SplitLast, c.Archive.MovieSplit)
	}
	if len(c.Archive.Extensions) == 0 {
		return errors.New("archive.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateDiff() error {
	if c.Diff.Workers <= 0 {
		return errors.New("diff.workers must be positive")
	}
	switch c.Diff.Encoding {
	case EncodingPNG, EncodingWebP:
	default:
		return fmt.Errorf("diff.encoding must be %q or %q, got %q", EncodingPNG, EncodingWebP, c.Diff.Encoding)
	}
	return nil
}

func (c *Config) validateServer() error {
	for _, origin := range c.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("server.allowed_origins: %q must start with http:// or https://", origin)
		}
	}
	return ensurePositiveMap(map[string]int{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"server.idle_timeout":  c.Server.IdleTimeout,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
