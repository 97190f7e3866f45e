package testsupport

import (
	"path/filepath"
	"testing"

	"framediff/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ArchiveRoot = filepath.Join(base, "pic")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Logging.Format = "json"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithArchiveRoot points the test config at an existing archive directory.
func WithArchiveRoot(root string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.ArchiveRoot = root
	}
}

// WithMovieSplit overrides the movie split rule on the test config.
func WithMovieSplit(split string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.MovieSplit = split
	}
}

// WithEncoding overrides the visualization encoding on the test config.
func WithEncoding(encoding string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Diff.Encoding = encoding
	}
}
