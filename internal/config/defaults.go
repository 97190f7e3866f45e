package config

const (
	defaultArchiveRoot    = "pic"
	defaultLogDir         = "~/.local/share/framediff/logs"
	defaultAPIBind        = "127.0.0.1:5001"
	defaultMovieSplit     = SplitFirst
	defaultDiffWorkers    = 4
	defaultDiffEncoding   = EncodingPNG
	defaultReadTimeout    = 15
	defaultWriteTimeout   = 120
	defaultIdleTimeout    = 60
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogRetention   = 30
	archiveRootEnv        = "FRAMEDIFF_ARCHIVE_ROOT"
	defaultFrameExtension = ".png"
)

// Movie split rules accepted by archive.movie_split.
const (
	SplitFirst = "first"
	SplitLast  = "last"
)

// Visualization encodings accepted by diff.encoding.
const (
	EncodingPNG  = "png"
	EncodingWebP = "webp"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArchiveRoot: defaultArchiveRoot,
			LogDir:      defaultLogDir,
			APIBind:     defaultAPIBind,
		},
		Archive: Archive{
			MovieSplit: defaultMovieSplit,
			Extensions: []string{defaultFrameExtension},
		},
		Diff: Diff{
			Workers:  defaultDiffWorkers,
			Encoding: defaultDiffEncoding,
		},
		Server: Server{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://[::1]:3000",
			},
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
	}
}
