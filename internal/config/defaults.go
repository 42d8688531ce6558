package config

const (
	defaultConfigPath   = "~/.config/mediashrink/config.toml"
	defaultAssetDirName = "assets"
	defaultEncoderBin   = "ffmpeg"
	defaultWorkers      = 1
	maxWorkers          = 64
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	// EnvAssetRoot overrides paths.asset_root.
	EnvAssetRoot = "MEDIASHRINK_ROOT"
	// EnvTool overrides encoder.binary.
	EnvTool = "MEDIASHRINK_TOOL"
)

// Default returns a Config populated with repository defaults. The asset root is
// left empty and resolved during normalization.
func Default() Config {
	return Config{
		Encoder: Encoder{
			Binary:  defaultEncoderBin,
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
