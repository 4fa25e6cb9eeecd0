package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Game    GameConfig    `mapstructure:"game" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`
}

// GameConfig contains the default quiz settings. Command-line flags
// override these per run.
type GameConfig struct {
	Mode     string `mapstructure:"mode" validate:"required,oneof=flag_to_name name_to_capital capital_to_name"`
	Region   string `mapstructure:"region" validate:"required"`
	Language string `mapstructure:"language" validate:"required,bcp47_language_tag"`
}

// StorageConfig contains filesystem paths for persistent state and
// assets.
type StorageConfig struct {
	DBPath   string `mapstructure:"db_path" validate:"required"`
	FlagsDir string `mapstructure:"flags_dir" validate:"required"`
	// DataDir optionally overrides the embedded country data files.
	DataDir string `mapstructure:"data_dir"`
}

// AudioConfig contains background music settings.
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume" validate:"gte=0,lte=1"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
