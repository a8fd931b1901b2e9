// Package config handles tool configuration and printer envelope
// profiles. A profile names the printable area of a machine; selecting
// one drives chunk-size mode so every piece fits the bed.
package config

// Config holds all tool settings.
type Config struct {
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
	Logging        LoggingConfig      `yaml:"logging"`
	Server         ServerConfig       `yaml:"server"`
}

// Profile describes one printer's usable envelope in millimeters.
type Profile struct {
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
	Flip bool    `yaml:"flip"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
	WorkDir     string `yaml:"work_dir"` // fragment scratch space, "" = OS temp
}

// Default returns a Config with sensible default values. The built-in
// profiles cover common consumer printers; a config file can add more
// or override them.
func Default() *Config {
	return &Config{
		Profiles: map[string]Profile{
			"ender3":    {MaxX: 220, MaxY: 220},
			"prusa-mk4": {MaxX: 250, MaxY: 210},
			"mini":      {MaxX: 180, MaxY: 180},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:        ":8750",
			MaxUploadMB: 256,
		},
	}
}
