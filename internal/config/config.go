package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the application configuration, read from an app.env file and
// the process environment.
type Config struct {
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresDB       string `mapstructure:"POSTGRES_DB"`
	GoogleMapsAPIKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	LogPath          string `mapstructure:"LOG_PATH"`
}

// LoadConfig reads configuration from app.env in the given directory,
// falling back to environment variables when the file is absent.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("POSTGRES_USER", "")
	viper.SetDefault("POSTGRES_PASSWORD", "")
	viper.SetDefault("POSTGRES_HOST", "")
	viper.SetDefault("POSTGRES_DB", "")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("LOG_PATH", "logs/transform.log")

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// DBSource assembles the PostgreSQL connection string. The port is fixed
// at 5432.
func (c Config) DBSource() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:5432/%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresDB)
}

// InitLogger configures the global zerolog logger to write to the log file
// at path, optionally mirroring output to the terminal. Verbose switches the
// level from Info to Debug.
func InitLogger(path string, verbose, terminal bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("config: failed to open log file: %w", err)
	}

	var writer zerolog.LevelWriter = zerolog.MultiLevelWriter(file)
	if terminal {
		console := zerolog.ConsoleWriter{Out: os.Stdout}
		writer = zerolog.MultiLevelWriter(file, console)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return nil
}
