package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/Egor213/LogLens/internal/domain"
	errorsUtils "github.com/Egor213/LogLens/pkg/errors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		HTTP       `yaml:"http"`
		Prometheus `yaml:"prometheus"`
		Viewer     `yaml:"viewer"`
		Kafka      `yaml:"kafka"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"logviewer"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}

	Viewer struct {
		FilePath        string `yaml:"file_path" env:"VIEWER_FILE_PATH" env-default:"debug.log"`
		LinkTemplate    string `yaml:"link_template" env:"VIEWER_LINK_TEMPLATE" env-default:"vscode://file/{{path}}:{{line_number}}"`
		DisableLinks    bool   `yaml:"disable_links" env:"VIEWER_DISABLE_LINKS"`
		LinkPathSearch  string `yaml:"link_path_search" env:"VIEWER_LINK_PATH_SEARCH"`
		LinkPathReplace string `yaml:"link_path_replace" env:"VIEWER_LINK_PATH_REPLACE"`
		MaxSizeMB       int    `yaml:"max_size_mb" env:"VIEWER_MAX_SIZE_MB" env-default:"100"`

		// Deprecated keys from the editor-specific settings.
		VSCodeLinks       *bool  `yaml:"vscode_links"`
		VSCodePathSearch  string `yaml:"vscode_path_search"`
		VSCodePathReplace string `yaml:"vscode_path_replace"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"log-snapshots"`
	}
)

const (
	defaultConfigPath = "configs/config.yaml"
	defaultEnvPath    = ".env"
)

// New loads the config from APP_CONFIG_PATH (or the default path).
func New() (*Config, error) {
	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = defaultConfigPath
	}
	return Load(pathToConfig)
}

// Load reads path, or only the environment when path does not exist.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(defaultEnvPath); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	} else {
		log.WithField("path", path).Info("Config file not found, reading environment only")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	}

	cfg.Viewer.Normalize()
	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Normalize folds the deprecated vscode_* keys into the current ones.
// Current keys win when both are set.
func (v *Viewer) Normalize() {
	if v.VSCodeLinks != nil && !*v.VSCodeLinks {
		v.DisableLinks = true
	}
	if v.LinkPathSearch == "" {
		v.LinkPathSearch = v.VSCodePathSearch
	}
	if v.LinkPathReplace == "" {
		v.LinkPathReplace = v.VSCodePathReplace
	}
	v.VSCodeLinks = nil
	v.VSCodePathSearch = ""
	v.VSCodePathReplace = ""
}

func (v Viewer) ParseConfig() domain.ParseConfig {
	cfg := domain.ParseConfig{
		FilePath:        v.FilePath,
		LinkTemplate:    v.LinkTemplate,
		LinkPathSearch:  v.LinkPathSearch,
		LinkPathReplace: v.LinkPathReplace,
	}
	if v.DisableLinks {
		cfg.LinkTemplate = ""
	}
	return cfg
}
