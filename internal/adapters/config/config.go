package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".chimera"
	configFile = "config.toml"

	apiURLKey    = "api.url"
	tokenPathKey = "auth.token_path"

	defaultAPIURL = "http://localhost:8000"

	dirMode         = 0o700
	fileMode        = 0o600
	tempFilePattern = ".config-*.toml.tmp"
)

// Config is the resolved client configuration. Environment variables take
// precedence over the config file; the file over built-in defaults.
type Config struct {
	APIURL    string
	TokenPath string
}

func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(apiURLKey, defaultAPIURL)
	cfg.SetDefault(tokenPathKey, filepath.Join(homeDir, configDir, "token"))

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	apiURL := cfg.GetString(apiURLKey)
	if envURL := os.Getenv("CHIMERA_API_URL"); envURL != "" {
		apiURL = envURL
	}
	if apiURL == "" {
		return Config{}, errors.New("api url is empty")
	}

	tokenPath := cfg.GetString(tokenPathKey)
	if tokenPath == "" {
		return Config{}, errors.New("token path is empty")
	}
	tokenPath, err = filepath.Abs(tokenPath)
	if err != nil {
		return Config{}, fmt.Errorf("resolve token path: %w", err)
	}

	return Config{
		APIURL:    apiURL,
		TokenPath: filepath.Clean(tokenPath),
	}, nil
}

const currentSchemaVersion = 1

type fileSchema struct {
	Version int        `toml:"version"`
	API     apiSchema  `toml:"api"`
	Auth    authSchema `toml:"auth"`
}

type apiSchema struct {
	URL string `toml:"url"`
}

type authSchema struct {
	TokenPath string `toml:"token_path"`
}

// WriteDefault creates ~/.chimera/config.toml with the built-in defaults.
// An existing file is left alone.
func WriteDefault() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	path := filepath.Join(homeDir, configDir, configFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat config file: %w", err)
	}

	schema := fileSchema{
		Version: currentSchemaVersion,
		API:     apiSchema{URL: defaultAPIURL},
		Auth:    authSchema{TokenPath: filepath.Join(homeDir, configDir, "token")},
	}

	if err := writeFileAtomic(path, schema); err != nil {
		return "", err
	}

	return path, nil
}

func writeFileAtomic(path string, schema fileSchema) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	cleanup = false

	return nil
}
