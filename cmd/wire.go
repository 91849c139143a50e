package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	configadapter "github.com/chimera-sh/chimera-cli/internal/adapters/config"
	chainsource "github.com/chimera-sh/chimera-cli/internal/adapters/identity/chain"
	filesource "github.com/chimera-sh/chimera-cli/internal/adapters/identity/file"
	"github.com/chimera-sh/chimera-cli/internal/adapters/rest"
	"github.com/chimera-sh/chimera-cli/internal/application"
	"github.com/chimera-sh/chimera-cli/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const tokenEnvKey = "CHIMERA_TOKEN"

type app struct {
	service    *application.Service
	client     ports.DirectoryClient
	fileTokens *filesource.Source
	logger     *zap.Logger
	now        func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := configadapter.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	tokens, err := chainsource.NewEnvFirstWithFileFallback(tokenEnvKey, cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("wire token source chain: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	client := rest.NewClient(cfg.APIURL, http.DefaultClient, tokens)

	return &app{
		service:    application.NewService(client, ports.SystemClock{}, logger),
		client:     client,
		fileTokens: filesource.NewSource(cfg.TokenPath),
		logger:     logger,
		now:        time.Now,
	}, nil
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if os.Getenv("CHIMERA_DEBUG") != "" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}
