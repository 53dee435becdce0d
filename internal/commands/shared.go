package commands

import (
	"github.com/sdpower/ccwatch-go/internal/config"
	"github.com/sdpower/ccwatch-go/internal/output"
	"github.com/sdpower/ccwatch-go/internal/reconcile"
	"github.com/sdpower/ccwatch-go/internal/source"
	"go.uber.org/zap"
)

// Version is stamped at build time.
var Version = "dev"

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func buildEngine(cfg config.Config, log *zap.Logger) *reconcile.Engine {
	remote := source.NewRemote(cfg.Remote.Enabled, cfg.RemoteTimeout(), nil, log)
	local := source.NewLocal(cfg.Local.Command, cfg.LocalTimeout(), nil, log)
	return reconcile.New(remote, local, log)
}

func displayOptions(cfg config.Config) output.Options {
	return output.Options{
		ShowPercentage:    cfg.Display.ShowPercentage,
		ShowRemainingTime: cfg.Display.ShowRemainingTime,
		FallbackLimitUSD:  cfg.Display.FallbackLimitUSD,
	}
}
