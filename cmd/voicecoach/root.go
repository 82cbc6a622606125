package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"voicecoach/api-gateway/analysis"
	"voicecoach/api-gateway/config"
)

type rootOptions struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "voicecoach",
		Short:        "Interview answer analysis service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "optional YAML/JSON/TOML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(opts), newAnalyzeCmd(opts))
	return root
}

// load reads .env, the config file and the environment, then initialises
// the shared logger.
func (o *rootOptions) load() (*config.Config, *logrus.Logger, error) {
	loaded, err := config.LoadDotEnv(o.envFile)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}

	logger := config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	entry := logger.WithField("file", o.envFile)
	if loaded {
		entry.Debug("Loaded env file")
	} else {
		entry.Debug("No env file found, using the process environment")
	}
	return cfg, logger, nil
}

func buildAnalyzer(cfg *config.Config) (*analysis.Analyzer, error) {
	opts := analysis.DefaultOptions()
	if cfg.ScoringConfig != "" {
		var err error
		opts, err = analysis.LoadOptions(cfg.ScoringConfig)
		if err != nil {
			return nil, errors.Wrap(err, "load scoring options")
		}
	}
	return analysis.NewAnalyzer(opts)
}
