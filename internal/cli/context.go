package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/config"
	"github.com/mgpai22/scribe/internal/logging"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	config     *config.Config
	configPath string
	configSeen bool
	logger     *logging.Logger
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
		logger:     logging.Nop(),
	}
}

// ensureConfig loads .env files and the config once per invocation.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	if err := config.LoadEnvFiles(); err != nil {
		return nil, err
	}

	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	c.config = cfg
	c.configPath = resolved
	c.configSeen = exists
	return cfg, nil
}

func (c *commandContext) initLogger(cmd *cobra.Command, cfg *config.Config) error {
	verbose := c.verbose != nil && *c.verbose
	if cfg == nil {
		c.logger = logging.NewLogger(verbose)
		return nil
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// apiKey picks the flag value, then the config, then the environment.
func (c *commandContext) apiKey(flagValue, provider string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if c.config != nil {
		if key := c.config.APIKey(provider); key != "" {
			return key, nil
		}
	}
	env := config.APIKeyEnv(provider)
	if key := os.Getenv(env); key != "" {
		return key, nil
	}
	return "", fmt.Errorf(
		"%s API key is required: use --api-key flag, set [api_keys] in the config, or set %s environment variable",
		provider,
		env,
	)
}
