package commands

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/leapstack-labs/dopler/internal/cli/config"
	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/registry"
	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/loader"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	if !cfg.Color {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, or the defaults when the
// command runs without the root command.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// newDeserializer returns a deserializer with its own factory.
func (c *CommandContext) newDeserializer() *loader.Deserializer {
	return loader.New(core.NewFactory(),
		loader.WithLogger(c.Logger),
		loader.WithDelimiter(c.Cfg.DelimiterRune()),
	)
}

// LoadModel deserializes a single file.
func (c *CommandContext) LoadModel(path string) (*core.DecisionModel, error) {
	return c.newDeserializer().DeserializeFile(path)
}

// LoadModels deserializes files concurrently into a registry. Each file gets
// its own deserializer and factory. A failing file is recorded in the
// registry and does not stop the others unless failFast is set.
func (c *CommandContext) LoadModels(ctx context.Context, paths []string, failFast bool) (*registry.ModelRegistry, error) {
	reg := registry.NewModelRegistry()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := c.LoadModel(path)
			if err != nil {
				abs, absErr := filepath.Abs(path)
				if absErr != nil {
					abs = path
				}
				reg.RegisterFailure(abs, err)
				c.Logger.Debug("model failed to load", "file", path, "error", err)
				if failFast {
					return err
				}
				return nil
			}
			reg.Register(m)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reg, err
	}
	return reg, nil
}
