package procgraph

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/procgraph/descriptor"
	"github.com/viant/procgraph/service/meta"
	"go.uber.org/multierr"
)

// Config is a serialisable representation of the service configuration. It
// can be loaded from YAML or JSON; ${env.KEY} expressions are expanded on load.
type Config struct {
	Compiler   CompilerConfig   `json:"compiler" yaml:"compiler"`
	Repository RepositoryConfig `json:"repository" yaml:"repository"`
	Definition DefinitionConfig `json:"definition" yaml:"definition"`
}

// CompilerConfig bounds descriptor encoding
type CompilerConfig struct {
	ScratchSize       int `json:"scratchSize" yaml:"scratchSize"`
	MaxDescriptorSize int `json:"maxDescriptorSize" yaml:"maxDescriptorSize"`
}

// RepositoryConfig selects the deployment store; an empty URL keeps deployments in memory
type RepositoryConfig struct {
	URL string `json:"url" yaml:"url"`
}

// DefinitionConfig sets where relative definition URLs are resolved
type DefinitionConfig struct {
	BaseURL string `json:"baseURL" yaml:"baseURL"`
}

// DefaultConfig returns a Config populated with package defaults
func DefaultConfig() *Config {
	return &Config{
		Compiler: CompilerConfig{
			ScratchSize:       descriptor.DefaultScratchSize,
			MaxDescriptorSize: descriptor.DefaultCapacityLimit,
		},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var err error
	if c.Compiler.ScratchSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("compiler.scratchSize must be > 0"))
	}
	if c.Compiler.MaxDescriptorSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("compiler.maxDescriptorSize must be > 0"))
	}
	if c.Compiler.ScratchSize > c.Compiler.MaxDescriptorSize {
		err = multierr.Append(err, fmt.Errorf("compiler.scratchSize %d exceeds compiler.maxDescriptorSize %d", c.Compiler.ScratchSize, c.Compiler.MaxDescriptorSize))
	}
	return err
}

// LoadConfig reads a YAML config over the defaults
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
