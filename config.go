package tdidt

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v2"
)

// Config holds the parameters to grow a tree.
type Config struct {
	// MaxDepth is the depth at which nodes become leaves,
	// -1 for unlimited depth.
	MaxDepth int `yaml:"max_depth"`
	// ImpurityThreshold is the percentage of records not
	// belonging to the majority class tolerated on a leaf.
	ImpurityThreshold float64 `yaml:"impurity_threshold"`
	// Workers is the number of workers developing nodes
	// concurrently. 0 means one per logical core and is
	// resolved by callers; Grow treats it as 1.
	Workers int `yaml:"workers"`
	// EmptyQueueSleep is the time a worker waits before
	// pulling again from a queue with no pending tasks
	// while other tasks are still running.
	EmptyQueueSleep time.Duration `yaml:"empty_queue_sleep"`
	Logger          *zap.Logger   `yaml:"-"`
}

// DefaultConfig returns a configuration with unlimited depth,
// no impurity tolerance and a single worker.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:        -1,
		Workers:         1,
		EmptyQueueSleep: 10 * time.Millisecond,
		Logger:          zap.NewNop(),
	}
}

// Validate returns an error wrapping ErrInvalidConfig if the
// configuration cannot be used to grow a tree, nil otherwise.
func (c *Config) Validate() error {
	if c.MaxDepth < -1 {
		return errors.Wrapf(ErrInvalidConfig, "max depth %d is below -1", c.MaxDepth)
	}
	if c.ImpurityThreshold < 0 || c.ImpurityThreshold > 100 {
		return errors.Wrapf(ErrInvalidConfig, "impurity threshold %v is not a percentage", c.ImpurityThreshold)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative number of workers %d", c.Workers)
	}
	if c.EmptyQueueSleep < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative empty queue sleep %v", c.EmptyQueueSleep)
	}
	if c.EmptyQueueSleep == 0 && c.Workers > 1 {
		return errors.Wrapf(ErrInvalidConfig, "empty queue sleep must be positive with %d workers", c.Workers)
	}
	return nil
}

// StoppingPolicy returns the stopping policy for the configuration.
func (c *Config) StoppingPolicy() StoppingPolicy {
	return NewStoppingPolicy(c.MaxDepth, c.ImpurityThreshold)
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

/*
ReadConfig takes a slice of bytes with a YAML document and returns the
configuration it describes, with default values for absent properties,
or an error if it cannot be parsed, has unknown properties or is not valid. Durations are given
as strings such as "10ms".
*/
func ReadConfig(b []byte) (*Config, error) {
	c := DefaultConfig()
	err := yaml.UnmarshalStrict(b, c)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml config")
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadConfigFromFile reads the file at the given path and parses it with ReadConfig.
func ReadConfigFromFile(filepath string) (*Config, error) {
	b, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config yml file %s", filepath)
	}
	c, err := ReadConfig(b)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config yml file %s", filepath)
	}
	return c, nil
}
