package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/klauspost/cpuid/v2"
	"github.com/pbanos/tdidt"
	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pbanos/tdidt/feature/yaml"
	"github.com/pbanos/tdidt/tree"
	"github.com/spf13/cobra"
)

// treeCmdConfig holds the configuration shared by
// the commands that need to grow a tree.
type treeCmdConfig struct {
	*rootCmdConfig
	inputConfig
	dataInput         string
	metadataInput     string
	classFeature      string
	configInput       string
	maxDepth          int
	impurityThreshold float64
	workers           int
	ctx               context.Context
	cancelFunc        context.CancelFunc
}

func newTreeCmdConfig(rootConfig *rootCmdConfig, cmd *cobra.Command) *treeCmdConfig {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	defaults := tdidt.DefaultConfig()
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.Flags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the generated tree should predict (required)")
	cmd.Flags().StringVar(&(config.configInput), "config", "", "path to a YML file with the configuration to grow the tree, overridden by flags")
	cmd.Flags().IntVar(&(config.maxDepth), "max-depth", defaults.MaxDepth, "depth at which nodes become leaves (-1 for unlimited)")
	cmd.Flags().Float64Var(&(config.impurityThreshold), "impurity", defaults.ImpurityThreshold, "percentage of samples outside the majority class tolerated on a leaf")
	cmd.Flags().IntVar(&(config.workers), "workers", defaults.Workers, "number of workers growing the tree concurrently (0 for one per logical core)")
	cmd.Flags().StringVar(&(config.table), "table", "samples", "table to read samples from on SQL databases")
	cmd.Flags().StringVar(&(config.collection), "collection", "samples", "collection to read samples from on MongoDB databases")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return config
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}

/*
growConfig returns the configuration to grow the tree: the one read
from the config file if any, or the default one, with the values of
the flags set on the command line.
*/
func (tcc *treeCmdConfig) growConfig(cmd *cobra.Command) (*tdidt.Config, error) {
	cfg := tdidt.DefaultConfig()
	if tcc.configInput != "" {
		var err error
		cfg, err = tdidt.ReadConfigFromFile(tcc.configInput)
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = tcc.maxDepth
	}
	if cmd.Flags().Changed("impurity") {
		cfg.ImpurityThreshold = tcc.impurityThreshold
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = tcc.workers
	}
	if cfg.Workers == 0 {
		cfg.Workers = cpuid.CPU.LogicalCores
		if cfg.Workers < 1 {
			cfg.Workers = 1
		}
	}
	cfg.Logger = tcc.Logger()
	return cfg, cfg.Validate()
}

/*
grow reads the features from the metadata, the training data from the input
and grows a tree with them, exiting the process with a different code for
each step that fails.
*/
func (tcc *treeCmdConfig) grow(cmd *cobra.Command) (*tree.Tree, []feature.Feature) {
	err := tcc.Validate()
	if err != nil {
		tcc.fail(1, err)
	}
	ctx := tcc.Context()
	tcc.atExit(tcc.ContextCancelFunc())
	tcc.Logf("Reading features from metadata at %s...", tcc.metadataInput)
	features, err := yaml.ReadFeaturesFromFile(tcc.metadataInput)
	if err != nil {
		tcc.fail(2, err)
	}
	cfg, err := tcc.growConfig(cmd)
	if err != nil {
		tcc.fail(3, err)
	}
	trainingSet, closeTrainingSet, err := tcc.openDataset(ctx, tcc.rootCmdConfig, tcc.dataInput, features, true)
	if err != nil {
		tcc.fail(4, fmt.Errorf("reading training set: %v", err))
	}
	table, err := dataset.Encode(ctx, trainingSet, tcc.classFeature)
	closeTrainingSet()
	if err != nil {
		tcc.fail(5, fmt.Errorf("reading training set: %v", err))
	}
	if table.Dropped > 0 {
		tcc.Logger().Sugar().Warnf("Ignoring %d samples with no value for %s", table.Dropped, tcc.classFeature)
	}
	tcc.Logf("Growing tree from a set with %d samples and %d features to predict %s ...", len(table.Records), len(table.Attributes), tcc.classFeature)
	t, err := tdidt.Grow(ctx, table, cfg)
	if err != nil {
		tcc.fail(6, fmt.Errorf("growing the tree: %v", err))
	}
	tcc.Logf("Done")
	return t, features
}

func (tcc *treeCmdConfig) Context() context.Context {
	tcc.setContextAndCancelFunc()
	return tcc.ctx
}

func (tcc *treeCmdConfig) ContextCancelFunc() context.CancelFunc {
	tcc.setContextAndCancelFunc()
	return tcc.cancelFunc
}

func (tcc *treeCmdConfig) setContextAndCancelFunc() {
	if tcc.ctx == nil {
		tcc.ctx, tcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
}
