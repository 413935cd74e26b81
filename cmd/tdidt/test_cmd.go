package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*treeCmdConfig
	testInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Grow a tree and test its performance against a test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.exit()
			if config.testInput == "" {
				config.fail(1, fmt.Errorf("required test-input flag was not set"))
			}
			t, features := config.grow(cmd)
			ctx := config.Context()
			testingSet, closeTestingSet, err := config.openDataset(ctx, config.rootCmdConfig, config.testInput, features, false)
			if err != nil {
				config.fail(7, fmt.Errorf("reading testing set: %v", err))
			}
			config.atExit(closeTestingSet)
			count, err := testingSet.Count(ctx)
			if err != nil {
				config.fail(8, fmt.Errorf("counting testing set samples: %v", err))
			}
			config.Logf("Testing tree against testset with %d samples...", count)
			e, err := t.Test(ctx, testingSet)
			if err != nil {
				config.fail(9, fmt.Errorf("testing tree: %v", err))
			}
			config.Logf("Done")
			fmt.Printf("%f success rate: %d correct, %d incorrect, %d unpredicted, %d failed (%d skipped)\n", e.Accuracy(), e.Correct, e.Incorrect, e.Unpredicted, e.Failed, e.Skipped)
		},
	}
	config.treeCmdConfig = newTreeCmdConfig(rootConfig, cmd)
	cmd.Flags().StringVarP(&(config.testInput), "test-input", "t", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the tree against (required)")
	return cmd
}
