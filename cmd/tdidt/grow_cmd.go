package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/tdidt/tree"
	"github.com/pbanos/tdidt/tree/dot"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*treeCmdConfig
	output string
	format string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data to predict a certain feature and print it.`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.exit()
			if err := config.validateFormat(); err != nil {
				config.fail(1, err)
			}
			t, _ := config.grow(cmd)
			err := outputTree(config.Context(), config.output, config.format, t)
			if err != nil {
				config.fail(7, err)
			}
		},
	}
	config.treeCmdConfig = newTreeCmdConfig(rootConfig, cmd)
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.format), "format", "f", "text", "format to write the tree in: text or dot")
	return cmd
}

func (gcc *growCmdConfig) validateFormat() error {
	if gcc.format != "text" && gcc.format != "dot" {
		return fmt.Errorf("unknown tree format %s", gcc.format)
	}
	return nil
}

func outputTree(ctx context.Context, outputPath, format string, t *tree.Tree) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	if format == "dot" {
		return dot.Write(ctx, f, t)
	}
	_, err = io.WriteString(f, t.String())
	return err
}
