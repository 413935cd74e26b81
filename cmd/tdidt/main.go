package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose   bool
	logFile   string
	logger    *zap.Logger
	exitFuncs []func()
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tdidt",
		Short: "tdidt is a tool to grow decision trees",
		Long:  `A tool to grow decision trees from nominal data, test them, and use them to classify samples`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug messages")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to write logs to, rotated as it grows (defaults to STDERR)")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), classifyCmd(config), predictCmd(config))
	return rootCmd
}

// atExit registers a function to release resources when the command ends,
// whether it succeeds or fails.
func (rc *rootCmdConfig) atExit(f func()) {
	rc.exitFuncs = append(rc.exitFuncs, f)
}

// exit runs the functions registered with atExit in reverse order, once,
// and flushes the logs.
func (rc *rootCmdConfig) exit() {
	for i := len(rc.exitFuncs) - 1; i >= 0; i-- {
		rc.exitFuncs[i]()
	}
	rc.exitFuncs = nil
	rc.Sync()
}

func (rc *rootCmdConfig) fail(code int, err error) {
	rc.Logger().Sugar().Debugf("exiting with code %d: %v", code, err)
	rc.exit()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
