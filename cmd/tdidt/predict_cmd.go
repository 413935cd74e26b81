package main

import (
	"fmt"
	"os"

	"github.com/pbanos/tdidt/dataset/inputsample"
	"github.com/pbanos/tdidt/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*treeCmdConfig
	undefinedValue string
}

type stdoutFeatureValueRequester string

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a value for a sample answering questions",
		Long:  `Grow a tree and use it to predict the class feature value for a sample answering a reduced set of question about its features`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.exit()
			if config.dataInput == "" {
				config.fail(1, fmt.Errorf("required input flag was not set: STDIN is used to answer questions"))
			}
			t, features := config.grow(cmd)
			sample := inputsample.New(os.Stdin, features, stdoutFeatureValueRequester(config.undefinedValue), config.undefinedValue)
			prediction, err := t.Predict(sample)
			if err != nil {
				config.fail(7, err)
			}
			fmt.Printf("Predicted values along their probabilities are %v\n", prediction)
		},
	}
	config.treeCmdConfig = newTreeCmdConfig(rootConfig, cmd)
	cmd.Flags().StringVarP(&(config.undefinedValue), "undefined-value", "u", "?", "value to input to define a sample's value for a feature as undefined")
	return cmd
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f *feature.DiscreteFeature) error {
	fmt.Printf("Please provide the sample's %s:\n(valid values are %v or %s if undefined)\n", f.Name(), f.AvailableValues(), string(sfvr))
	return nil
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f *feature.DiscreteFeature, value string) error {
	fmt.Printf("%v is not a valid value for the sample's %s. Please provide one of %v or %s if undefined.\n", value, f.Name(), f.AvailableValues(), string(sfvr))
	return nil
}
