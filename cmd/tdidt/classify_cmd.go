package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/dataset/csv"
	"github.com/pbanos/tdidt/feature"
	"github.com/pbanos/tdidt/tree"
	"github.com/spf13/cobra"
)

type classifyCmdConfig struct {
	*treeCmdConfig
	classifyInput string
}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify samples with a tree",
		Long:  `Grow a tree and print the class it predicts for each sample of a data set, along the probability of every class`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.exit()
			if config.classifyInput == "" {
				config.fail(1, fmt.Errorf("required classify-input flag was not set"))
			}
			t, features := config.grow(cmd)
			var total, failed int
			err := config.eachSample(features, func(i int, s dataset.Sample) (bool, error) {
				total++
				p, err := t.Predict(s)
				if err != nil {
					failed++
					fmt.Printf("%d: ERROR %v\n", i, err)
					return true, nil
				}
				fmt.Printf("%d: %s\n", i, predictionString(p))
				return true, nil
			})
			if err != nil {
				config.fail(8, fmt.Errorf("reading samples to classify: %v", err))
			}
			if failed > 0 {
				config.Logger().Sugar().Warnf("Could not classify %d of %d samples", failed, total)
			}
		},
	}
	config.treeCmdConfig = newTreeCmdConfig(rootConfig, cmd)
	cmd.Flags().StringVarP(&(config.classifyInput), "classify-input", "s", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the samples to classify (required)")
	return cmd
}

/*
eachSample calls f with every sample to classify and its index, stopping
when f returns false. CSV input is streamed, other inputs are read at once.
*/
func (ccc *classifyCmdConfig) eachSample(features []feature.Feature, f func(int, dataset.Sample) (bool, error)) error {
	ctx := ccc.Context()
	if isCSVInput(ccc.classifyInput) {
		ccc.Logf("Streaming CSV samples from %s...", ccc.classifyInput)
		return csv.ReadDatasetBySampleFromFilePath(ctx, ccc.classifyInput, features, f)
	}
	samplesSet, closeSamplesSet, err := ccc.openDataset(ctx, ccc.rootCmdConfig, ccc.classifyInput, features, false)
	if err != nil {
		return err
	}
	ccc.atExit(closeSamplesSet)
	samples, err := samplesSet.Samples(ctx)
	if err != nil {
		return err
	}
	for i, s := range samples {
		ok, err := f(i, s)
		if err != nil || !ok {
			return err
		}
	}
	return nil
}

// predictionString returns a line with the predicted value followed by the
// probability of each value, sorted by value.
func predictionString(p *tree.Prediction) string {
	predicted, _ := p.PredictedValue()
	if p.Degenerate() {
		predicted = csv.UndefinedValue
	}
	probs := p.Probabilities()
	values := make([]string, 0, len(probs))
	for v := range probs {
		values = append(values, v)
	}
	sort.Strings(values)
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s=%.4f", v, probs[v]))
	}
	return fmt.Sprintf("%s [%s]", predicted, strings.Join(parts, " "))
}
