package tdidt

import (
	"context"
	"testing"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
)

var playTennisFeatures = []feature.Feature{
	feature.NewDiscreteFeature("outlook", []string{"sunny", "overcast", "rain"}),
	feature.NewDiscreteFeature("temperature", []string{"hot", "mild", "cool"}),
	feature.NewDiscreteFeature("humidity", []string{"high", "normal"}),
	feature.NewDiscreteFeature("windy", []string{"false", "true"}),
	feature.NewDiscreteFeature("play", []string{"no", "yes"}),
}

var playTennisRows = [][]string{
	{"sunny", "hot", "high", "false", "no"},
	{"sunny", "hot", "high", "true", "no"},
	{"overcast", "hot", "high", "false", "yes"},
	{"rain", "mild", "high", "false", "yes"},
	{"rain", "cool", "normal", "false", "yes"},
	{"rain", "cool", "normal", "true", "no"},
	{"overcast", "cool", "normal", "true", "yes"},
	{"sunny", "mild", "high", "false", "no"},
	{"sunny", "cool", "normal", "false", "yes"},
	{"rain", "mild", "normal", "false", "yes"},
	{"sunny", "mild", "normal", "true", "yes"},
	{"overcast", "mild", "high", "true", "yes"},
	{"overcast", "hot", "normal", "false", "yes"},
	{"rain", "mild", "high", "true", "no"},
}

const playTennisTree = `outlook = sunny
|  humidity = high: no (3)
|  humidity = normal: yes (2)
outlook = overcast: yes (4)
outlook = rain
|  windy = false: yes (3)
|  windy = true: no (2)
`

func newTable(t *testing.T, features []feature.Feature, rows [][]string, label string) *dataset.Table {
	samples := make([]dataset.Sample, 0, len(rows))
	for _, row := range rows {
		values := make(map[string]interface{}, len(features))
		for i, f := range features {
			if row[i] != "?" {
				values[f.Name()] = row[i]
			}
		}
		samples = append(samples, dataset.NewSample(values))
	}
	table, err := dataset.Encode(context.Background(), dataset.New(features, samples), label)
	if err != nil {
		t.Fatalf("encoding table: %v", err)
	}
	return table
}

func playTennisTable(t *testing.T) *dataset.Table {
	return newTable(t, playTennisFeatures, playTennisRows, "play")
}
