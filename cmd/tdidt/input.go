package main

import (
	"context"
	"strings"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/dataset/csv"
	"github.com/pbanos/tdidt/dataset/mongodataset"
	"github.com/pbanos/tdidt/dataset/sqldataset"
	"github.com/pbanos/tdidt/feature"
)

type inputConfig struct {
	table      string
	collection string
	maxDBConns int
}

type closableDataset interface {
	dataset.Dataset
	Close() error
}

/*
openDataset takes a context, an input, a slice of features and whether
values must be checked against the domain of their features, and returns
the dataset the input refers to and a function to release it:
  * a PostgreSQL database for postgres:// or postgresql:// URLs
  * a MongoDB database for mongodb:// URLs
  * an SQLite3 database for paths ending in .db
  * a CSV file for any other path, or STDIN if the input is empty

Domain checks only apply to CSV input.
*/
func (ic *inputConfig) openDataset(ctx context.Context, rc *rootCmdConfig, input string, features []feature.Feature, check bool) (dataset.Dataset, func(), error) {
	var d closableDataset
	var err error
	switch {
	case isPostgreSQLInput(input):
		rc.Logf("Opening table %s of PostgreSQL database at %s...", ic.table, input)
		d, err = sqldataset.OpenPostgreSQL(ctx, input, ic.table, features, ic.maxDBConns)
	case isMongoDBInput(input):
		rc.Logf("Opening collection %s of MongoDB database at %s...", ic.collection, input)
		d, err = mongodataset.Dial(ctx, input, ic.collection, features)
	case isSQLite3Input(input):
		rc.Logf("Opening table %s of SQLite3 database %s...", ic.table, input)
		d, err = sqldataset.OpenSQLite3(ctx, input, ic.table, features, ic.maxDBConns)
	default:
		if input == "" {
			rc.Logf("Reading CSV from STDIN...")
		} else {
			rc.Logf("Reading CSV from %s...", input)
		}
		var cd dataset.Dataset
		if check {
			cd, err = csv.ReadDatasetFromFilePath(ctx, input, features)
		} else {
			cd, err = csv.ReadUncheckedDatasetFromFilePath(ctx, input, features)
		}
		return cd, func() {}, err
	}
	if err != nil {
		return nil, nil, err
	}
	return d, func() {
		if err := d.Close(); err != nil {
			rc.Logger().Sugar().Warnf("closing dataset %s: %v", input, err)
		}
	}, nil
}

func isPostgreSQLInput(input string) bool {
	return strings.HasPrefix(input, "postgresql://") || strings.HasPrefix(input, "postgres://")
}

func isMongoDBInput(input string) bool {
	return strings.HasPrefix(input, "mongodb://")
}

func isSQLite3Input(input string) bool {
	return strings.HasSuffix(input, ".db")
}

// isCSVInput returns whether the input is read as CSV: any path that is not
// a database, or STDIN for an empty input.
func isCSVInput(input string) bool {
	return !isPostgreSQLInput(input) && !isMongoDBInput(input) && !isSQLite3Input(input)
}
