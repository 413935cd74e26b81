package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

/*
Dataset is a dataset.Dataset whose samples are read from a table of
an SQL database each time they are requested.
*/
type Dataset struct {
	db       *sql.DB
	table    string
	columns  []string
	features []feature.Feature
}

/*
Open takes a context, an *sql.DB, a table name and a slice of features and
returns a Dataset on the given table, or an error if any feature name cannot
be used as column name or the table cannot be queried.
*/
func Open(ctx context.Context, db *sql.DB, table string, features []feature.Feature) (*Dataset, error) {
	if err := validIdentifier(table); err != nil {
		return nil, errors.Wrap(err, "invalid table name")
	}
	columns := make([]string, 0, len(features))
	for _, f := range features {
		c, err := columnName(f.Name())
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	ds := &Dataset{db, table, columns, features}
	if _, err := ds.Count(ctx); err != nil {
		return nil, err
	}
	return ds, nil
}

// Features returns the features of the dataset.
func (ds *Dataset) Features() []feature.Feature {
	return ds.features
}

// Count returns the number of rows in the dataset's table.
func (ds *Dataset) Count(ctx context.Context) (int, error) {
	var count int
	row := ds.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, ds.table))
	if err := row.Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "counting samples on table %s", ds.table)
	}
	return count, nil
}

// Samples queries the table and returns a sample for each of its rows.
func (ds *Dataset) Samples(ctx context.Context) ([]dataset.Sample, error) {
	rows, err := ds.db.QueryContext(ctx, ds.selectStmt())
	if err != nil {
		return nil, errors.Wrapf(err, "querying samples on table %s", ds.table)
	}
	defer rows.Close()
	var samples []dataset.Sample
	for rows.Next() {
		dest := make([]interface{}, len(ds.features))
		for i, f := range ds.features {
			if _, ok := f.(*feature.ContinuousFeature); ok {
				dest[i] = &sql.NullFloat64{}
			} else {
				dest[i] = &sql.NullString{}
			}
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scanning sample %d", len(samples))
		}
		values := make(map[string]interface{}, len(ds.features))
		for i, f := range ds.features {
			switch v := dest[i].(type) {
			case *sql.NullFloat64:
				if v.Valid {
					values[f.Name()] = v.Float64
				}
			case *sql.NullString:
				if v.Valid {
					values[f.Name()] = v.String
				}
			}
		}
		samples = append(samples, dataset.NewSample(values))
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterating samples on table %s", ds.table)
	}
	return samples, nil
}

// Close closes the underlying database.
func (ds *Dataset) Close() error {
	return ds.db.Close()
}

func (ds *Dataset) selectStmt() string {
	var stmt bytes.Buffer
	stmt.WriteString("SELECT ")
	for i, c := range ds.columns {
		if i > 0 {
			stmt.WriteString(", ")
		}
		stmt.WriteString(fmt.Sprintf(`"%s"`, c))
	}
	stmt.WriteString(fmt.Sprintf(` FROM "%s"`, ds.table))
	return stmt.String()
}

func columnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", errors.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if err := validIdentifier(featureName); err != nil {
		return "", errors.Wrapf(err, "feature name '%s'", featureName)
	}
	return featureName, nil
}

func validIdentifier(name string) error {
	if name == "" {
		return errors.New("empty identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return errors.Errorf(`'%s' contains invalid character '"'`, name)
	}
	return nil
}
