package sqldataset

import (
	"context"
	"database/sql"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

/*
OpenSQLite3 takes a context, a path to an SQLite3 database file, a table name,
a slice of features and a limit to the number of open connections (0 for no
limit) and returns a Dataset on the table or an error if it fails to open as an
sqlite3 database.
*/
func OpenSQLite3(ctx context.Context, path, table string, features []feature.Feature, maxConns int) (*Dataset, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite3 database %s", path)
	}
	db.SetMaxOpenConns(maxConns)
	ds, err := Open(ctx, db, table, features)
	if err != nil {
		db.Close()
		return nil, err
	}
	return ds, nil
}
