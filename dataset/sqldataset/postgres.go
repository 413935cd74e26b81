package sqldataset

import (
	"context"
	"database/sql"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

/*
OpenPostgreSQL takes a context, a PostgreSQL connection URL, a table name, a
slice of features and a limit to the number of open connections (0 for no
limit) and returns a Dataset on the table or an error if the database cannot
be reached.
*/
func OpenPostgreSQL(ctx context.Context, url, table string, features []feature.Feature, maxConns int) (*Dataset, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgresql database")
	}
	db.SetMaxOpenConns(maxConns)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connecting to postgresql database")
	}
	ds, err := Open(ctx, db, table, features)
	if err != nil {
		db.Close()
		return nil, err
	}
	return ds, nil
}
