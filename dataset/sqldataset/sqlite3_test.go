package sqldataset

import (
	"context"
	"database/sql"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/tdidt/feature"
)

func TestOpenSQLite3(t *testing.T) {
	dir, err := ioutil.TempDir("", "sqldataset")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "samples.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	stmts := []string{
		`CREATE TABLE "fruits" ("id" INTEGER PRIMARY KEY, "color" TEXT, "ripe" TEXT)`,
		`INSERT INTO "fruits" ("color", "ripe") VALUES ('red', 'yes'), ('green', 'no'), ('red', NULL)`,
	}
	for _, stmt := range stmts {
		if _, err = db.Exec(stmt); err != nil {
			t.Fatalf("preparing database: %v", err)
		}
	}
	db.Close()

	color := feature.NewDiscreteFeature("color", []string{"red", "green"})
	ripe := feature.NewDiscreteFeature("ripe", []string{"no", "yes"})
	ctx := context.Background()
	ds, err := OpenSQLite3(ctx, path, "fruits", []feature.Feature{color, ripe}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ds.Close()
	count, err := ds.Count(ctx)
	if err != nil || count != 3 {
		t.Fatalf("expected 3 samples, got %d (%v)", count, err)
	}
	samples, err := ds.Samples(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := [][]interface{}{{"red", "yes"}, {"green", "no"}, {"red", nil}}
	for i, s := range samples {
		for j, f := range []feature.Feature{color, ripe} {
			v, err := s.ValueFor(f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != expected[i][j] {
				t.Errorf("expected sample %d to have %v for %s, got %v", i, expected[i][j], f.Name(), v)
			}
		}
	}
}

func TestOpenInvalidIdentifiers(t *testing.T) {
	ctx := context.Background()
	features := []feature.Feature{feature.NewDiscreteFeature("id", []string{"a"})}
	if _, err := Open(ctx, nil, "samples", features); err == nil {
		t.Errorf("expected error for reserved feature name")
	}
	features = []feature.Feature{feature.NewDiscreteFeature("color", []string{"a"})}
	if _, err := Open(ctx, nil, `bad"table`, features); err == nil {
		t.Errorf("expected error for invalid table name")
	}
}
