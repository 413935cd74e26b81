/*
Package mongodataset provides a implementation of dataset.Dataset
that uses a MongoDB database as backend.
*/
package mongodataset

import (
	"context"
	"strings"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	// DefaultCollection is the name of the collection samples are read from
	// when none is given.
	DefaultCollection = "samples"
)

/*
Dataset is a dataset.Dataset whose samples are the documents of a MongoDB
collection, with a field per feature.
*/
type Dataset struct {
	session    *mgo.Session
	collection string
	features   []feature.Feature
}

/*
Dial takes a context, a MongoDB connection URL, a collection name and a slice
of features and returns a Dataset on the collection of the URL's database.
*/
func Dial(ctx context.Context, url, collection string, features []feature.Feature) (*Dataset, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	ds, err := Open(ctx, session, collection, features)
	if err != nil {
		session.Close()
		return nil, err
	}
	return ds, nil
}

/*
Open takes a context, a MongoDB database session, a collection name and a
slice of features and returns a Dataset that works on the collection of the
default database for that session, or an error if a feature name cannot be
used as field name.
*/
func Open(ctx context.Context, session *mgo.Session, collection string, features []feature.Feature) (*Dataset, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	for _, f := range features {
		fName := f.Name()
		if fName == "_id" {
			return nil, errors.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return nil, errors.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
	}
	return &Dataset{session, collection, features}, nil
}

// Features returns the features of the dataset.
func (mds *Dataset) Features() []feature.Feature {
	return mds.features
}

// Count returns the number of documents in the collection.
func (mds *Dataset) Count(context.Context) (int, error) {
	count, err := mds.samplesCollection().Count()
	if err != nil {
		return 0, errors.Wrap(err, "counting samples")
	}
	return count, nil
}

// Samples reads every document in the collection as a sample.
func (mds *Dataset) Samples(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	count, err := mds.Count(ctx)
	if err == nil {
		samples = make([]dataset.Sample, 0, count)
	}
	iter := mds.samplesCollection().Find(nil).Iter()
	defer iter.Close()
	var doc bson.M
	for iter.Next(&doc) {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		values := make(map[string]interface{}, len(mds.features))
		for _, f := range mds.features {
			if v, ok := doc[f.Name()]; ok && v != nil {
				values[f.Name()] = v
			}
		}
		samples = append(samples, dataset.NewSample(values))
		doc = nil
	}
	if err = iter.Err(); err != nil {
		return nil, errors.Wrap(err, "reading samples")
	}
	return samples, nil
}

// Close closes the dataset's session.
func (mds *Dataset) Close() error {
	mds.session.Close()
	return nil
}

func (mds *Dataset) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(mds.collection)
}
