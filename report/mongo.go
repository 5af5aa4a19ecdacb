package report

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"internbench/harness"
)

type inserter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoReporter 把结果写入一个集合，每个结果一条文档
type MongoReporter struct {
	coll       inserter
	disconnect func(context.Context) error
}

func NewMongo(ctx context.Context, c MongoConf) (*MongoReporter, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, fmt.Errorf("report: connect mongo: %w", err)
	}
	database, collection := c.target()
	return &MongoReporter{
		coll:       client.Database(database).Collection(collection),
		disconnect: client.Disconnect,
	}, nil
}

func (r *MongoReporter) Report(ctx context.Context, results []harness.Result) error {
	if len(results) == 0 {
		return nil
	}
	docs := make([]interface{}, len(results))
	for i := range results {
		docs[i] = results[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("report: insert mongo documents: %w", err)
	}
	return nil
}

func (r *MongoReporter) Close() error {
	if r.disconnect == nil {
		return nil
	}
	return r.disconnect(context.Background())
}
