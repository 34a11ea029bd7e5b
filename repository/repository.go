// Package repository holds one typed Mongo repository per entity. Existence
// and ownership checks fetch a bare _id projection so authorization guards
// never pull full documents.
package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultPage  = int64(1)
	defaultLimit = int64(10)
)

func exists(ctx context.Context, collection *mongo.Collection, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})

	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// keywordRegex builds the case-insensitive substring filter every list query
// applies; an empty keyword matches everything.
func keywordRegex(keyword string) bson.D {
	return bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(keyword)},
		{Key: "$options", Value: "i"},
	}
}

// exactRegex matches a whole value case-insensitively, for uniqueness checks
// on names.
func exactRegex(value string) bson.D {
	return bson.D{
		{Key: "$regex", Value: "^" + regexp.QuoteMeta(value) + "$"},
		{Key: "$options", Value: "i"},
	}
}

// paginationStages returns the skip/limit stages applied to the primary
// collection before any join, so page boundaries are computed on primary
// entity count.
func paginationStages(page, limit int64) []bson.D {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return []bson.D{
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
	}
}
