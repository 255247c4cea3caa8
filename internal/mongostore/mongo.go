// Package mongostore implements the domain repositories on top of MongoDB.
package mongostore

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the storefront.
const (
	productsCollection = "products"
	usersCollection    = "users"
	ordersCollection   = "orders"
)

// Connect creates a MongoDB client and verifies connectivity with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping mongo")
	}
	return client, nil
}

// Reset drops all storefront collections. Used by the seed tool before a
// fresh import.
func Reset(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{productsCollection, usersCollection, ordersCollection} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return errors.Wrapf(err, "drop %s", name)
		}
	}
	return nil
}

// EnsureIndexes creates the indexes the repositories rely on: unique email
// and username for users, and the sort/filter indexes for catalog queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
	})
	if err != nil {
		return errors.Wrap(err, "create user indexes")
	}

	_, err = db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
	})
	if err != nil {
		return errors.Wrap(err, "create product indexes")
	}

	_, err = db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return errors.Wrap(err, "create order indexes")
	}

	return nil
}
