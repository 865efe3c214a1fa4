package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB bundles the client with the collections the service uses.
type DB struct {
	Client                *mongo.Client
	EventsCollection      *mongo.Collection
	AttractionsCollection *mongo.Collection
	RidesCollection       *mongo.Collection
	JoinsCollection       *mongo.Collection
	RoutesCollection      *mongo.Collection
}

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	// free-form documents (saved route stops) decode as maps, not bson.D
	clientOptions := options.Client().ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	d := client.Database(database)
	db := &DB{
		Client:                client,
		EventsCollection:      d.Collection("events"),
		AttractionsCollection: d.Collection("attractions"),
		RidesCollection:       d.Collection("rides"),
		JoinsCollection:       d.Collection("joins"),
		RoutesCollection:      d.Collection("routes"),
	}
	if err := db.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo index creation failed")
	}
	log.Info().Str("database", database).Msg("connected to mongo")
	return db, nil
}

func (db *DB) createIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	idx := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{db.EventsCollection, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{db.AttractionsCollection, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{db.RidesCollection, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{db.JoinsCollection, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}}},
		{db.RoutesCollection, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "id", Value: 1}}}},
	}
	for _, i := range idx {
		if _, err := i.coll.Indexes().CreateOne(ctx, i.model); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}
