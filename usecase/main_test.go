package usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const testDatabase = "placedin_test"

// newTestCollection connects to the test MongoDB instance and hands back a
// dropped-clean collection. Tests are skipped when no server is reachable.
func newTestCollection(t *testing.T, name string) *mongo.Collection {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("skipping: cannot connect to MongoDB at %s: %v", uri, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("skipping: MongoDB not reachable at %s: %v", uri, err)
	}

	coll := client.Database(testDatabase).Collection(name)
	if err := coll.Drop(context.Background()); err != nil {
		t.Fatalf("failed to drop test collection: %v", err)
	}

	t.Cleanup(func() {
		coll.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	return coll
}
