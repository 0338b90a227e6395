package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	usersCollection    = "users"
	artworksCollection = "artworks"
	commentsCollection = "comments"
	ordersCollection   = "orders"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Repositories groups the collection-backed repositories of one database.
type Repositories struct {
	Users    *UserRepository
	Artworks *ArtworkRepository
	Comments *CommentRepository
	Orders   *OrderRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Artworks: NewArtworkRepository(db),
		Comments: NewCommentRepository(db),
		Orders:   NewOrderRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{usersCollection, r.Users.EnsureIndexes},
		{artworksCollection, r.Artworks.EnsureIndexes},
		{commentsCollection, r.Comments.EnsureIndexes},
		{ordersCollection, r.Orders.EnsureIndexes},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", s.name, err)
		}
	}
	return nil
}

// Wipe drops every document of the four collections. Used by the seeder.
func Wipe(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{usersCollection, artworksCollection, commentsCollection, ordersCollection} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("wipe %s: %w", name, err)
		}
	}
	return nil
}

// parseID converts a hex id. Ids that are not ObjectIDs cannot match any
// document, so callers treat ok=false as not found.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// parseIDs converts hex ids, dropping the ones that are not ObjectIDs.
func parseIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, len(oids))
	for i, oid := range oids {
		out[i] = oid.Hex()
	}
	return out
}
