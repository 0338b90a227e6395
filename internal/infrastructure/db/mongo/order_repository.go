package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoOrder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ArtworkID primitive.ObjectID `bson:"artwork_id"`
	BuyerID   primitive.ObjectID `bson:"buyer_id"`
	Price     float64            `bson:"price"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mo *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:        mo.ID.Hex(),
		ArtworkID: mo.ArtworkID.Hex(),
		BuyerID:   mo.BuyerID.Hex(),
		Price:     mo.Price,
		Status:    domain.OrderStatus(mo.Status),
		CreatedAt: mo.CreatedAt,
		UpdatedAt: mo.UpdatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	artworkID, ok := parseID(o.ArtworkID)
	if !ok {
		return nil, domain.ErrArtworkNotFound
	}
	buyerID, ok := parseID(o.BuyerID)
	if !ok {
		return nil, domain.ErrUnknownIdentity
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		ID:        primitive.NewObjectID(),
		ArtworkID: artworkID,
		BuyerID:   buyerID,
		Price:     o.Price,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	oid, ok := parseID(buyerID)
	if !ok {
		return []*domain.Order{}, nil
	}
	return r.find(ctx, bson.M{"buyer_id": oid})
}

func (r *OrderRepository) ListByArtworks(ctx context.Context, artworkIDs []string) ([]*domain.Order, error) {
	oids := parseIDs(artworkIDs)
	if len(oids) == 0 {
		return []*domain.Order{}, nil
	}
	return r.find(ctx, bson.M{"artwork_id": bson.M{"$in": oids}})
}

func (r *OrderRepository) ExistsForArtwork(ctx context.Context, artworkID string) (bool, error) {
	oid, ok := parseID(artworkID)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"artwork_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count orders: %w", err)
	}
	return n > 0, nil
}

// UpdateStatus is a compare-and-set on the status field; a concurrent
// transition that got there first turns this one into ErrInvalidTransition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC()}}

	var doc mongoOrder
	err := r.coll.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return nil, domain.ErrInvalidTransition
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	var docs []mongoOrder
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]*domain.Order, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "artwork_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
