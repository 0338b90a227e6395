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
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

type ArtworkRepository struct {
	coll *mongo.Collection
}

func NewArtworkRepository(db *mongo.Database) *ArtworkRepository {
	return &ArtworkRepository{coll: db.Collection(artworksCollection)}
}

type mongoArtwork struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	ArtistID    primitive.ObjectID   `bson:"artist_id"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Image       string               `bson:"image"`
	Price       float64              `bson:"price"`
	Category    string               `bson:"category"`
	Likes       []primitive.ObjectID `bson:"likes"`
	Comments    []primitive.ObjectID `bson:"comments"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (ma *mongoArtwork) toDomain() *domain.Artwork {
	return &domain.Artwork{
		ID:          ma.ID.Hex(),
		ArtistID:    ma.ArtistID.Hex(),
		Title:       ma.Title,
		Description: ma.Description,
		Image:       ma.Image,
		Price:       ma.Price,
		Category:    domain.Category(ma.Category),
		Likes:       hexIDs(ma.Likes),
		Comments:    hexIDs(ma.Comments),
		CreatedAt:   ma.CreatedAt,
		UpdatedAt:   ma.UpdatedAt,
	}
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

func (r *ArtworkRepository) Create(ctx context.Context, a *domain.Artwork) (*domain.Artwork, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	artistID, ok := parseID(a.ArtistID)
	if !ok {
		return nil, domain.Validation("artistId", "artistId is not a valid id")
	}

	doc := mongoArtwork{
		ID:          primitive.NewObjectID(),
		ArtistID:    artistID,
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
		Price:       a.Price,
		Category:    string(a.Category),
		Likes:       parseIDs(a.Likes),
		Comments:    parseIDs(a.Comments),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert artwork: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArtworkRepository) FindByID(ctx context.Context, id string) (*domain.Artwork, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrArtworkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoArtwork
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArtworkNotFound
		}
		return nil, fmt.Errorf("find artwork: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArtworkRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Artwork, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return []*domain.Artwork{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *ArtworkRepository) List(ctx context.Context, f ports.ArtworkFilter) ([]*domain.Artwork, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	if f.ArtistID != "" {
		oid, ok := parseID(f.ArtistID)
		if !ok {
			return []*domain.Artwork{}, nil
		}
		filter["artist_id"] = oid
	}
	if f.LikedBy != "" {
		oid, ok := parseID(f.LikedBy)
		if !ok {
			return []*domain.Artwork{}, nil
		}
		filter["likes"] = oid
	}
	return r.find(ctx, filter)
}

// FindMostLiked ranks by likes set size, then newest, then highest id.
func (r *ArtworkRepository) FindMostLiked(ctx context.Context) (*domain.Artwork, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"like_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "like_count", Value: -1},
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("most liked artwork: %w", err)
	}
	var docs []mongoArtwork
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode most liked artwork: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrArtworkNotFound
	}
	return docs[0].toDomain(), nil
}

// Update sets the writable fields only; artist_id, likes and comments are
// never part of the update document.
func (r *ArtworkRepository) Update(ctx context.Context, id string, f domain.ArtworkFields) (*domain.Artwork, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrArtworkNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       f.Title,
		"description": f.Description,
		"image":       f.Image,
		"price":       f.Price,
		"category":    string(f.Category),
		"updated_at":  time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

func (r *ArtworkRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.ErrArtworkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArtworkNotFound
	}
	return nil
}

// AddLike adds userID to the likes set. The filter only matches while the
// user is absent, so two concurrent likes by the same user cannot both win.
func (r *ArtworkRepository) AddLike(ctx context.Context, id, userID string) (*domain.Artwork, error) {
	oid, uid, err := likeIDs(id, userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "likes": bson.M{"$ne": uid}}
	update := bson.M{
		"$addToSet": bson.M{"likes": uid},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	a, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, domain.ErrArtworkNotFound) {
		return nil, r.classifyMiss(ctx, oid, domain.ErrAlreadyLiked)
	}
	return a, err
}

func (r *ArtworkRepository) RemoveLike(ctx context.Context, id, userID string) (*domain.Artwork, error) {
	oid, uid, err := likeIDs(id, userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "likes": uid}
	update := bson.M{
		"$pull": bson.M{"likes": uid},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	a, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, domain.ErrArtworkNotFound) {
		return nil, r.classifyMiss(ctx, oid, domain.ErrNotLiked)
	}
	return a, err
}

func (r *ArtworkRepository) AttachComment(ctx context.Context, id, commentID string) error {
	return r.updateComments(ctx, id, commentID, "$push")
}

func (r *ArtworkRepository) DetachComment(ctx context.Context, id, commentID string) error {
	return r.updateComments(ctx, id, commentID, "$pull")
}

func (r *ArtworkRepository) updateComments(ctx context.Context, id, commentID, op string) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.ErrArtworkNotFound
	}
	cid, ok := parseID(commentID)
	if !ok {
		return domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{op: bson.M{"comments": cid}})
	if err != nil {
		return fmt.Errorf("%s comment reference: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArtworkNotFound
	}
	return nil
}

// classifyMiss tells a missing artwork apart from a failed membership
// precondition after a conditional update matched nothing.
func (r *ArtworkRepository) classifyMiss(ctx context.Context, oid primitive.ObjectID, conflict error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check artwork: %w", err)
	}
	if n == 0 {
		return domain.ErrArtworkNotFound
	}
	return conflict
}

func (r *ArtworkRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Artwork, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoArtwork
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArtworkNotFound
		}
		return nil, fmt.Errorf("update artwork: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArtworkRepository) find(ctx context.Context, filter bson.M) ([]*domain.Artwork, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find artworks: %w", err)
	}
	var docs []mongoArtwork
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode artworks: %w", err)
	}

	out := make([]*domain.Artwork, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func likeIDs(id, userID string) (primitive.ObjectID, primitive.ObjectID, error) {
	oid, ok := parseID(id)
	if !ok {
		return oid, oid, domain.ErrArtworkNotFound
	}
	uid, ok := parseID(userID)
	if !ok {
		return oid, uid, domain.ErrUnknownIdentity
	}
	return oid, uid, nil
}

// EnsureIndexes creates the lookup indexes on the artworks collection.
func (r *ArtworkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "artist_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "likes", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
