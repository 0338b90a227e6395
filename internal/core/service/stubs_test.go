package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(user)
	if c.ID == "" {
		r.seq++
		c.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[c.ID] = c
	return cloneUser(c), nil
}

// add stores a user directly, bypassing Register.
func (r *stubUserRepo) add(id string, role domain.Role) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.User{ID: id, Username: id, Email: id + "@example.com", Role: role, FirstName: strings.ToUpper(id[:1]) + id[1:]}
	r.users[id] = u
	return cloneUser(u)
}

func (r *stubUserRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, identifier) || u.Username == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubArtworkRepo struct {
	mu       sync.Mutex
	artworks map[string]*domain.Artwork
	seq      int

	attachErr error
	detachErr error
}

func newStubArtworkRepo() *stubArtworkRepo {
	return &stubArtworkRepo{artworks: make(map[string]*domain.Artwork)}
}

func cloneArtwork(a *domain.Artwork) *domain.Artwork {
	clone := *a
	clone.Likes = append([]string{}, a.Likes...)
	clone.Comments = append([]string{}, a.Comments...)
	return &clone
}

func (r *stubArtworkRepo) Create(_ context.Context, a *domain.Artwork) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := cloneArtwork(a)
	if c.ID == "" {
		r.seq++
		c.ID = fmt.Sprintf("artwork-%d", r.seq)
	}
	r.artworks[c.ID] = c
	return cloneArtwork(c), nil
}

func (r *stubArtworkRepo) FindByID(_ context.Context, id string) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artworks[id]
	if !ok {
		return nil, domain.ErrArtworkNotFound
	}
	return cloneArtwork(a), nil
}

func (r *stubArtworkRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Artwork
	for _, id := range ids {
		if a, ok := r.artworks[id]; ok {
			out = append(out, cloneArtwork(a))
		}
	}
	return out, nil
}

func (r *stubArtworkRepo) sorted() []*domain.Artwork {
	out := make([]*domain.Artwork, 0, len(r.artworks))
	for _, a := range r.artworks {
		out = append(out, cloneArtwork(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *stubArtworkRepo) List(_ context.Context, f ports.ArtworkFilter) ([]*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Artwork
	for _, a := range r.sorted() {
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.ArtistID != "" && a.ArtistID != f.ArtistID {
			continue
		}
		if f.LikedBy != "" && !a.LikedBy(f.LikedBy) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *stubArtworkRepo) FindMostLiked(_ context.Context) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *domain.Artwork
	for _, a := range r.artworks {
		if best == nil || rankedAbove(a, best) {
			best = a
		}
	}
	if best == nil {
		return nil, domain.ErrArtworkNotFound
	}
	return cloneArtwork(best), nil
}

// rankedAbove orders by likes, then newest, then highest id.
func rankedAbove(a, b *domain.Artwork) bool {
	if len(a.Likes) != len(b.Likes) {
		return len(a.Likes) > len(b.Likes)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (r *stubArtworkRepo) Update(_ context.Context, id string, f domain.ArtworkFields) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artworks[id]
	if !ok {
		return nil, domain.ErrArtworkNotFound
	}
	a.Title, a.Description, a.Image, a.Price, a.Category = f.Title, f.Description, f.Image, f.Price, f.Category
	return cloneArtwork(a), nil
}

func (r *stubArtworkRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.artworks[id]; !ok {
		return domain.ErrArtworkNotFound
	}
	delete(r.artworks, id)
	return nil
}

func (r *stubArtworkRepo) AddLike(_ context.Context, id, userID string) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artworks[id]
	if !ok {
		return nil, domain.ErrArtworkNotFound
	}
	if a.LikedBy(userID) {
		return nil, domain.ErrAlreadyLiked
	}
	a.Likes = append(a.Likes, userID)
	return cloneArtwork(a), nil
}

func (r *stubArtworkRepo) RemoveLike(_ context.Context, id, userID string) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artworks[id]
	if !ok {
		return nil, domain.ErrArtworkNotFound
	}
	if !a.LikedBy(userID) {
		return nil, domain.ErrNotLiked
	}
	a.Likes = removeID(a.Likes, userID)
	return cloneArtwork(a), nil
}

func (r *stubArtworkRepo) AttachComment(_ context.Context, id, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attachErr != nil {
		return r.attachErr
	}
	a, ok := r.artworks[id]
	if !ok {
		return domain.ErrArtworkNotFound
	}
	a.Comments = append(a.Comments, commentID)
	return nil
}

func (r *stubArtworkRepo) DetachComment(_ context.Context, id, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detachErr != nil {
		return r.detachErr
	}
	a, ok := r.artworks[id]
	if !ok {
		return domain.ErrArtworkNotFound
	}
	a.Comments = removeID(a.Comments, commentID)
	return nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type stubCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*domain.Comment
	seq      int

	cascadeErr error
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("comment-%d", r.seq)
	}
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) DeleteByArtwork(_ context.Context, artworkID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cascadeErr != nil {
		return 0, r.cascadeErr
	}
	var n int64
	for id, c := range r.comments {
		if c.ArtworkID == artworkID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *o
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("order-%d", r.seq)
	}
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) sorted(keep func(*domain.Order) bool) []*domain.Order {
	var out []*domain.Order
	for _, o := range r.orders {
		if keep(o) {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubOrderRepo) ListByBuyer(_ context.Context, buyerID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(o *domain.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r *stubOrderRepo) ListByArtworks(_ context.Context, ids []string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return r.sorted(func(o *domain.Order) bool { return set[o.ArtworkID] }), nil
}

func (r *stubOrderRepo) ExistsForArtwork(_ context.Context, artworkID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ArtworkID == artworkID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	o.Status = to
	clone := *o
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type stubImageStore struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
	saveErr error
}

func (s *stubImageStore) Save(_ context.Context, upload *ports.ImageUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if upload == nil {
		return "", domain.Validation("image", "image is required")
	}
	ref := "uploads/" + upload.Filename
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *stubImageStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, ref)
	return nil
}

type stubIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]string // key -> order id, "" while pending

	released []string
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]string)}
}

func (s *stubIdempotencyStore) Claim(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[key]
	if !ok {
		s.keys[key] = ""
		return "", true, nil
	}
	if id == "" {
		return "", false, domain.ErrRequestInFlight
	}
	return id, false, nil
}

func (s *stubIdempotencyStore) Complete(_ context.Context, key, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = orderID
	return nil
}

func (s *stubIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	s.released = append(s.released, key)
	return nil
}

type stubDetachQueue struct {
	mu   sync.Mutex
	jobs []ports.DetachJob
}

func (q *stubDetachQueue) Enqueue(job ports.DetachJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

var errStorage = errors.New("storage unavailable")

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	users    *stubUserRepo
	artworks *stubArtworkRepo
	comments *stubCommentRepo
	orders   *stubOrderRepo
	images   *stubImageStore
	idem     *stubIdempotencyStore
	detach   *stubDetachQueue
	authz    *OwnershipAuthorizer
}

func newFixture() *fixture {
	users := newStubUserRepo()
	auth := NewAuthService(users, "secret", 0, discardLogger)
	return &fixture{
		users:    users,
		artworks: newStubArtworkRepo(),
		comments: newStubCommentRepo(),
		orders:   newStubOrderRepo(),
		images:   &stubImageStore{},
		idem:     newStubIdempotencyStore(),
		detach:   &stubDetachQueue{},
		authz:    NewOwnershipAuthorizer(auth, discardLogger),
	}
}

func (f *fixture) artworkService() *ArtworkService {
	return NewArtworkService(f.artworks, f.comments, f.orders, f.images, f.authz, discardLogger)
}

func (f *fixture) commentService() *CommentService {
	return NewCommentService(f.comments, f.artworks, f.authz, f.detach, discardLogger)
}

func (f *fixture) queryService() *QueryService {
	return NewQueryService(f.artworks, f.comments, f.users, discardLogger)
}

func (f *fixture) orderService() *OrderService {
	return NewOrderService(f.orders, f.artworks, f.users, f.queryService(), f.idem, f.authz, discardLogger)
}

func (f *fixture) seedArtwork(id, artistID string, price float64) *domain.Artwork {
	a, err := f.artworks.Create(context.Background(), &domain.Artwork{
		ID:          id,
		ArtistID:    artistID,
		Title:       "Title " + id,
		Description: "Description " + id,
		Image:       "uploads/" + id + ".png",
		Price:       price,
		Category:    domain.CategoryAbstract,
		Likes:       []string{},
		Comments:    []string{},
	})
	if err != nil {
		panic(err)
	}
	return a
}
