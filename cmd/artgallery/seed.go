package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	mongostore "github.com/Deepender31/artwork-backend/internal/infrastructure/db/mongo"
	"github.com/Deepender31/artwork-backend/pkg/logger"
)

const seedPassword = "password123"

type seedOptions struct {
	Artists            int
	Users              int
	Artworks           int
	MaxCommentsPerWork int
	OrderRatio         float64
	Seed               uint64
}

type priceRange struct{ min, max float64 }

var priceTiers = []priceRange{
	{50, 200},      // budget
	{201, 500},     // mid-range
	{501, 2000},    // premium
	{2001, 10000},  // luxury
	{10001, 50000}, // collector
}

var (
	firstNames = []string{
		"Emma", "Liam", "Olivia", "Noah", "Ava", "Oliver", "Isabella", "William",
		"Sophia", "James", "Charlotte", "Benjamin", "Mia", "Lucas", "Amelia",
		"Mason", "Harper", "Ethan", "Evelyn", "Alexander",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
	artStyles = []string{
		"Oil painting", "Watercolor", "Digital art", "Photography",
		"Acrylic", "Mixed media", "Charcoal", "Pencil drawing",
	}
	subjects = []string{
		"Harbour at dusk", "Quiet geometry", "Portrait in blue", "Northern lights",
		"City of glass", "Still life with lemons", "Fragments", "The long road",
	}
	commentTexts = []string{
		"Absolutely stunning work!", "The colours are incredible.",
		"I love the composition.", "This would look great in my living room.",
		"Beautiful technique.", "Such a unique perspective.",
	}
	orderStatuses = []domain.OrderStatus{domain.OrderPending, domain.OrderCompleted, domain.OrderCancelled}
)

func newSeedCmd() *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Wipe the database and fill it with generated sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			if err := mongostore.Wipe(ctx, db); err != nil {
				return err
			}
			repos := mongostore.NewRepositories(db)
			if err := repos.EnsureIndexes(ctx); err != nil {
				return err
			}
			return newSeeder(repos, opts).run(ctx)
		},
	}
	cmd.Flags().IntVar(&opts.Artists, "artists", 10, "Number of artist accounts")
	cmd.Flags().IntVar(&opts.Users, "users", 10, "Number of buyer accounts")
	cmd.Flags().IntVar(&opts.Artworks, "artworks", 100, "Number of artworks")
	cmd.Flags().IntVar(&opts.MaxCommentsPerWork, "comments", 2, "Maximum comments per artwork")
	cmd.Flags().Float64Var(&opts.OrderRatio, "order-ratio", 0.3, "Share of artworks that receive an order")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Random seed (0 picks one from the clock)")
	return cmd
}

type seeder struct {
	repos *mongostore.Repositories
	opts  seedOptions
	rnd   *rand.Rand
	used  map[string]bool
}

func newSeeder(repos *mongostore.Repositories, opts seedOptions) *seeder {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &seeder{
		repos: repos,
		opts:  opts,
		rnd:   rand.New(rand.NewPCG(seed, seed>>1)),
		used:  map[string]bool{},
	}
}

func (s *seeder) run(ctx context.Context) error {
	log := logger.Component("seeder")

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	artists, err := s.createUsers(ctx, domain.RoleArtist, s.opts.Artists, string(hash))
	if err != nil {
		return err
	}
	buyers, err := s.createUsers(ctx, domain.RoleUser, s.opts.Users, string(hash))
	if err != nil {
		return err
	}
	if len(artists) == 0 {
		return fmt.Errorf("seed: at least one artist is required")
	}
	everyone := append(append([]*domain.User{}, artists...), buyers...)

	var comments, orders int
	for i := 0; i < s.opts.Artworks; i++ {
		artwork, err := s.repos.Artworks.Create(ctx, s.artwork(pick(s.rnd, artists).ID))
		if err != nil {
			return fmt.Errorf("seed artwork: %w", err)
		}

		n := 0
		if s.opts.MaxCommentsPerWork > 0 {
			n = 1 + s.rnd.IntN(s.opts.MaxCommentsPerWork)
		}
		for j := 0; j < n; j++ {
			c, err := s.repos.Comments.Create(ctx, &domain.Comment{
				ArtworkID: artwork.ID,
				UserID:    pick(s.rnd, everyone).ID,
				Text:      pick(s.rnd, commentTexts),
				Timestamp: time.Now().UTC(),
			})
			if err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			if err := s.repos.Artworks.AttachComment(ctx, artwork.ID, c.ID); err != nil {
				return fmt.Errorf("seed comment reference: %w", err)
			}
			comments++
		}

		if len(buyers) > 0 && s.rnd.Float64() < s.opts.OrderRatio {
			now := time.Now().UTC()
			if _, err := s.repos.Orders.Create(ctx, &domain.Order{
				ArtworkID: artwork.ID,
				BuyerID:   pick(s.rnd, buyers).ID,
				Price:     artwork.Price,
				Status:    pick(s.rnd, orderStatuses),
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return fmt.Errorf("seed order: %w", err)
			}
			orders++
		}
	}

	log.Info().
		Int("artists", len(artists)).
		Int("users", len(buyers)).
		Int("artworks", s.opts.Artworks).
		Int("comments", comments).
		Int("orders", orders).
		Str("password", seedPassword).
		Msg("database seeded")
	return nil
}

func (s *seeder) createUsers(ctx context.Context, role domain.Role, count int, hash string) ([]*domain.User, error) {
	users := make([]*domain.User, 0, count)
	for i := 0; i < count; i++ {
		u := s.user(role, hash)
		created, err := s.repos.Users.Create(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", role, err)
		}
		users = append(users, created)
	}
	return users, nil
}

func (s *seeder) user(role domain.Role, hash string) *domain.User {
	first, last, username := s.uniqueName(role)
	bio := fmt.Sprintf("Art enthusiast and collector with a passion for %s art.",
		pick(s.rnd, []string{"modern", "classical", "abstract", "contemporary"}))
	if role == domain.RoleArtist {
		bio = fmt.Sprintf("%s %s is a professional %s artist with %d years of experience.",
			first, last, pick(s.rnd, []string{"digital", "traditional", "contemporary", "modern", "abstract"}), 5+s.rnd.IntN(16))
	}

	now := time.Now().UTC()
	return &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		FirstName:    first,
		LastName:     last,
		DisplayName:  first + " " + last,
		Bio:          bio,
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/300?u=%s", username),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// uniqueName draws names until the username is unused, falling back to a
// numeric suffix once the name space runs thin.
func (s *seeder) uniqueName(role domain.Role) (first, last, username string) {
	for attempt := 0; ; attempt++ {
		first, last = pick(s.rnd, firstNames), pick(s.rnd, lastNames)
		base := strings.ToLower(first + "." + last)
		if role == domain.RoleArtist {
			username = base + ".art"
		} else {
			username = fmt.Sprintf("%s%d", base, 1+s.rnd.IntN(99))
		}
		if attempt > 50 {
			username = fmt.Sprintf("%s.%d", username, len(s.used))
		}
		if !s.used[username] {
			s.used[username] = true
			return first, last, username
		}
	}
}

func (s *seeder) artwork(artistID string) *domain.Artwork {
	category := pick(s.rnd, domain.Categories)
	style := pick(s.rnd, artStyles)
	now := time.Now().UTC()
	return &domain.Artwork{
		ArtistID:    artistID,
		Title:       pick(s.rnd, subjects),
		Description: fmt.Sprintf("%s exploring %s themes.", style, strings.ToLower(string(category))),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%d/1024/1024", s.rnd.Uint32()),
		Price:       s.price(),
		Category:    category,
		Likes:       []string{},
		Comments:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// price draws a tier and then a value within it, rounded to cents.
func (s *seeder) price() float64 {
	tier := pick(s.rnd, priceTiers)
	v := tier.min + s.rnd.Float64()*(tier.max-tier.min)
	return math.Round(v*100) / 100
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}
