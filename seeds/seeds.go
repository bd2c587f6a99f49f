package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lodgewise/homestay-backend/internal/auth"
)

const (
	userCount        = 20
	landlordCount    = 4
	propertyCount    = 40
	interactionCount = 300
	orderCount       = 60
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE orders, user_property_interactions, properties, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting users")
	if err := seedUsers(ctx, pool); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Println("[seed] inserting properties")
	if err := seedProperties(ctx, pool, rng, propertyCount); err != nil {
		return fmt.Errorf("seed properties: %w", err)
	}

	log.Println("[seed] inserting interactions")
	if err := seedInteractions(ctx, pool, rng, interactionCount); err != nil {
		return fmt.Errorf("seed interactions: %w", err)
	}

	log.Println("[seed] inserting orders")
	if err := seedOrders(ctx, pool, rng, orderCount); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	// One shared password for all demo accounts.
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	rows := []string{}
	args := []any{}

	add := func(username, email, role string) {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, username, email, hash, role)
	}

	add("admin", "admin@lodgewise.dev", "ADMIN")
	for i := 1; i <= landlordCount; i++ {
		add(fmt.Sprintf("landlord%d", i), fmt.Sprintf("landlord%d@lodgewise.dev", i), "LANDLORD")
	}
	for i := 1; i <= userCount-landlordCount-1; i++ {
		add(fmt.Sprintf("guest%d", i), fmt.Sprintf("guest%d@lodgewise.dev", i), "USER")
	}

	query := "INSERT INTO users (username, email, password, role) VALUES " + strings.Join(rows, ", ")
	_, err = pool.Exec(ctx, query, args...)
	return err
}

func seedProperties(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	cities := []string{"Lisbon", "Porto", "Barcelona", "Seville", "Rome", "Florence", "Athens", "Prague"}
	types := []string{"apartment", "house", "villa", "studio", "loft"}
	adjectives := []string{"Sunny", "Cozy", "Quiet", "Central", "Charming", "Modern", "Rustic", "Bright"}
	amenityPool := []string{"wifi", "kitchen", "washer", "air_conditioning", "balcony", "parking", "pool", "pets_allowed"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		city := cities[i%len(cities)]
		propertyType := types[rng.Intn(len(types))]
		title := fmt.Sprintf("%s %s in %s", adjectives[rng.Intn(len(adjectives))], propertyType, city)
		bedrooms := rng.Intn(4) + 1
		price := float64(4000+rng.Intn(26000)) / 100
		rating := math.Round((3.0+rng.Float64()*2.0)*10) / 10
		reviewCount := rng.Intn(80)
		landlordID := int64(2 + rng.Intn(landlordCount))

		amenities := []string{}
		for _, a := range amenityPool {
			if rng.Float64() < 0.45 {
				amenities = append(amenities, a)
			}
		}

		base := len(args)
		placeholders := make([]string, 12)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		rows = append(rows, "("+strings.Join(placeholders, ", ")+")")
		args = append(args,
			title,
			fmt.Sprintf("A %s stay close to the heart of %s.", propertyType, city),
			city,
			price,
			bedrooms,
			rng.Intn(bedrooms)+1,
			bedrooms*2,
			propertyType,
			amenities,
			landlordID,
			rating,
			reviewCount,
		)
	}

	query := `INSERT INTO properties (title, description, city, price, bedrooms, bathrooms,
		max_guests, property_type, amenities, landlord_id, rating, review_count) VALUES ` +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedInteractions(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	kinds := []string{"VIEW", "FAVORITE", "BOOK", "REVIEW"}
	kindWeights := []float64{0.6, 0.15, 0.15, 0.1}

	seen := make(map[[3]any]bool)

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		// Power-law activity: low user/property ids interact more.
		userID := int64(math.Ceil(math.Pow(rng.Float64(), 1.5) * userCount))
		userID = max(1, min(userID, userCount))

		propertyID := int64(math.Ceil(math.Pow(rng.Float64(), 1.3) * propertyCount))
		propertyID = max(1, min(propertyID, propertyCount))

		kind := weightedChoice(rng, kinds, kindWeights)
		key := [3]any{userID, propertyID, kind}
		if seen[key] {
			continue
		}
		seen[key] = true

		var rating any
		if kind == "REVIEW" {
			rating = rng.Intn(3) + 3
		}

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, userID, propertyID, kind, rating)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO user_property_interactions (user_id, property_id, kind, rating) VALUES " +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedOrders(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	statuses := []string{"PENDING", "CONFIRMED", "COMPLETED", "CANCELLED"}
	statusWeights := []float64{0.25, 0.35, 0.3, 0.1}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		userID := int64(rng.Intn(userCount) + 1)
		propertyID := int64(rng.Intn(propertyCount) + 1)
		nights := rng.Intn(7) + 1
		checkIn := time.Now().AddDate(0, 0, rng.Intn(120)-60).Truncate(24 * time.Hour)
		checkOut := checkIn.AddDate(0, 0, nights)
		guestCount := rng.Intn(4) + 1
		totalPrice := float64((4000+rng.Intn(26000))*nights) / 100
		status := weightedChoice(rng, statuses, statusWeights)
		orderNumber := fmt.Sprintf("ORD-%08X", rng.Uint32()+uint32(i))

		base := len(args)
		placeholders := make([]string, 8)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		rows = append(rows, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, orderNumber, userID, propertyID, checkIn, checkOut, guestCount, totalPrice, status)
	}

	query := `INSERT INTO orders (order_number, user_id, property_id, check_in_date,
		check_out_date, guest_count, total_price, status) VALUES ` + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
