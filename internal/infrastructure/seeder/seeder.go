package seeder

import (
	"crypto/sha256"
	"encoding/hex"
	"log"

	"github.com/prepkingdom/kingdom-api/internal/domain"
)

// Seeder handles database seeding operations
type Seeder struct {
	userRepo     domain.UserRepository
	buildingRepo domain.BuildingRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(userRepo domain.UserRepository, buildingRepo domain.BuildingRepository) *Seeder {
	return &Seeder{
		userRepo:     userRepo,
		buildingRepo: buildingRepo,
	}
}

// SeedUsers seeds the database with initial users
func (s *Seeder) SeedUsers() error {
	log.Printf("Seeding users...")

	hash := sha256.Sum256([]byte("password123"))
	passwordHash := hex.EncodeToString(hash[:])

	users := []struct {
		username string
		isAdmin  bool
	}{
		{"admin", true},
		{"student1", false},
		{"student2", false},
	}

	for _, u := range users {
		existingUser, err := s.userRepo.GetByUsername(u.username)
		if err != nil {
			log.Printf("Error checking existing user, skipping.")
			continue
		}

		if existingUser != nil {
			log.Printf("User already exists, skipping.")
			continue
		}

		user := &domain.User{
			Username: u.username,
			Password: passwordHash,
			IsAdmin:  u.isAdmin,
		}

		if err := s.userRepo.Create(user); err != nil {
			log.Printf("Error creating user.")
			return err
		}
		log.Printf("Successfully created user.")
	}

	log.Printf("User seeding completed successfully")
	return nil
}

type seedTier struct {
	title    string
	capacity int64
	rate     int64
	cost     *int64
}

func cost(v int64) *int64 { return &v }

// SeedBuildings seeds the castle chain and one village chain per subject.
// Scopes that already have buildings are left untouched.
func (s *Seeder) SeedBuildings() error {
	log.Printf("Seeding buildings...")

	castleTiers := []seedTier{
		{"Wooden Keep", 300, 10, nil},
		{"Stone Castle", 600, 20, cost(500)},
		{"Royal Citadel", 1200, 40, cost(2000)},
	}
	if err := s.seedChain(domain.BuildingTypeCastle, nil, castleTiers); err != nil {
		return err
	}

	villageTiers := []seedTier{
		{"Hamlet", 200, 8, nil},
		{"Village", 400, 16, cost(400)},
		{"Town", 800, 32, cost(1500)},
	}
	for _, subject := range domain.AllSubjects {
		sub := subject
		if err := s.seedChain(domain.BuildingTypeVillage, &sub, villageTiers); err != nil {
			return err
		}
	}

	log.Printf("Building seeding completed successfully")
	return nil
}

func (s *Seeder) seedChain(buildingType domain.BuildingType, subject *domain.Subject, tiers []seedTier) error {
	count, err := s.buildingRepo.CountInScope(buildingType, subject)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Scope already seeded, skipping.")
		return nil
	}

	// Create tiers tail-first so each row can point at its successor
	var nextID *int64
	for i := len(tiers) - 1; i >= 0; i-- {
		t := tiers[i]
		building := &domain.Building{
			Title:            t.title,
			Type:             buildingType,
			Subject:          subject,
			TreasureCapacity: t.capacity,
			ProductionRate:   t.rate,
			Cost:             t.cost,
			NextBuildingID:   nextID,
		}
		if err := s.buildingRepo.Create(building); err != nil {
			log.Printf("Error creating building.")
			return err
		}
		id := building.ID
		nextID = &id
	}
	return nil
}
