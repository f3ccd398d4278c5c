package config

import (
	"log"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDevMembers(); err != nil {
		log.Printf("⚠️ Member seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDevMembers seeds a pair of members and a vehicle for local testing.
// Development only; production members arrive through registration.
func (s *Seeder) seedDevMembers() error {
	var count int64
	s.db.Model(&models.Member{}).Count(&count)
	if count > 0 {
		return nil // Members already exist
	}

	alex := &models.Member{
		ID:               uuid.NewString(),
		MemberNumber:     "MV-10001",
		FullName:         "Alex Nguyen",
		Mobile:           "0400 111 222",
		Email:            "alex@example.com",
		SubscriptionTier: "premium_monthly",
		IsActive:         true,
	}
	sam := &models.Member{
		ID:               uuid.NewString(),
		MemberNumber:     "MV-10002",
		FullName:         "Sam Carter",
		Mobile:           "0400 333 444",
		Email:            "sam@example.com",
		SubscriptionTier: "basic",
		IsActive:         true,
	}
	if err := s.db.Create(alex).Error; err != nil {
		return err
	}
	if err := s.db.Create(sam).Error; err != nil {
		return err
	}

	vehicle := &models.Vehicle{
		ID:      uuid.NewString(),
		OwnerID: alex.ID,
		Rego:    "ABC123",
		Make:    "Toyota",
		Model:   "Hilux",
		Year:    2021,
		Status:  domain.VehicleActive,
	}
	return s.db.Create(vehicle).Error
}
