package dao

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Vendor{},
		&Employee{},
		&Stall{},
		&Reservation{},
		&Genre{},
		&VendorGenre{},
	)
	if err != nil {
		return err
	}

	// Authoritative backstop for the booking invariants: at most one
	// pending/confirmed reservation per stall, and per (vendor, stall)
	// pair. The service checks these too, but only these indexes hold
	// under concurrent requests; gorm cannot express partial indexes
	// with an IN predicate, so they are created directly.
	if err = db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_active_stall
		 ON reservations (stall_id)
		 WHERE status IN ('pending', 'confirmed')`,
	).Error; err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_active_vendor_stall
		 ON reservations (vendor_id, stall_id)
		 WHERE status IN ('pending', 'confirmed')`,
	).Error
}

// Seed populates an empty database with the fair's stall grid, the
// default genre catalogue and an initial admin account.
func Seed(db *gorm.DB) error {
	var stallCount int64
	if err := db.Model(&Stall{}).Count(&stallCount).Error; err != nil {
		return err
	}
	if stallCount == 0 {
		stalls := []Stall{
			{Name: "A1", Size: "small", LocationX: 10, LocationY: 10, Dimensions: "10x10 sq ft", Price: 500, IsAvailable: true},
			{Name: "A2", Size: "small", LocationX: 30, LocationY: 10, Dimensions: "10x10 sq ft", Price: 500, IsAvailable: true},
			{Name: "A3", Size: "small", LocationX: 50, LocationY: 10, Dimensions: "10x10 sq ft", Price: 500, IsAvailable: true},
			{Name: "B1", Size: "small", LocationX: 70, LocationY: 10, Dimensions: "10x10 sq ft", Price: 500, IsAvailable: true},
			{Name: "B2", Size: "small", LocationX: 90, LocationY: 10, Dimensions: "10x10 sq ft", Price: 500, IsAvailable: true},
			{Name: "C1", Size: "medium", LocationX: 10, LocationY: 50, Dimensions: "15x15 sq ft", Price: 1000, IsAvailable: true},
			{Name: "C2", Size: "medium", LocationX: 40, LocationY: 50, Dimensions: "15x15 sq ft", Price: 1000, IsAvailable: true},
			{Name: "C3", Size: "medium", LocationX: 70, LocationY: 50, Dimensions: "15x15 sq ft", Price: 1000, IsAvailable: true},
			{Name: "D1", Size: "medium", LocationX: 10, LocationY: 80, Dimensions: "15x15 sq ft", Price: 1000, IsAvailable: true},
			{Name: "D2", Size: "medium", LocationX: 40, LocationY: 80, Dimensions: "15x15 sq ft", Price: 1000, IsAvailable: true},
			{Name: "E1", Size: "large", LocationX: 70, LocationY: 80, Dimensions: "20x20 sq ft", Price: 1500, IsAvailable: true},
			{Name: "E2", Size: "large", LocationX: 10, LocationY: 120, Dimensions: "20x20 sq ft", Price: 1500, IsAvailable: true},
			{Name: "F1", Size: "large", LocationX: 50, LocationY: 120, Dimensions: "20x20 sq ft", Price: 1500, IsAvailable: true},
		}
		if err := db.Create(&stalls).Error; err != nil {
			return err
		}
	}

	var genreCount int64
	if err := db.Model(&Genre{}).Count(&genreCount).Error; err != nil {
		return err
	}
	if genreCount == 0 {
		genres := []Genre{
			{Name: "Fiction", Description: "Novels and short stories"},
			{Name: "Non-Fiction", Description: "Educational and factual books"},
			{Name: "Self-Help", Description: "Personal development books"},
			{Name: "Children", Description: "Books for children"},
			{Name: "Science", Description: "Science and technology books"},
			{Name: "History", Description: "Historical books"},
			{Name: "Biography", Description: "Life stories and memoirs"},
			{Name: "Poetry", Description: "Poetry and verse"},
			{Name: "Art & Design", Description: "Art and design books"},
			{Name: "Business", Description: "Business and economics"},
		}
		if err := db.Create(&genres).Error; err != nil {
			return err
		}
	}

	var employeeCount int64
	if err := db.Model(&Employee{}).Count(&employeeCount).Error; err != nil {
		return err
	}
	if employeeCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := Employee{
			Username: "admin",
			Email:    "admin@bookfair.lk",
			Password: string(hash),
			FullName: "Admin User",
			Role:     "admin",
			IsActive: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	return nil
}
