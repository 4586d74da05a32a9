package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrVendorEmailExists    = errors.New("email already exists")
	ErrVendorUsernameExists = errors.New("username already exists")
	ErrVendorNotFound       = errors.New("vendor not found")
)

type Vendor struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	BusinessName string `gorm:"not null"`
	BusinessType string `gorm:"not null"` // "Publisher", "Vendor", ...
	Phone        string
	Address      string
	City         string
	Country      string
	IsActive     bool `gorm:"default:true"`

	Genres []Genre `gorm:"many2many:vendor_genres;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type VendorDAO struct {
	db *gorm.DB
}

func NewVendorDAO(db *gorm.DB) *VendorDAO {
	return &VendorDAO{
		db: db,
	}
}

func (d *VendorDAO) Insert(ctx context.Context, vendor Vendor) (Vendor, error) {
	result := d.db.WithContext(ctx).Create(&vendor)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, `unique constraint "uni_vendors_username"`) {
				return Vendor{}, ErrVendorUsernameExists
			}

			return Vendor{}, ErrVendorEmailExists
		}

		return Vendor{}, result.Error
	}

	return vendor, nil
}

func (d *VendorDAO) FindByID(ctx context.Context, id uint) (Vendor, error) {
	var vendor Vendor

	result := d.db.WithContext(ctx).Preload("Genres").First(&vendor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vendor{}, ErrVendorNotFound
		}

		return Vendor{}, result.Error
	}

	return vendor, nil
}

func (d *VendorDAO) FindByEmail(ctx context.Context, email string) (Vendor, error) {
	var vendor Vendor

	result := d.db.WithContext(ctx).First(&vendor, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vendor{}, ErrVendorNotFound
		}

		return Vendor{}, result.Error
	}

	return vendor, nil
}

func (d *VendorDAO) FindAll(ctx context.Context) ([]Vendor, error) {
	var vendors []Vendor

	result := d.db.WithContext(ctx).Preload("Genres").Find(&vendors)
	if result.Error != nil {
		return nil, result.Error
	}

	return vendors, nil
}

func (d *VendorDAO) Update(ctx context.Context, vendor Vendor) (Vendor, error) {
	result := d.db.WithContext(ctx).Save(&vendor)
	if result.Error != nil {
		return Vendor{}, result.Error
	}

	return vendor, nil
}

func (d *VendorDAO) ReplaceGenres(ctx context.Context, vendorID uint, genres []Genre) error {
	vendor := Vendor{ID: vendorID}

	return d.db.WithContext(ctx).Model(&vendor).Association("Genres").Replace(genres)
}

func (d *VendorDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Vendor{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
