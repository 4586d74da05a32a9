package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrStallNameExists = errors.New("stall name already exists")
	ErrStallNotFound   = errors.New("stall not found")
)

type Stall struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"unique;not null"`
	Size string `gorm:"not null"` // "small", "medium" or "large"

	LocationX  float64 `gorm:"not null"`
	LocationY  float64 `gorm:"not null"`
	Dimensions string  // e.g. "10x10 sq ft"

	Price       float64 `gorm:"not null"`
	IsAvailable bool    `gorm:"default:true"`

	CreatedAt time.Time `gorm:"not null"`
}

type StallDAO struct {
	db *gorm.DB
}

func NewStallDAO(db *gorm.DB) *StallDAO {
	return &StallDAO{
		db: db,
	}
}

func (d *StallDAO) Insert(ctx context.Context, stall Stall) (Stall, error) {
	result := d.db.WithContext(ctx).Create(&stall)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Stall{}, ErrStallNameExists
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) FindByID(ctx context.Context, id uint) (Stall, error) {
	var stall Stall

	result := d.db.WithContext(ctx).First(&stall, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stall{}, ErrStallNotFound
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) FindAll(ctx context.Context) ([]Stall, error) {
	var stalls []Stall

	result := d.db.WithContext(ctx).Order("name").Find(&stalls)
	if result.Error != nil {
		return nil, result.Error
	}

	return stalls, nil
}

func (d *StallDAO) FindBySize(ctx context.Context, size string) ([]Stall, error) {
	var stalls []Stall

	result := d.db.WithContext(ctx).Where("size = ?", size).Order("name").Find(&stalls)
	if result.Error != nil {
		return nil, result.Error
	}

	return stalls, nil
}

func (d *StallDAO) Update(ctx context.Context, stall Stall) (Stall, error) {
	result := d.db.WithContext(ctx).Save(&stall)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Stall{}, ErrStallNameExists
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Stall{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *StallDAO) CountBySize(ctx context.Context, size string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Stall{}).Where("size = ?", size).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
