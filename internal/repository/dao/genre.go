package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrGenreNotFound = errors.New("genre not found")

type Genre struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"unique;not null"`
	Description string
	Icon        string

	CreatedAt time.Time `gorm:"not null"`
}

// VendorGenre backs the many2many vendor_genres join table.
type VendorGenre struct {
	VendorID uint `gorm:"primaryKey"`
	GenreID  uint `gorm:"primaryKey"`
}

func (VendorGenre) TableName() string {
	return "vendor_genres"
}

type GenreDAO struct {
	db *gorm.DB
}

func NewGenreDAO(db *gorm.DB) *GenreDAO {
	return &GenreDAO{
		db: db,
	}
}

func (d *GenreDAO) FindAll(ctx context.Context) ([]Genre, error) {
	var genres []Genre

	result := d.db.WithContext(ctx).Order("name").Find(&genres)
	if result.Error != nil {
		return nil, result.Error
	}

	return genres, nil
}

func (d *GenreDAO) FindByIDs(ctx context.Context, ids []uint) ([]Genre, error) {
	var genres []Genre

	result := d.db.WithContext(ctx).Find(&genres, ids)
	if result.Error != nil {
		return nil, result.Error
	}

	if len(genres) != len(ids) {
		return nil, ErrGenreNotFound
	}

	return genres, nil
}
