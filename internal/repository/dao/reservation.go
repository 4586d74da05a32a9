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
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrStallAlreadyClaimed is raised by the partial unique index on
	// stall_id when two vendors race for the same stall; the first
	// committed insert wins.
	ErrStallAlreadyClaimed = errors.New("stall already has an active reservation")

	// ErrDuplicateReservation is raised by the (vendor_id, stall_id)
	// partial unique index.
	ErrDuplicateReservation = errors.New("vendor already has an active reservation for this stall")
)

type Reservation struct {
	ID uint `gorm:"primaryKey"`

	VendorID uint   `gorm:"not null;index"`
	Vendor   Vendor `gorm:"foreignKey:VendorID"`
	StallID  uint   `gorm:"not null;index"`
	Stall    Stall  `gorm:"foreignKey:StallID"`

	QRData string `gorm:"unique;not null"` // confirmation token, QR payload
	QRCode string `gorm:"type:text"`       // rendered QR PNG, base64

	Status string `gorm:"not null;default:pending;index"`
	Notes  string `gorm:"type:text"`

	ConfirmedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ReservationDAO struct {
	db *gorm.DB
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{
		db: db,
	}
}

func (d *ReservationDAO) Insert(ctx context.Context, reservation Reservation) (Reservation, error) {
	result := d.db.WithContext(ctx).Create(&reservation)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			switch {
			case strings.Contains(err.Message, `"idx_reservations_active_vendor_stall"`):
				return Reservation{}, ErrDuplicateReservation
			case strings.Contains(err.Message, `"idx_reservations_active_stall"`):
				return Reservation{}, ErrStallAlreadyClaimed
			}
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) FindByID(ctx context.Context, id uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).Preload("Stall").Preload("Vendor").First(&reservation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) FindByVendorID(ctx context.Context, vendorID uint) ([]Reservation, error) {
	var reservations []Reservation

	result := d.db.WithContext(ctx).
		Preload("Stall").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

// FindAll returns every reservation, optionally filtered by status.
func (d *ReservationDAO) FindAll(ctx context.Context, status string) ([]Reservation, error) {
	var reservations []Reservation

	query := d.db.WithContext(ctx).Preload("Stall").Preload("Vendor")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("created_at DESC").Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

// FindActiveByStallID returns the stall's current claimant, if any.
// At most one row can match thanks to the partial unique index.
func (d *ReservationDAO) FindActiveByStallID(ctx context.Context, stallID uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).
		Preload("Vendor").
		Where("stall_id = ? AND status IN ?", stallID, []string{"pending", "confirmed"}).
		First(&reservation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) FindActiveByVendorAndStall(ctx context.Context, vendorID, stallID uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).
		Where("vendor_id = ? AND stall_id = ? AND status IN ?",
			vendorID, stallID, []string{"pending", "confirmed"}).
		First(&reservation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) CountByVendorAndStatus(ctx context.Context, vendorID uint, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("vendor_id = ? AND status = ?", vendorID, status).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ReservationDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Reservation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ReservationDAO) Update(ctx context.Context, reservation Reservation) (Reservation, error) {
	result := d.db.WithContext(ctx).Save(&reservation)
	if result.Error != nil {
		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) CountConfirmedBySize(ctx context.Context, size string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Joins("JOIN stalls ON stalls.id = reservations.stall_id").
		Where("stalls.size = ? AND reservations.status = ?", size, "confirmed").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ReservationDAO) SumConfirmedRevenue(ctx context.Context, size string) (float64, error) {
	var revenue float64

	query := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Joins("JOIN stalls ON stalls.id = reservations.stall_id").
		Where("reservations.status = ?", "confirmed")
	if size != "" {
		query = query.Where("stalls.size = ?", size)
	}

	result := query.Select("COALESCE(SUM(stalls.price), 0)").Scan(&revenue)
	if result.Error != nil {
		return 0, result.Error
	}

	return revenue, nil
}
