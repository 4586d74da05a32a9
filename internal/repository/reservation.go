package repository

import (
	"context"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository/dao"
)

var (
	ErrReservationNotFound  = dao.ErrReservationNotFound
	ErrStallAlreadyClaimed  = dao.ErrStallAlreadyClaimed
	ErrDuplicateReservation = dao.ErrDuplicateReservation
)

type ReservationDAO interface {
	Insert(ctx context.Context, reservation dao.Reservation) (dao.Reservation, error)
	FindByID(ctx context.Context, id uint) (dao.Reservation, error)
	FindByVendorID(ctx context.Context, vendorID uint) ([]dao.Reservation, error)
	FindAll(ctx context.Context, status string) ([]dao.Reservation, error)
	FindActiveByStallID(ctx context.Context, stallID uint) (dao.Reservation, error)
	FindActiveByVendorAndStall(ctx context.Context, vendorID, stallID uint) (dao.Reservation, error)
	CountByVendorAndStatus(ctx context.Context, vendorID uint, status string) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, reservation dao.Reservation) (dao.Reservation, error)
	CountConfirmedBySize(ctx context.Context, size string) (int64, error)
	SumConfirmedRevenue(ctx context.Context, size string) (float64, error)
}

type ReservationRepository struct {
	dao ReservationDAO
}

func NewReservationRepository(dao ReservationDAO) *ReservationRepository {
	return &ReservationRepository{
		dao: dao,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	created, err := r.dao.Insert(ctx, dao.Reservation{
		VendorID: reservation.VendorID,
		StallID:  reservation.StallID,
		QRData:   reservation.QRData,
		QRCode:   reservation.QRCode,
		Status:   reservation.Status,
		Notes:    reservation.Notes,
	})
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return reservationDaoToDomain(created), nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return reservationDaoToDomain(found), nil
}

func (r *ReservationRepository) FindByVendorID(ctx context.Context, vendorID uint) ([]domain.Reservation, error) {
	found, err := r.dao.FindByVendorID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByVendorID -> %w", err)
	}

	return reservationsDaoToDomain(found), nil
}

func (r *ReservationRepository) FindAll(ctx context.Context, status string) ([]domain.Reservation, error) {
	found, err := r.dao.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return reservationsDaoToDomain(found), nil
}

func (r *ReservationRepository) FindActiveByStallID(ctx context.Context, stallID uint) (domain.Reservation, error) {
	found, err := r.dao.FindActiveByStallID(ctx, stallID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindActiveByStallID -> %w", err)
	}

	return reservationDaoToDomain(found), nil
}

func (r *ReservationRepository) FindActiveByVendorAndStall(ctx context.Context, vendorID, stallID uint) (domain.Reservation, error) {
	found, err := r.dao.FindActiveByVendorAndStall(ctx, vendorID, stallID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindActiveByVendorAndStall -> %w", err)
	}

	return reservationDaoToDomain(found), nil
}

func (r *ReservationRepository) CountConfirmedByVendor(ctx context.Context, vendorID uint) (int64, error) {
	count, err := r.dao.CountByVendorAndStatus(ctx, vendorID, domain.ReservationStatusConfirmed)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByVendorAndStatus -> %w", err)
	}

	return count, nil
}

func (r *ReservationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

// Update persists status, timestamps and notes of an existing reservation.
func (r *ReservationRepository) Update(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	existing, err := r.dao.FindByID(ctx, reservation.ID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.Status = reservation.Status
	existing.Notes = reservation.Notes
	existing.ConfirmedAt = reservation.ConfirmedAt
	existing.CancelledAt = reservation.CancelledAt

	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return reservationDaoToDomain(updated), nil
}

func (r *ReservationRepository) CountConfirmedBySize(ctx context.Context, size string) (int64, error) {
	count, err := r.dao.CountConfirmedBySize(ctx, size)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountConfirmedBySize -> %w", err)
	}

	return count, nil
}

func (r *ReservationRepository) SumConfirmedRevenue(ctx context.Context, size string) (float64, error) {
	revenue, err := r.dao.SumConfirmedRevenue(ctx, size)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumConfirmedRevenue -> %w", err)
	}

	return revenue, nil
}

func reservationDaoToDomain(res dao.Reservation) domain.Reservation {
	reservation := domain.Reservation{
		ID:          res.ID,
		VendorID:    res.VendorID,
		StallID:     res.StallID,
		QRData:      res.QRData,
		QRCode:      res.QRCode,
		Status:      res.Status,
		Notes:       res.Notes,
		ConfirmedAt: res.ConfirmedAt,
		CancelledAt: res.CancelledAt,
		CreatedAt:   res.CreatedAt,
		UpdatedAt:   res.UpdatedAt,
	}

	if res.Stall.ID != 0 {
		stall := stallDaoToDomain(res.Stall)
		reservation.Stall = &stall
	}
	if res.Vendor.ID != 0 {
		vendor := vendorDaoToDomain(res.Vendor)
		reservation.Vendor = &vendor
	}

	return reservation
}

func reservationsDaoToDomain(found []dao.Reservation) []domain.Reservation {
	reservations := make([]domain.Reservation, 0, len(found))
	for _, res := range found {
		reservations = append(reservations, reservationDaoToDomain(res))
	}

	return reservations
}
