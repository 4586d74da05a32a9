package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository"
)

var (
	ErrStallNotFound    = repository.ErrStallNotFound
	ErrStallNameExists  = repository.ErrStallNameExists
	ErrInvalidStallSize = errors.New("size must be small, medium or large")
)

// StallWithStatus decorates a stall with its current booking state,
// derived from reservation status rather than the availability flag.
type StallWithStatus struct {
	domain.Stall

	IsReserved bool   `json:"is_reserved"`
	ReservedBy string `json:"reserved_by,omitempty"`
}

type StallRepository interface {
	Create(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
	FindAll(ctx context.Context) ([]domain.Stall, error)
	FindBySize(ctx context.Context, size string) ([]domain.Stall, error)
	Update(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	Count(ctx context.Context) (int64, error)
	CountBySize(ctx context.Context, size string) (int64, error)
}

type StallReservationRepository interface {
	FindActiveByStallID(ctx context.Context, stallID uint) (domain.Reservation, error)
}

type StallService struct {
	repo            StallRepository
	reservationRepo StallReservationRepository
}

func NewStallService(repo StallRepository, reservationRepo StallReservationRepository) *StallService {
	return &StallService{
		repo:            repo,
		reservationRepo: reservationRepo,
	}
}

func (s *StallService) GetStall(ctx context.Context, id uint) (StallWithStatus, error) {
	stall, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StallWithStatus{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return s.withStatus(ctx, stall)
}

func (s *StallService) ListStalls(ctx context.Context) ([]StallWithStatus, error) {
	stalls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return s.allWithStatus(ctx, stalls)
}

func (s *StallService) ListStallsBySize(ctx context.Context, size string) ([]StallWithStatus, error) {
	if !domain.IsValidStallSize(size) {
		return nil, ErrInvalidStallSize
	}

	stalls, err := s.repo.FindBySize(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySize -> %w", err)
	}

	return s.allWithStatus(ctx, stalls)
}

func (s *StallService) CreateStall(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	if !domain.IsValidStallSize(stall.Size) {
		return domain.Stall{}, ErrInvalidStallSize
	}

	created, err := s.repo.Create(ctx, stall)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StallService) UpdateStall(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	if stall.Size != "" && !domain.IsValidStallSize(stall.Size) {
		return domain.Stall{}, ErrInvalidStallSize
	}

	updated, err := s.repo.Update(ctx, stall)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *StallService) withStatus(ctx context.Context, stall domain.Stall) (StallWithStatus, error) {
	decorated := StallWithStatus{Stall: stall}

	active, err := s.reservationRepo.FindActiveByStallID(ctx, stall.ID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return decorated, nil
		}

		return StallWithStatus{}, fmt.Errorf("s.reservationRepo.FindActiveByStallID -> %w", err)
	}

	if active.Status == domain.ReservationStatusConfirmed {
		decorated.IsReserved = true
		if active.Vendor != nil {
			decorated.ReservedBy = active.Vendor.Username
		}
	}

	return decorated, nil
}

func (s *StallService) allWithStatus(ctx context.Context, stalls []domain.Stall) ([]StallWithStatus, error) {
	decorated := make([]StallWithStatus, 0, len(stalls))
	for _, stall := range stalls {
		withStatus, err := s.withStatus(ctx, stall)
		if err != nil {
			return nil, err
		}

		decorated = append(decorated, withStatus)
	}

	return decorated, nil
}
