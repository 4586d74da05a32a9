package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/mailer"
	"github.com/bookfairlk/stall-reservation-api/internal/pkg/qrpass"
	"github.com/bookfairlk/stall-reservation-api/internal/repository"
)

var (
	ErrReservationNotFound  = repository.ErrReservationNotFound
	ErrStallAlreadyClaimed  = repository.ErrStallAlreadyClaimed
	ErrDuplicateReservation = repository.ErrDuplicateReservation

	ErrStallNotAvailable        = errors.New("stall is not open for reservation")
	ErrReservationQuotaExceeded = errors.New("maximum 3 confirmed reservations per vendor")
	ErrInvalidStatusTransition  = errors.New("reservation is not in a state that allows this transition")
	ErrAlreadyCancelled         = errors.New("reservation is already cancelled")
	ErrNotReservationOwner      = errors.New("reservation belongs to another vendor")
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error)
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
	FindByVendorID(ctx context.Context, vendorID uint) ([]domain.Reservation, error)
	FindAll(ctx context.Context, status string) ([]domain.Reservation, error)
	FindActiveByStallID(ctx context.Context, stallID uint) (domain.Reservation, error)
	FindActiveByVendorAndStall(ctx context.Context, vendorID, stallID uint) (domain.Reservation, error)
	CountConfirmedByVendor(ctx context.Context, vendorID uint) (int64, error)
	Update(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error)
}

type ReservationStallRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
}

type ReservationVendorRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Vendor, error)
}

// ReservationService owns the reservation lifecycle and enforces the
// booking invariants: one active claimant per stall, one active
// reservation per (vendor, stall) pair and at most three confirmed
// reservations per vendor. The checks here are the fast path; the
// partial unique indexes created by dao.InitTables are the
// authoritative backstop under concurrent requests.
type ReservationService struct {
	repo       ReservationRepository
	stallRepo  ReservationStallRepository
	vendorRepo ReservationVendorRepository
	mailer     mailer.Mailer
}

func NewReservationService(
	repo ReservationRepository,
	stallRepo ReservationStallRepository,
	vendorRepo ReservationVendorRepository,
	mailer mailer.Mailer,
) *ReservationService {
	return &ReservationService{
		repo:       repo,
		stallRepo:  stallRepo,
		vendorRepo: vendorRepo,
		mailer:     mailer,
	}
}

// Request creates a pending reservation for the vendor on the stall.
// No email is sent until staff approve the request.
func (s *ReservationService) Request(ctx context.Context, vendorID, stallID uint, notes string) (domain.Reservation, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.vendorRepo.FindByID -> %w", err)
	}

	stall, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.stallRepo.FindByID -> %w", err)
	}

	// Administrative override: staff can pull a stall off the floor
	// regardless of reservation state.
	if !stall.IsAvailable {
		return domain.Reservation{}, ErrStallNotAvailable
	}

	confirmed, err := s.repo.CountConfirmedByVendor(ctx, vendor.ID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.CountConfirmedByVendor -> %w", err)
	}
	if confirmed >= domain.MaxConfirmedPerVendor {
		return domain.Reservation{}, ErrReservationQuotaExceeded
	}

	_, err = s.repo.FindActiveByVendorAndStall(ctx, vendor.ID, stall.ID)
	if err != nil && !errors.Is(err, repository.ErrReservationNotFound) {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindActiveByVendorAndStall -> %w", err)
	}
	if err == nil {
		return domain.Reservation{}, ErrDuplicateReservation
	}

	_, err = s.repo.FindActiveByStallID(ctx, stall.ID)
	if err != nil && !errors.Is(err, repository.ErrReservationNotFound) {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindActiveByStallID -> %w", err)
	}
	if err == nil {
		return domain.Reservation{}, ErrStallAlreadyClaimed
	}

	token := qrpass.GenerateToken()
	qrCode, err := qrpass.RenderBase64(token)
	if err != nil {
		// The token alone is enough to admit the vendor; the image can
		// be re-rendered later from it.
		zap.L().Warn("failed to render reservation QR code",
			zap.String("token", token),
			zap.Error(err),
		)
	}

	created, err := s.repo.Create(ctx, domain.Reservation{
		VendorID: vendor.ID,
		StallID:  stall.ID,
		QRData:   token,
		QRCode:   qrCode,
		Status:   domain.ReservationStatusPending,
		Notes:    notes,
	})
	if err != nil {
		// A concurrent request may have claimed the stall between the
		// fast-path check and the insert; the unique indexes report it.
		return domain.Reservation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	created.Stall = &stall

	return created, nil
}

// Approve moves a pending reservation to confirmed and emails the
// vendor their QR pass. The returned bool reports whether the email
// went out; a failed send never rolls back the confirmation.
func (s *ReservationService) Approve(ctx context.Context, reservationID uint) (domain.Reservation, bool, error) {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return domain.Reservation{}, false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !reservation.CanApprove() {
		return domain.Reservation{}, false, ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	reservation.Status = domain.ReservationStatusConfirmed
	reservation.ConfirmedAt = &now

	updated, err := s.repo.Update(ctx, reservation)
	if err != nil {
		return domain.Reservation{}, false, fmt.Errorf("s.repo.Update -> %w", err)
	}

	emailSent := s.sendConfirmationEmail(updated)

	return updated, emailSent, nil
}

// Reject moves a pending reservation to cancelled, recording the
// staff reason in the notes.
func (s *ReservationService) Reject(ctx context.Context, reservationID uint, reason string) (domain.Reservation, bool, error) {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return domain.Reservation{}, false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !reservation.CanReject() {
		return domain.Reservation{}, false, ErrInvalidStatusTransition
	}

	if reason == "" {
		reason = "No reason provided"
	}

	now := time.Now().UTC()
	reservation.Status = domain.ReservationStatusCancelled
	reservation.CancelledAt = &now
	reservation.Notes = fmt.Sprintf("Rejected by admin: %v", reason)

	updated, err := s.repo.Update(ctx, reservation)
	if err != nil {
		return domain.Reservation{}, false, fmt.Errorf("s.repo.Update -> %w", err)
	}

	emailSent := s.sendCancellationEmail(updated)

	return updated, emailSent, nil
}

// Cancel moves a reservation to cancelled. Staff may cancel any
// reservation; a vendor (actorVendorID != nil) only their own.
func (s *ReservationService) Cancel(ctx context.Context, reservationID uint, actorVendorID *uint) (domain.Reservation, bool, error) {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return domain.Reservation{}, false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actorVendorID != nil && reservation.VendorID != *actorVendorID {
		return domain.Reservation{}, false, ErrNotReservationOwner
	}

	if !reservation.CanCancel() {
		return domain.Reservation{}, false, ErrAlreadyCancelled
	}

	now := time.Now().UTC()
	reservation.Status = domain.ReservationStatusCancelled
	reservation.CancelledAt = &now

	updated, err := s.repo.Update(ctx, reservation)
	if err != nil {
		return domain.Reservation{}, false, fmt.Errorf("s.repo.Update -> %w", err)
	}

	emailSent := s.sendCancellationEmail(updated)

	return updated, emailSent, nil
}

// GetReservation returns a single reservation. When actorVendorID is
// set the reservation must belong to that vendor.
func (s *ReservationService) GetReservation(ctx context.Context, reservationID uint, actorVendorID *uint) (domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actorVendorID != nil && reservation.VendorID != *actorVendorID {
		return domain.Reservation{}, ErrNotReservationOwner
	}

	return reservation, nil
}

func (s *ReservationService) ListVendorReservations(ctx context.Context, vendorID uint) ([]domain.Reservation, error) {
	reservations, err := s.repo.FindByVendorID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByVendorID -> %w", err)
	}

	return reservations, nil
}

// ListReservations returns all reservations, optionally filtered by
// status. Staff only.
func (s *ReservationService) ListReservations(ctx context.Context, status string) ([]domain.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return reservations, nil
}

func (s *ReservationService) sendConfirmationEmail(reservation domain.Reservation) bool {
	vendor, stall, ok := s.emailParties(reservation)
	if !ok {
		return false
	}

	qrImage, err := qrpass.RenderPNG(reservation.QRData)
	if err != nil {
		zap.L().Warn("failed to render QR image for confirmation email",
			zap.Uint("reservation_id", reservation.ID),
			zap.Error(err),
		)

		return false
	}

	err = s.mailer.SendConfirmation(vendor.Email, vendor.BusinessName, stall.Name, reservation.QRData, qrImage)
	if err != nil {
		zap.L().Warn("failed to send confirmation email",
			zap.Uint("reservation_id", reservation.ID),
			zap.String("email", vendor.Email),
			zap.Error(err),
		)

		return false
	}

	return true
}

func (s *ReservationService) sendCancellationEmail(reservation domain.Reservation) bool {
	vendor, stall, ok := s.emailParties(reservation)
	if !ok {
		return false
	}

	err := s.mailer.SendCancellation(vendor.Email, vendor.BusinessName, stall.Name)
	if err != nil {
		zap.L().Warn("failed to send cancellation email",
			zap.Uint("reservation_id", reservation.ID),
			zap.String("email", vendor.Email),
			zap.Error(err),
		)

		return false
	}

	return true
}

func (s *ReservationService) emailParties(reservation domain.Reservation) (domain.Vendor, domain.Stall, bool) {
	if reservation.Vendor == nil || reservation.Stall == nil {
		zap.L().Warn("reservation loaded without vendor or stall, skipping email",
			zap.Uint("reservation_id", reservation.ID),
		)

		return domain.Vendor{}, domain.Stall{}, false
	}

	return *reservation.Vendor, *reservation.Stall, true
}
