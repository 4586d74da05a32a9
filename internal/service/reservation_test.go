package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository"
)

type fakeReservationRepo struct {
	reservations map[uint]*domain.Reservation
	vendors      map[uint]domain.Vendor
	stalls       map[uint]domain.Stall
	nextID       uint
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: map[uint]*domain.Reservation{},
		vendors:      map[uint]domain.Vendor{},
		stalls:       map[uint]domain.Stall{},
		nextID:       1,
	}
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	// Mirrors the partial unique indexes the real DAO relies on.
	for _, existing := range f.reservations {
		if !existing.IsActive() || existing.StallID != reservation.StallID {
			continue
		}
		if existing.VendorID == reservation.VendorID {
			return domain.Reservation{}, repository.ErrDuplicateReservation
		}

		return domain.Reservation{}, repository.ErrStallAlreadyClaimed
	}

	reservation.ID = f.nextID
	f.nextID++
	stored := reservation
	f.reservations[stored.ID] = &stored

	return f.withPreloads(stored), nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uint) (domain.Reservation, error) {
	reservation, ok := f.reservations[id]
	if !ok {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}

	return f.withPreloads(*reservation), nil
}

func (f *fakeReservationRepo) FindByVendorID(_ context.Context, vendorID uint) ([]domain.Reservation, error) {
	var found []domain.Reservation
	for _, reservation := range f.reservations {
		if reservation.VendorID == vendorID {
			found = append(found, f.withPreloads(*reservation))
		}
	}

	return found, nil
}

func (f *fakeReservationRepo) FindAll(_ context.Context, status string) ([]domain.Reservation, error) {
	var found []domain.Reservation
	for _, reservation := range f.reservations {
		if status == "" || reservation.Status == status {
			found = append(found, f.withPreloads(*reservation))
		}
	}

	return found, nil
}

func (f *fakeReservationRepo) FindActiveByStallID(_ context.Context, stallID uint) (domain.Reservation, error) {
	for _, reservation := range f.reservations {
		if reservation.StallID == stallID && reservation.IsActive() {
			return f.withPreloads(*reservation), nil
		}
	}

	return domain.Reservation{}, repository.ErrReservationNotFound
}

func (f *fakeReservationRepo) FindActiveByVendorAndStall(_ context.Context, vendorID, stallID uint) (domain.Reservation, error) {
	for _, reservation := range f.reservations {
		if reservation.VendorID == vendorID && reservation.StallID == stallID && reservation.IsActive() {
			return f.withPreloads(*reservation), nil
		}
	}

	return domain.Reservation{}, repository.ErrReservationNotFound
}

func (f *fakeReservationRepo) CountConfirmedByVendor(_ context.Context, vendorID uint) (int64, error) {
	var count int64
	for _, reservation := range f.reservations {
		if reservation.VendorID == vendorID && reservation.Status == domain.ReservationStatusConfirmed {
			count++
		}
	}

	return count, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	stored, ok := f.reservations[reservation.ID]
	if !ok {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}

	stored.Status = reservation.Status
	stored.Notes = reservation.Notes
	stored.ConfirmedAt = reservation.ConfirmedAt
	stored.CancelledAt = reservation.CancelledAt

	return f.withPreloads(*stored), nil
}

func (f *fakeReservationRepo) withPreloads(reservation domain.Reservation) domain.Reservation {
	if vendor, ok := f.vendors[reservation.VendorID]; ok {
		reservation.Vendor = &vendor
	}
	if stall, ok := f.stalls[reservation.StallID]; ok {
		reservation.Stall = &stall
	}

	return reservation
}

type fakeStallRepo struct {
	repo *fakeReservationRepo
}

func (f *fakeStallRepo) FindByID(_ context.Context, id uint) (domain.Stall, error) {
	stall, ok := f.repo.stalls[id]
	if !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}

	return stall, nil
}

type fakeVendorRepo struct {
	repo *fakeReservationRepo
}

func (f *fakeVendorRepo) FindByID(_ context.Context, id uint) (domain.Vendor, error) {
	vendor, ok := f.repo.vendors[id]
	if !ok {
		return domain.Vendor{}, repository.ErrVendorNotFound
	}

	return vendor, nil
}

type fakeMailer struct {
	confirmations int
	cancellations int
	failSend      bool
}

func (f *fakeMailer) SendConfirmation(_, _, _, _ string, _ []byte) error {
	if f.failSend {
		return assert.AnError
	}
	f.confirmations++

	return nil
}

func (f *fakeMailer) SendCancellation(_, _, _ string) error {
	if f.failSend {
		return assert.AnError
	}
	f.cancellations++

	return nil
}

func newTestReservationService(t *testing.T) (*ReservationService, *fakeReservationRepo, *fakeMailer) {
	t.Helper()

	repo := newFakeReservationRepo()
	repo.vendors[1] = domain.Vendor{ID: 1, Username: "pagepress", Email: "pp@example.com", BusinessName: "Page Press", IsActive: true}
	repo.vendors[2] = domain.Vendor{ID: 2, Username: "inkwell", Email: "ink@example.com", BusinessName: "Inkwell Books", IsActive: true}
	for i := uint(1); i <= 6; i++ {
		repo.stalls[i] = domain.Stall{ID: i, Name: "A" + string(rune('0'+i)), Size: domain.StallSizeSmall, Price: 500, IsAvailable: true}
	}
	repo.stalls[9] = domain.Stall{ID: 9, Name: "X9", Size: domain.StallSizeLarge, Price: 1500, IsAvailable: false}

	sender := &fakeMailer{}
	svc := NewReservationService(repo, &fakeStallRepo{repo}, &fakeVendorRepo{repo}, sender)

	return svc, repo, sender
}

func mustConfirm(t *testing.T, svc *ReservationService, vendorID, stallID uint) domain.Reservation {
	t.Helper()

	created, err := svc.Request(context.Background(), vendorID, stallID, "")
	require.NoError(t, err)

	confirmed, _, err := svc.Approve(context.Background(), created.ID)
	require.NoError(t, err)

	return confirmed
}

func TestRequest(t *testing.T) {
	t.Run("creates a pending reservation with a QR token", func(t *testing.T) {
		svc, _, sender := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "corner spot please")
		require.NoError(t, err)

		assert.Equal(t, domain.ReservationStatusPending, created.Status)
		assert.Equal(t, "corner spot please", created.Notes)
		assert.True(t, strings.HasPrefix(created.QRData, "BSFAIR-"))
		assert.NotEmpty(t, created.QRCode)
		assert.Nil(t, created.ConfirmedAt)
		assert.Zero(t, sender.confirmations, "no email before approval")
	})

	t.Run("rejects a stall pulled off the floor", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		_, err := svc.Request(context.Background(), 1, 9, "")
		assert.ErrorIs(t, err, ErrStallNotAvailable)
	})

	t.Run("rejects an unknown stall", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		_, err := svc.Request(context.Background(), 1, 404, "")
		assert.ErrorIs(t, err, ErrStallNotFound)
	})

	t.Run("rejects an unknown vendor", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		_, err := svc.Request(context.Background(), 404, 1, "")
		assert.ErrorIs(t, err, ErrVendorNotFound)
	})

	t.Run("one active claimant per stall", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		_, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		_, err = svc.Request(context.Background(), 2, 1, "")
		assert.ErrorIs(t, err, ErrStallAlreadyClaimed)
	})

	t.Run("one active reservation per vendor and stall", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		_, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		_, err = svc.Request(context.Background(), 1, 1, "")
		assert.ErrorIs(t, err, ErrDuplicateReservation)
	})

	t.Run("a confirmed claim still blocks the same vendor", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		mustConfirm(t, svc, 1, 1)

		_, err := svc.Request(context.Background(), 1, 1, "")
		assert.ErrorIs(t, err, ErrDuplicateReservation)
	})

	t.Run("cancelled reservations release the stall", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		vendorID := uint(1)
		_, _, err = svc.Cancel(context.Background(), created.ID, &vendorID)
		require.NoError(t, err)

		_, err = svc.Request(context.Background(), 2, 1, "")
		assert.NoError(t, err)
	})

	t.Run("quota of three confirmed reservations", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		for stallID := uint(1); stallID <= 3; stallID++ {
			mustConfirm(t, svc, 1, stallID)
		}

		_, err := svc.Request(context.Background(), 1, 4, "")
		assert.ErrorIs(t, err, ErrReservationQuotaExceeded)
	})

	t.Run("pending reservations do not count against the quota", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		for stallID := uint(1); stallID <= 3; stallID++ {
			_, err := svc.Request(context.Background(), 1, stallID, "")
			require.NoError(t, err)
		}

		_, err := svc.Request(context.Background(), 1, 4, "")
		assert.NoError(t, err)
	})

	t.Run("cancelling a confirmed reservation frees quota", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		var first domain.Reservation
		for stallID := uint(1); stallID <= 3; stallID++ {
			confirmed := mustConfirm(t, svc, 1, stallID)
			if stallID == 1 {
				first = confirmed
			}
		}

		_, _, err := svc.Cancel(context.Background(), first.ID, nil)
		require.NoError(t, err)

		_, err = svc.Request(context.Background(), 1, 4, "")
		assert.NoError(t, err)
	})
}

func TestApprove(t *testing.T) {
	t.Run("confirms a pending reservation and emails the vendor", func(t *testing.T) {
		svc, _, sender := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		confirmed, emailSent, err := svc.Approve(context.Background(), created.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.ReservationStatusConfirmed, confirmed.Status)
		assert.NotNil(t, confirmed.ConfirmedAt)
		assert.True(t, emailSent)
		assert.Equal(t, 1, sender.confirmations)
	})

	t.Run("a failed email never rolls back the confirmation", func(t *testing.T) {
		svc, repo, sender := newTestReservationService(t)
		sender.failSend = true

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		confirmed, emailSent, err := svc.Approve(context.Background(), created.ID)
		require.NoError(t, err)
		assert.False(t, emailSent)
		assert.Equal(t, domain.ReservationStatusConfirmed, confirmed.Status)

		stored, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusConfirmed, stored.Status)
	})

	t.Run("approving twice fails", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		confirmed := mustConfirm(t, svc, 1, 1)

		_, _, err := svc.Approve(context.Background(), confirmed.ID)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("approving a cancelled reservation fails", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		_, _, err = svc.Cancel(context.Background(), created.ID, nil)
		require.NoError(t, err)

		_, _, err = svc.Approve(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		_, _, err := svc.Approve(context.Background(), 404)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestReject(t *testing.T) {
	t.Run("cancels a pending reservation and records the reason", func(t *testing.T) {
		svc, _, sender := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		rejected, emailSent, err := svc.Reject(context.Background(), created.ID, "stall row reserved for sponsors")
		require.NoError(t, err)

		assert.Equal(t, domain.ReservationStatusCancelled, rejected.Status)
		assert.Equal(t, "Rejected by admin: stall row reserved for sponsors", rejected.Notes)
		assert.NotNil(t, rejected.CancelledAt)
		assert.True(t, emailSent)
		assert.Equal(t, 1, sender.cancellations)
	})

	t.Run("defaults the reason when empty", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		rejected, _, err := svc.Reject(context.Background(), created.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "Rejected by admin: No reason provided", rejected.Notes)
	})

	t.Run("rejecting a confirmed reservation fails", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		confirmed := mustConfirm(t, svc, 1, 1)

		_, _, err := svc.Reject(context.Background(), confirmed.ID, "too late")
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestCancel(t *testing.T) {
	t.Run("vendor cancels their own reservation", func(t *testing.T) {
		svc, _, sender := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		vendorID := uint(1)
		cancelled, emailSent, err := svc.Cancel(context.Background(), created.ID, &vendorID)
		require.NoError(t, err)

		assert.Equal(t, domain.ReservationStatusCancelled, cancelled.Status)
		assert.NotNil(t, cancelled.CancelledAt)
		assert.True(t, emailSent)
		assert.Equal(t, 1, sender.cancellations)
	})

	t.Run("vendor cannot cancel another vendor's reservation", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		otherVendor := uint(2)
		_, _, err = svc.Cancel(context.Background(), created.ID, &otherVendor)
		assert.ErrorIs(t, err, ErrNotReservationOwner)
	})

	t.Run("staff can cancel any reservation", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		confirmed := mustConfirm(t, svc, 1, 1)

		cancelled, _, err := svc.Cancel(context.Background(), confirmed.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, cancelled.Status)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		_, _, err = svc.Cancel(context.Background(), created.ID, nil)
		require.NoError(t, err)

		_, _, err = svc.Cancel(context.Background(), created.ID, nil)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})
}

func TestGetReservation(t *testing.T) {
	t.Run("owner reads their reservation", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		vendorID := uint(1)
		found, err := svc.GetReservation(context.Background(), created.ID, &vendorID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("the issued token survives confirmation and lookup unchanged", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(created.QRData, "BSFAIR-"))

		confirmed, _, err := svc.Approve(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.QRData, confirmed.QRData)

		vendorID := uint(1)
		found, err := svc.GetReservation(context.Background(), created.ID, &vendorID)
		require.NoError(t, err)
		assert.Equal(t, created.QRData, found.QRData)
		assert.Equal(t, created.QRCode, found.QRCode)
	})

	t.Run("another vendor is refused", func(t *testing.T) {
		svc, _, _ := newTestReservationService(t)

		created, err := svc.Request(context.Background(), 1, 1, "")
		require.NoError(t, err)

		otherVendor := uint(2)
		_, err = svc.GetReservation(context.Background(), created.ID, &otherVendor)
		assert.ErrorIs(t, err, ErrNotReservationOwner)
	})
}

func TestListReservations(t *testing.T) {
	svc, _, _ := newTestReservationService(t)

	_, err := svc.Request(context.Background(), 1, 1, "")
	require.NoError(t, err)
	mustConfirm(t, svc, 1, 2)
	_, err = svc.Request(context.Background(), 2, 3, "")
	require.NoError(t, err)

	all, err := svc.ListReservations(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	confirmed, err := svc.ListReservations(context.Background(), domain.ReservationStatusConfirmed)
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	mine, err := svc.ListVendorReservations(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
