package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository"
)

type fakeStallStore struct {
	stalls map[uint]domain.Stall
	nextID uint
}

func newFakeStallStore() *fakeStallStore {
	return &fakeStallStore{stalls: map[uint]domain.Stall{}, nextID: 1}
}

func (f *fakeStallStore) Create(_ context.Context, stall domain.Stall) (domain.Stall, error) {
	for _, existing := range f.stalls {
		if existing.Name == stall.Name {
			return domain.Stall{}, repository.ErrStallNameExists
		}
	}

	stall.ID = f.nextID
	f.nextID++
	f.stalls[stall.ID] = stall

	return stall, nil
}

func (f *fakeStallStore) FindByID(_ context.Context, id uint) (domain.Stall, error) {
	stall, ok := f.stalls[id]
	if !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}

	return stall, nil
}

func (f *fakeStallStore) FindAll(_ context.Context) ([]domain.Stall, error) {
	var all []domain.Stall
	for _, stall := range f.stalls {
		all = append(all, stall)
	}

	return all, nil
}

func (f *fakeStallStore) FindBySize(_ context.Context, size string) ([]domain.Stall, error) {
	var found []domain.Stall
	for _, stall := range f.stalls {
		if stall.Size == size {
			found = append(found, stall)
		}
	}

	return found, nil
}

func (f *fakeStallStore) Update(_ context.Context, stall domain.Stall) (domain.Stall, error) {
	if _, ok := f.stalls[stall.ID]; !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}
	f.stalls[stall.ID] = stall

	return stall, nil
}

func (f *fakeStallStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.stalls)), nil
}

func (f *fakeStallStore) CountBySize(_ context.Context, size string) (int64, error) {
	var count int64
	for _, stall := range f.stalls {
		if stall.Size == size {
			count++
		}
	}

	return count, nil
}

type fakeActiveLookup struct {
	active map[uint]domain.Reservation
}

func (f *fakeActiveLookup) FindActiveByStallID(_ context.Context, stallID uint) (domain.Reservation, error) {
	reservation, ok := f.active[stallID]
	if !ok {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}

	return reservation, nil
}

func newTestStallService() (*StallService, *fakeStallStore, *fakeActiveLookup) {
	store := newFakeStallStore()
	lookup := &fakeActiveLookup{active: map[uint]domain.Reservation{}}

	return NewStallService(store, lookup), store, lookup
}

func TestGetStall(t *testing.T) {
	t.Run("confirmed reservation marks the stall reserved", func(t *testing.T) {
		svc, store, lookup := newTestStallService()
		stall, err := store.Create(context.Background(), domain.Stall{Name: "A1", Size: domain.StallSizeSmall})
		require.NoError(t, err)

		vendor := domain.Vendor{ID: 7, Username: "pagepress"}
		lookup.active[stall.ID] = domain.Reservation{
			StallID: stall.ID,
			Status:  domain.ReservationStatusConfirmed,
			Vendor:  &vendor,
		}

		found, err := svc.GetStall(context.Background(), stall.ID)
		require.NoError(t, err)
		assert.True(t, found.IsReserved)
		assert.Equal(t, "pagepress", found.ReservedBy)
	})

	t.Run("pending reservation leaves the stall unreserved", func(t *testing.T) {
		svc, store, lookup := newTestStallService()
		stall, err := store.Create(context.Background(), domain.Stall{Name: "A1", Size: domain.StallSizeSmall})
		require.NoError(t, err)

		lookup.active[stall.ID] = domain.Reservation{
			StallID: stall.ID,
			Status:  domain.ReservationStatusPending,
		}

		found, err := svc.GetStall(context.Background(), stall.ID)
		require.NoError(t, err)
		assert.False(t, found.IsReserved)
	})

	t.Run("no reservation at all", func(t *testing.T) {
		svc, store, _ := newTestStallService()
		stall, err := store.Create(context.Background(), domain.Stall{Name: "A1", Size: domain.StallSizeSmall})
		require.NoError(t, err)

		found, err := svc.GetStall(context.Background(), stall.ID)
		require.NoError(t, err)
		assert.False(t, found.IsReserved)
		assert.Empty(t, found.ReservedBy)
	})
}

func TestListStallsBySize(t *testing.T) {
	svc, store, _ := newTestStallService()
	_, err := store.Create(context.Background(), domain.Stall{Name: "A1", Size: domain.StallSizeSmall})
	require.NoError(t, err)
	_, err = store.Create(context.Background(), domain.Stall{Name: "B1", Size: domain.StallSizeLarge})
	require.NoError(t, err)

	t.Run("filters by size", func(t *testing.T) {
		found, err := svc.ListStallsBySize(context.Background(), domain.StallSizeLarge)
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, "B1", found[0].Name)
	})

	t.Run("rejects an unknown size", func(t *testing.T) {
		_, err := svc.ListStallsBySize(context.Background(), "gigantic")
		assert.ErrorIs(t, err, ErrInvalidStallSize)
	})
}

func TestCreateStall(t *testing.T) {
	t.Run("rejects an unknown size", func(t *testing.T) {
		svc, _, _ := newTestStallService()

		_, err := svc.CreateStall(context.Background(), domain.Stall{Name: "A1", Size: "gigantic"})
		assert.ErrorIs(t, err, ErrInvalidStallSize)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, _, _ := newTestStallService()

		_, err := svc.CreateStall(context.Background(), domain.Stall{Name: "A1", Size: domain.StallSizeSmall})
		require.NoError(t, err)

		_, err = svc.CreateStall(context.Background(), domain.Stall{Name: "A1", Size: domain.StallSizeMedium})
		assert.ErrorIs(t, err, ErrStallNameExists)
	})
}
