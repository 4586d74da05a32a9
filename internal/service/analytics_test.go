package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
)

type fakeAnalyticsReservations struct {
	byStatus        map[string]int64
	confirmedBySize map[string]int64
	revenueBySize   map[string]float64
}

func (f *fakeAnalyticsReservations) CountByStatus(_ context.Context, status string) (int64, error) {
	if status == "" {
		var total int64
		for _, count := range f.byStatus {
			total += count
		}

		return total, nil
	}

	return f.byStatus[status], nil
}

func (f *fakeAnalyticsReservations) CountConfirmedBySize(_ context.Context, size string) (int64, error) {
	return f.confirmedBySize[size], nil
}

func (f *fakeAnalyticsReservations) SumConfirmedRevenue(_ context.Context, size string) (float64, error) {
	if size == "" {
		var total float64
		for _, revenue := range f.revenueBySize {
			total += revenue
		}

		return total, nil
	}

	return f.revenueBySize[size], nil
}

type fakeAnalyticsStalls struct {
	bySize map[string]int64
}

func (f *fakeAnalyticsStalls) Count(_ context.Context) (int64, error) {
	var total int64
	for _, count := range f.bySize {
		total += count
	}

	return total, nil
}

func (f *fakeAnalyticsStalls) CountBySize(_ context.Context, size string) (int64, error) {
	return f.bySize[size], nil
}

type fakeAnalyticsVendors struct {
	total int64
}

func (f *fakeAnalyticsVendors) Count(_ context.Context) (int64, error) {
	return f.total, nil
}

func newTestAnalyticsService() *AnalyticsService {
	return NewAnalyticsService(
		&fakeAnalyticsReservations{
			byStatus: map[string]int64{
				domain.ReservationStatusPending:   2,
				domain.ReservationStatusConfirmed: 5,
				domain.ReservationStatusCancelled: 3,
			},
			confirmedBySize: map[string]int64{
				domain.StallSizeSmall: 3,
				domain.StallSizeLarge: 2,
			},
			revenueBySize: map[string]float64{
				domain.StallSizeSmall: 1500,
				domain.StallSizeLarge: 3000,
			},
		},
		&fakeAnalyticsStalls{
			bySize: map[string]int64{
				domain.StallSizeSmall:  6,
				domain.StallSizeMedium: 2,
				domain.StallSizeLarge:  2,
			},
		},
		&fakeAnalyticsVendors{total: 4},
	)
}

func TestGetDashboard(t *testing.T) {
	svc := newTestAnalyticsService()

	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), dashboard.TotalVendors)
	assert.Equal(t, int64(10), dashboard.TotalReservations)
	assert.Equal(t, int64(2), dashboard.PendingReservations)
	assert.Equal(t, int64(5), dashboard.ConfirmedReservations)
	assert.Equal(t, int64(3), dashboard.CancelledReservations)
	assert.Equal(t, int64(10), dashboard.TotalStalls)
	assert.Equal(t, int64(5), dashboard.AvailableStalls)
	assert.InDelta(t, 50.0, dashboard.OccupancyRate, 0.001)
}

func TestGetOccupancyBySize(t *testing.T) {
	svc := newTestAnalyticsService()

	occupancy, err := svc.GetOccupancyBySize(context.Background())
	require.NoError(t, err)

	small := occupancy[domain.StallSizeSmall]
	assert.Equal(t, int64(6), small.Total)
	assert.Equal(t, int64(3), small.Reserved)
	assert.Equal(t, int64(3), small.Available)
	assert.InDelta(t, 50.0, small.OccupancyRate, 0.001)

	medium := occupancy[domain.StallSizeMedium]
	assert.Zero(t, medium.Reserved)
	assert.InDelta(t, 0.0, medium.OccupancyRate, 0.001)

	large := occupancy[domain.StallSizeLarge]
	assert.InDelta(t, 100.0, large.OccupancyRate, 0.001)
}

func TestGetRevenue(t *testing.T) {
	svc := newTestAnalyticsService()

	revenue, err := svc.GetRevenue(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 4500.0, revenue.TotalRevenue, 0.001)
	assert.InDelta(t, 1500.0, revenue.RevenueBySize[domain.StallSizeSmall], 0.001)
	assert.InDelta(t, 0.0, revenue.RevenueBySize[domain.StallSizeMedium], 0.001)
	assert.InDelta(t, 3000.0, revenue.RevenueBySize[domain.StallSizeLarge], 0.001)
}

func TestGetStallStats(t *testing.T) {
	svc := newTestAnalyticsService()

	stats, err := svc.GetStallStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalStalls)
	assert.Equal(t, int64(5), stats.ReservedStalls)
	assert.Equal(t, int64(5), stats.AvailableStalls)
	assert.Equal(t, int64(6), stats.StallsBySize[domain.StallSizeSmall])
}
