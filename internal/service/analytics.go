package service

import (
	"context"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
)

type Dashboard struct {
	TotalVendors          int64   `json:"total_vendors"`
	TotalReservations     int64   `json:"total_reservations"`
	PendingReservations   int64   `json:"pending_reservations"`
	ConfirmedReservations int64   `json:"confirmed_reservations"`
	CancelledReservations int64   `json:"cancelled_reservations"`
	TotalStalls           int64   `json:"total_stalls"`
	AvailableStalls       int64   `json:"available_stalls"`
	OccupancyRate         float64 `json:"occupancy_rate"`
}

type SizeOccupancy struct {
	Total         int64   `json:"total"`
	Reserved      int64   `json:"reserved"`
	Available     int64   `json:"available"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type RevenueReport struct {
	TotalRevenue  float64            `json:"total_revenue"`
	RevenueBySize map[string]float64 `json:"revenue_by_size"`
}

type StallStats struct {
	TotalStalls     int64            `json:"total_stalls"`
	ReservedStalls  int64            `json:"reserved_stalls"`
	AvailableStalls int64            `json:"available_stalls"`
	StallsBySize    map[string]int64 `json:"stalls_by_size"`
}

type AnalyticsReservationRepository interface {
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountConfirmedBySize(ctx context.Context, size string) (int64, error)
	SumConfirmedRevenue(ctx context.Context, size string) (float64, error)
}

type AnalyticsStallRepository interface {
	Count(ctx context.Context) (int64, error)
	CountBySize(ctx context.Context, size string) (int64, error)
}

type AnalyticsVendorRepository interface {
	Count(ctx context.Context) (int64, error)
}

// AnalyticsService aggregates the staff-facing reports. All numbers
// derive from reservation status, never from the availability flag.
type AnalyticsService struct {
	reservationRepo AnalyticsReservationRepository
	stallRepo       AnalyticsStallRepository
	vendorRepo      AnalyticsVendorRepository
}

func NewAnalyticsService(
	reservationRepo AnalyticsReservationRepository,
	stallRepo AnalyticsStallRepository,
	vendorRepo AnalyticsVendorRepository,
) *AnalyticsService {
	return &AnalyticsService{
		reservationRepo: reservationRepo,
		stallRepo:       stallRepo,
		vendorRepo:      vendorRepo,
	}
}

func (s *AnalyticsService) GetDashboard(ctx context.Context) (Dashboard, error) {
	totalVendors, err := s.vendorRepo.Count(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.vendorRepo.Count -> %w", err)
	}

	totalStalls, err := s.stallRepo.Count(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.stallRepo.Count -> %w", err)
	}

	total, err := s.reservationRepo.CountByStatus(ctx, "")
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.reservationRepo.CountByStatus -> %w", err)
	}

	counts := map[string]int64{}
	for _, status := range []string{
		domain.ReservationStatusPending,
		domain.ReservationStatusConfirmed,
		domain.ReservationStatusCancelled,
	} {
		count, err := s.reservationRepo.CountByStatus(ctx, status)
		if err != nil {
			return Dashboard{}, fmt.Errorf("s.reservationRepo.CountByStatus -> %w", err)
		}
		counts[status] = count
	}

	confirmed := counts[domain.ReservationStatusConfirmed]

	dashboard := Dashboard{
		TotalVendors:          totalVendors,
		TotalReservations:     total,
		PendingReservations:   counts[domain.ReservationStatusPending],
		ConfirmedReservations: confirmed,
		CancelledReservations: counts[domain.ReservationStatusCancelled],
		TotalStalls:           totalStalls,
		AvailableStalls:       totalStalls - confirmed,
	}
	if totalStalls > 0 {
		dashboard.OccupancyRate = float64(confirmed) / float64(totalStalls) * 100
	}

	return dashboard, nil
}

func (s *AnalyticsService) GetOccupancyBySize(ctx context.Context) (map[string]SizeOccupancy, error) {
	occupancy := map[string]SizeOccupancy{}

	for _, size := range []string{domain.StallSizeSmall, domain.StallSizeMedium, domain.StallSizeLarge} {
		total, err := s.stallRepo.CountBySize(ctx, size)
		if err != nil {
			return nil, fmt.Errorf("s.stallRepo.CountBySize -> %w", err)
		}

		reserved, err := s.reservationRepo.CountConfirmedBySize(ctx, size)
		if err != nil {
			return nil, fmt.Errorf("s.reservationRepo.CountConfirmedBySize -> %w", err)
		}

		entry := SizeOccupancy{
			Total:     total,
			Reserved:  reserved,
			Available: total - reserved,
		}
		if total > 0 {
			entry.OccupancyRate = float64(reserved) / float64(total) * 100
		}

		occupancy[size] = entry
	}

	return occupancy, nil
}

func (s *AnalyticsService) GetRevenue(ctx context.Context) (RevenueReport, error) {
	total, err := s.reservationRepo.SumConfirmedRevenue(ctx, "")
	if err != nil {
		return RevenueReport{}, fmt.Errorf("s.reservationRepo.SumConfirmedRevenue -> %w", err)
	}

	report := RevenueReport{
		TotalRevenue:  total,
		RevenueBySize: map[string]float64{},
	}

	for _, size := range []string{domain.StallSizeSmall, domain.StallSizeMedium, domain.StallSizeLarge} {
		revenue, err := s.reservationRepo.SumConfirmedRevenue(ctx, size)
		if err != nil {
			return RevenueReport{}, fmt.Errorf("s.reservationRepo.SumConfirmedRevenue -> %w", err)
		}

		report.RevenueBySize[size] = revenue
	}

	return report, nil
}

func (s *AnalyticsService) GetStallStats(ctx context.Context) (StallStats, error) {
	totalStalls, err := s.stallRepo.Count(ctx)
	if err != nil {
		return StallStats{}, fmt.Errorf("s.stallRepo.Count -> %w", err)
	}

	reserved, err := s.reservationRepo.CountByStatus(ctx, domain.ReservationStatusConfirmed)
	if err != nil {
		return StallStats{}, fmt.Errorf("s.reservationRepo.CountByStatus -> %w", err)
	}

	stats := StallStats{
		TotalStalls:     totalStalls,
		ReservedStalls:  reserved,
		AvailableStalls: totalStalls - reserved,
		StallsBySize:    map[string]int64{},
	}

	for _, size := range []string{domain.StallSizeSmall, domain.StallSizeMedium, domain.StallSizeLarge} {
		count, err := s.stallRepo.CountBySize(ctx, size)
		if err != nil {
			return StallStats{}, fmt.Errorf("s.stallRepo.CountBySize -> %w", err)
		}

		stats.StallsBySize[size] = count
	}

	return stats, nil
}
