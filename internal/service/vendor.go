package service

import (
	"context"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository"
)

var (
	ErrVendorNotFound   = repository.ErrVendorNotFound
	ErrEmployeeNotFound = repository.ErrEmployeeNotFound
	ErrGenreNotFound    = repository.ErrGenreNotFound
)

type VendorRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Vendor, error)
	FindAll(ctx context.Context) ([]domain.Vendor, error)
	Update(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
	ReplaceGenres(ctx context.Context, vendorID uint, genreIDs []uint) error
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Employee, error)
}

type GenreRepository interface {
	FindAll(ctx context.Context) ([]domain.Genre, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Genre, error)
}

type VendorService struct {
	repo         VendorRepository
	employeeRepo EmployeeRepository
	genreRepo    GenreRepository
}

func NewVendorService(repo VendorRepository, employeeRepo EmployeeRepository, genreRepo GenreRepository) *VendorService {
	return &VendorService{
		repo:         repo,
		employeeRepo: employeeRepo,
		genreRepo:    genreRepo,
	}
}

func (s *VendorService) GetVendor(ctx context.Context, id uint) (domain.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return vendor, nil
}

func (s *VendorService) GetEmployee(ctx context.Context, id uint) (domain.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("s.employeeRepo.FindByID -> %w", err)
	}

	return employee, nil
}

func (s *VendorService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	vendors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return vendors, nil
}

func (s *VendorService) UpdateProfile(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	// Profile updates never touch credentials.
	vendor.Password = ""

	updated, err := s.repo.Update(ctx, vendor)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VendorService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := s.genreRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.genreRepo.FindAll -> %w", err)
	}

	return genres, nil
}

// SelectGenres replaces the vendor's genre tags with the given set.
func (s *VendorService) SelectGenres(ctx context.Context, vendorID uint, genreIDs []uint) (domain.Vendor, error) {
	if _, err := s.genreRepo.FindByIDs(ctx, genreIDs); err != nil {
		return domain.Vendor{}, fmt.Errorf("s.genreRepo.FindByIDs -> %w", err)
	}

	if err := s.repo.ReplaceGenres(ctx, vendorID, genreIDs); err != nil {
		return domain.Vendor{}, fmt.Errorf("s.repo.ReplaceGenres -> %w", err)
	}

	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return vendor, nil
}
