package repository

import (
	"context"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository/dao"
)

var (
	ErrVendorEmailExists    = dao.ErrVendorEmailExists
	ErrVendorUsernameExists = dao.ErrVendorUsernameExists
	ErrVendorNotFound       = dao.ErrVendorNotFound
)

type VendorDAO interface {
	Insert(ctx context.Context, vendor dao.Vendor) (dao.Vendor, error)
	FindByID(ctx context.Context, id uint) (dao.Vendor, error)
	FindByEmail(ctx context.Context, email string) (dao.Vendor, error)
	FindAll(ctx context.Context) ([]dao.Vendor, error)
	Update(ctx context.Context, vendor dao.Vendor) (dao.Vendor, error)
	ReplaceGenres(ctx context.Context, vendorID uint, genres []dao.Genre) error
	Count(ctx context.Context) (int64, error)
}

type VendorRepository struct {
	dao VendorDAO
}

func NewVendorRepository(dao VendorDAO) *VendorRepository {
	return &VendorRepository{
		dao: dao,
	}
}

func (r *VendorRepository) Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	created, err := r.dao.Insert(ctx, dao.Vendor{
		Username:     vendor.Username,
		Email:        vendor.Email,
		Password:     vendor.Password,
		BusinessName: vendor.BusinessName,
		BusinessType: vendor.BusinessType,
		Phone:        vendor.Phone,
		Address:      vendor.Address,
		City:         vendor.City,
		Country:      vendor.Country,
		IsActive:     true,
	})
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return vendorDaoToDomain(created), nil
}

func (r *VendorRepository) FindByID(ctx context.Context, id uint) (domain.Vendor, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return vendorDaoToDomain(found), nil
}

func (r *VendorRepository) FindByEmail(ctx context.Context, email string) (domain.Vendor, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return vendorDaoToDomain(found), nil
}

func (r *VendorRepository) FindAll(ctx context.Context) ([]domain.Vendor, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	vendors := make([]domain.Vendor, 0, len(found))
	for _, v := range found {
		vendors = append(vendors, vendorDaoToDomain(v))
	}

	return vendors, nil
}

func (r *VendorRepository) Update(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	existing, err := r.dao.FindByID(ctx, vendor.ID)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.BusinessName = vendor.BusinessName
	existing.Phone = vendor.Phone
	existing.Address = vendor.Address
	existing.City = vendor.City
	existing.Country = vendor.Country
	if vendor.Password != "" {
		existing.Password = vendor.Password
	}

	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return vendorDaoToDomain(updated), nil
}

func (r *VendorRepository) ReplaceGenres(ctx context.Context, vendorID uint, genreIDs []uint) error {
	genres := make([]dao.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, dao.Genre{ID: id})
	}

	if err := r.dao.ReplaceGenres(ctx, vendorID, genres); err != nil {
		return fmt.Errorf("r.dao.ReplaceGenres -> %w", err)
	}

	return nil
}

func (r *VendorRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func vendorDaoToDomain(v dao.Vendor) domain.Vendor {
	genres := make([]domain.Genre, 0, len(v.Genres))
	for _, g := range v.Genres {
		genres = append(genres, genreDaoToDomain(g))
	}

	return domain.Vendor{
		ID:           v.ID,
		Username:     v.Username,
		Email:        v.Email,
		Password:     v.Password,
		BusinessName: v.BusinessName,
		BusinessType: v.BusinessType,
		Phone:        v.Phone,
		Address:      v.Address,
		City:         v.City,
		Country:      v.Country,
		IsActive:     v.IsActive,
		Genres:       genres,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
