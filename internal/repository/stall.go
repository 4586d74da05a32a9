package repository

import (
	"context"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository/dao"
)

var (
	ErrStallNameExists = dao.ErrStallNameExists
	ErrStallNotFound   = dao.ErrStallNotFound
)

type StallDAO interface {
	Insert(ctx context.Context, stall dao.Stall) (dao.Stall, error)
	FindByID(ctx context.Context, id uint) (dao.Stall, error)
	FindAll(ctx context.Context) ([]dao.Stall, error)
	FindBySize(ctx context.Context, size string) ([]dao.Stall, error)
	Update(ctx context.Context, stall dao.Stall) (dao.Stall, error)
	Count(ctx context.Context) (int64, error)
	CountBySize(ctx context.Context, size string) (int64, error)
}

type StallRepository struct {
	dao StallDAO
}

func NewStallRepository(dao StallDAO) *StallRepository {
	return &StallRepository{
		dao: dao,
	}
}

func (r *StallRepository) Create(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	created, err := r.dao.Insert(ctx, dao.Stall{
		Name:        stall.Name,
		Size:        stall.Size,
		LocationX:   stall.LocationX,
		LocationY:   stall.LocationY,
		Dimensions:  stall.Dimensions,
		Price:       stall.Price,
		IsAvailable: stall.IsAvailable,
	})
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return stallDaoToDomain(created), nil
}

func (r *StallRepository) FindByID(ctx context.Context, id uint) (domain.Stall, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return stallDaoToDomain(found), nil
}

func (r *StallRepository) FindAll(ctx context.Context) ([]domain.Stall, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return stallsDaoToDomain(found), nil
}

func (r *StallRepository) FindBySize(ctx context.Context, size string) ([]domain.Stall, error) {
	found, err := r.dao.FindBySize(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySize -> %w", err)
	}

	return stallsDaoToDomain(found), nil
}

func (r *StallRepository) Update(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	existing, err := r.dao.FindByID(ctx, stall.ID)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.Name = stall.Name
	existing.Size = stall.Size
	existing.LocationX = stall.LocationX
	existing.LocationY = stall.LocationY
	existing.Dimensions = stall.Dimensions
	existing.Price = stall.Price
	existing.IsAvailable = stall.IsAvailable

	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return stallDaoToDomain(updated), nil
}

func (r *StallRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *StallRepository) CountBySize(ctx context.Context, size string) (int64, error) {
	count, err := r.dao.CountBySize(ctx, size)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBySize -> %w", err)
	}

	return count, nil
}

func stallDaoToDomain(s dao.Stall) domain.Stall {
	return domain.Stall{
		ID:          s.ID,
		Name:        s.Name,
		Size:        s.Size,
		LocationX:   s.LocationX,
		LocationY:   s.LocationY,
		Dimensions:  s.Dimensions,
		Price:       s.Price,
		IsAvailable: s.IsAvailable,
		CreatedAt:   s.CreatedAt,
	}
}

func stallsDaoToDomain(found []dao.Stall) []domain.Stall {
	stalls := make([]domain.Stall, 0, len(found))
	for _, s := range found {
		stalls = append(stalls, stallDaoToDomain(s))
	}

	return stalls
}
