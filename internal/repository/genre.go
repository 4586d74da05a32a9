package repository

import (
	"context"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository/dao"
)

var ErrGenreNotFound = dao.ErrGenreNotFound

type GenreDAO interface {
	FindAll(ctx context.Context) ([]dao.Genre, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Genre, error)
}

type GenreRepository struct {
	dao GenreDAO
}

func NewGenreRepository(dao GenreDAO) *GenreRepository {
	return &GenreRepository{
		dao: dao,
	}
}

func (r *GenreRepository) FindAll(ctx context.Context) ([]domain.Genre, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	genres := make([]domain.Genre, 0, len(found))
	for _, g := range found {
		genres = append(genres, genreDaoToDomain(g))
	}

	return genres, nil
}

func (r *GenreRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Genre, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	genres := make([]domain.Genre, 0, len(found))
	for _, g := range found {
		genres = append(genres, genreDaoToDomain(g))
	}

	return genres, nil
}

func genreDaoToDomain(g dao.Genre) domain.Genre {
	return domain.Genre{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Icon:        g.Icon,
		CreatedAt:   g.CreatedAt,
	}
}
