package repository

import (
	"context"
	"fmt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository/dao"
)

var (
	ErrEmployeeEmailExists    = dao.ErrEmployeeEmailExists
	ErrEmployeeUsernameExists = dao.ErrEmployeeUsernameExists
	ErrEmployeeNotFound       = dao.ErrEmployeeNotFound
)

type EmployeeDAO interface {
	Insert(ctx context.Context, employee dao.Employee) (dao.Employee, error)
	FindByID(ctx context.Context, id uint) (dao.Employee, error)
	FindByEmail(ctx context.Context, email string) (dao.Employee, error)
}

type EmployeeRepository struct {
	dao EmployeeDAO
}

func NewEmployeeRepository(dao EmployeeDAO) *EmployeeRepository {
	return &EmployeeRepository{
		dao: dao,
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	created, err := r.dao.Insert(ctx, dao.Employee{
		Username: employee.Username,
		Email:    employee.Email,
		Password: employee.Password,
		FullName: employee.FullName,
		Role:     employee.Role,
		IsActive: true,
	})
	if err != nil {
		return domain.Employee{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return employeeDaoToDomain(created), nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uint) (domain.Employee, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return employeeDaoToDomain(found), nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (domain.Employee, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return employeeDaoToDomain(found), nil
}

func employeeDaoToDomain(e dao.Employee) domain.Employee {
	return domain.Employee{
		ID:        e.ID,
		Username:  e.Username,
		Email:     e.Email,
		Password:  e.Password,
		FullName:  e.FullName,
		Role:      e.Role,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
