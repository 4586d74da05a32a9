package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/repository"
)

var (
	ErrVendorEmailExists      = repository.ErrVendorEmailExists
	ErrVendorUsernameExists   = repository.ErrVendorUsernameExists
	ErrEmployeeEmailExists    = repository.ErrEmployeeEmailExists
	ErrEmployeeUsernameExists = repository.ErrEmployeeUsernameExists
	ErrWrongPassword          = errors.New("wrong password")
	ErrAccountInactive        = errors.New("account is inactive")
)

type AuthVendorRepository interface {
	Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
	FindByEmail(ctx context.Context, email string) (domain.Vendor, error)
	FindByID(ctx context.Context, id uint) (domain.Vendor, error)
	Update(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
}

type AuthEmployeeRepository interface {
	Create(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (domain.Employee, error)
}

type AuthService struct {
	vendorRepo   AuthVendorRepository
	employeeRepo AuthEmployeeRepository
}

func NewAuthService(vendorRepo AuthVendorRepository, employeeRepo AuthEmployeeRepository) *AuthService {
	return &AuthService{
		vendorRepo:   vendorRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *AuthService) SignupVendor(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	hashed, err := hashPassword(vendor.Password)
	if err != nil {
		return domain.Vendor{}, err
	}
	vendor.Password = hashed

	created, err := s.vendorRepo.Create(ctx, vendor)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.vendorRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) LoginVendor(ctx context.Context, email, password string) (domain.Vendor, error) {
	vendor, err := s.vendorRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return domain.Vendor{}, ErrVendorNotFound
		}

		return domain.Vendor{}, fmt.Errorf("s.vendorRepo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(vendor.Password), []byte(password)); err != nil {
		return domain.Vendor{}, ErrWrongPassword
	}

	if !vendor.IsActive {
		return domain.Vendor{}, ErrAccountInactive
	}

	return vendor, nil
}

func (s *AuthService) SignupEmployee(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	hashed, err := hashPassword(employee.Password)
	if err != nil {
		return domain.Employee{}, err
	}
	employee.Password = hashed

	if employee.Role == "" {
		employee.Role = domain.EmployeeRoleStaff
	}

	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("s.employeeRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) LoginEmployee(ctx context.Context, email, password string) (domain.Employee, error) {
	employee, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return domain.Employee{}, ErrEmployeeNotFound
		}

		return domain.Employee{}, fmt.Errorf("s.employeeRepo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)); err != nil {
		return domain.Employee{}, ErrWrongPassword
	}

	if !employee.IsActive {
		return domain.Employee{}, ErrAccountInactive
	}

	return employee, nil
}

// ChangeVendorPassword verifies the old password before storing a hash
// of the new one.
func (s *AuthService) ChangeVendorPassword(ctx context.Context, vendorID uint, oldPassword, newPassword string) error {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return fmt.Errorf("s.vendorRepo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(vendor.Password), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	vendor.Password = hashed

	if _, err = s.vendorRepo.Update(ctx, vendor); err != nil {
		return fmt.Errorf("s.vendorRepo.Update -> %w", err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
