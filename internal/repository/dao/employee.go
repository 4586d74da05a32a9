package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmployeeEmailExists    = errors.New("email already exists")
	ErrEmployeeUsernameExists = errors.New("username already exists")
	ErrEmployeeNotFound       = errors.New("employee not found")
)

type Employee struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FullName string `gorm:"not null"`
	Role     string `gorm:"not null;default:staff"` // "admin", "manager" or "staff"
	IsActive bool   `gorm:"default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EmployeeDAO struct {
	db *gorm.DB
}

func NewEmployeeDAO(db *gorm.DB) *EmployeeDAO {
	return &EmployeeDAO{
		db: db,
	}
}

func (d *EmployeeDAO) Insert(ctx context.Context, employee Employee) (Employee, error) {
	result := d.db.WithContext(ctx).Create(&employee)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, `unique constraint "uni_employees_username"`) {
				return Employee{}, ErrEmployeeUsernameExists
			}

			return Employee{}, ErrEmployeeEmailExists
		}

		return Employee{}, result.Error
	}

	return employee, nil
}

func (d *EmployeeDAO) FindByID(ctx context.Context, id uint) (Employee, error) {
	var employee Employee

	result := d.db.WithContext(ctx).First(&employee, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Employee{}, ErrEmployeeNotFound
		}

		return Employee{}, result.Error
	}

	return employee, nil
}

func (d *EmployeeDAO) FindByEmail(ctx context.Context, email string) (Employee, error) {
	var employee Employee

	result := d.db.WithContext(ctx).First(&employee, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Employee{}, ErrEmployeeNotFound
		}

		return Employee{}, result.Error
	}

	return employee, nil
}
