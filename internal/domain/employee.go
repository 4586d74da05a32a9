package domain

import "time"

const (
	EmployeeRoleAdmin   = "admin"
	EmployeeRoleManager = "manager"
	EmployeeRoleStaff   = "staff"
)

// Employee is a fair organizer staff member. Employees act on
// reservations but never own any.
type Employee struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
