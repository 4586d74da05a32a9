package response

import "github.com/bookfairlk/stall-reservation-api/internal/domain"

type VendorLoginResponse struct {
	Token  string        `json:"token"`
	Vendor domain.Vendor `json:"vendor"`
}

type EmployeeLoginResponse struct {
	Token    string          `json:"token"`
	Employee domain.Employee `json:"employee"`
}
