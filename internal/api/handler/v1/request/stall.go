package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateStallRequest struct {
	Name       string  `json:"name"`
	Size       string  `json:"size"`
	LocationX  float64 `json:"location_x"`
	LocationY  float64 `json:"location_y"`
	Dimensions string  `json:"dimensions,omitempty"`
	Price      float64 `json:"price"`
}

func (req *CreateStallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Size, validation.Required, validation.In("small", "medium", "large")),
		validation.Field(&req.Price, validation.Required, validation.Min(0.0)),
	)
}

type UpdateStallRequest struct {
	Name        *string  `json:"name,omitempty"`
	Size        *string  `json:"size,omitempty"`
	LocationX   *float64 `json:"location_x,omitempty"`
	LocationY   *float64 `json:"location_y,omitempty"`
	Dimensions  *string  `json:"dimensions,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

func (req *UpdateStallRequest) Validate() error {
	if req.Size != nil {
		err := validation.Validate(*req.Size, validation.In("small", "medium", "large"))
		if err != nil {
			return err
		}
	}
	if req.Price != nil {
		return validation.Validate(*req.Price, validation.Min(0.0))
	}

	return nil
}

type SelectGenresRequest struct {
	GenreIDs []uint `json:"genre_ids"`
}

func (req *SelectGenresRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GenreIDs, validation.Required, validation.Length(1, 10)),
	)
}
