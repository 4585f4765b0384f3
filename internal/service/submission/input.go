package submission

import (
	"fmt"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// CreateInput holds parameters for the create submission operation.
// One Measurement becomes one record; Photos are shared by every record.
type CreateInput struct {
	Street       string
	Neighborhood string
	Weather      string
	Measurements []domain.Dimensions
	Photos       []gcs.File
}

// Normalize upper-cases the visit fields, converts decimal separators and
// applies the weather default. Called before Validate.
func (i *CreateInput) Normalize() {
	i.Street = domain.NormalizeField(i.Street)
	i.Neighborhood = domain.NormalizeField(i.Neighborhood)
	i.Weather = domain.NormalizeField(i.Weather)
	if i.Weather == "" {
		i.Weather = domain.WeatherNotInformed
	}
	for n, m := range i.Measurements {
		i.Measurements[n] = m.Normalize()
	}
}

// Validate validates the create input.
func (i CreateInput) Validate(maxRecords, maxPhotos int) error {
	var errs []domain.FieldError

	if i.Street == "" {
		errs = append(errs, domain.FieldError{Field: "street", Message: "required"})
	}
	if i.Neighborhood == "" {
		errs = append(errs, domain.FieldError{Field: "neighborhood", Message: "required"})
	}

	if len(i.Measurements) == 0 {
		errs = append(errs, domain.FieldError{Field: "measurements", Message: "at least one required"})
	} else if len(i.Measurements) > maxRecords {
		errs = append(errs, domain.FieldError{
			Field:   "measurements",
			Message: fmt.Sprintf("at most %d allowed", maxRecords),
		})
	}

	if len(i.Photos) > maxPhotos {
		errs = append(errs, domain.FieldError{
			Field:   "photos",
			Message: fmt.Sprintf("at most %d allowed", maxPhotos),
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
