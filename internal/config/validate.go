package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("report.timezone: unknown timezone %q", c.Report.Timezone)
	}
	if c.Report.IdentifierPrefix == "" {
		return fmt.Errorf("report.identifier_prefix must not be empty")
	}
	if c.Report.MaxRecords <= 0 {
		return fmt.Errorf("report.max_records must be > 0 (got %d)", c.Report.MaxRecords)
	}
	if c.Report.MaxPhotos <= 0 {
		return fmt.Errorf("report.max_photos must be > 0 (got %d)", c.Report.MaxPhotos)
	}
	if c.Report.MaxPhotoSizeMB <= 0 {
		return fmt.Errorf("report.max_photo_size_mb must be > 0 (got %d)", c.Report.MaxPhotoSizeMB)
	}

	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	return nil
}

func (c *CatalogConfig) validate() error {
	if c.StreetsTTL <= 0 {
		return fmt.Errorf("streets_ttl must be > 0 (got %v)", c.StreetsTTL)
	}
	if c.NeighborhoodsTTL <= 0 {
		return fmt.Errorf("neighborhoods_ttl must be > 0 (got %v)", c.NeighborhoodsTTL)
	}
	if c.MaxStreetResults <= 0 {
		return fmt.Errorf("max_street_results must be > 0 (got %d)", c.MaxStreetResults)
	}
	return nil
}
