package zones

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hazardroute/hazardroute/internal/api/models"
	"github.com/hazardroute/hazardroute/internal/georisk"
)

// Validation constants.
const (
	MaxNameLength        = 80
	MaxDescriptionLength = 500

	// DefaultListLimit is used when a list request omits the limit.
	DefaultListLimit = 50

	// MaxListLimit caps the page size of list requests.
	MaxListLimit = 200
)

// Service provides zone registry operations.
type Service struct {
	repo Repository
}

// NewService creates a new zone registry service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves a page of zones.
func (s *Service) List(ctx context.Context, limit, offset int) (*models.PagedZones, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	result, err := s.repo.List(ctx, ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	items := make([]models.Zone, 0, len(result.Items))
	for _, z := range result.Items {
		items = append(items, s.toAPIZone(z))
	}

	return &models.PagedZones{
		Items: items,
		Meta: models.PagedResponseMeta{
			Limit:  limit,
			Offset: offset,
			Total:  result.Total,
		},
	}, nil
}

// ListAll retrieves every zone in the registry, paging internally. Used by
// analysis when a request opts into registry zones.
func (s *Service) ListAll(ctx context.Context) ([]*Zone, error) {
	var all []*Zone
	offset := 0

	for {
		result, err := s.repo.List(ctx, ListOptions{Limit: MaxListLimit, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		offset += len(result.Items)
		if len(result.Items) == 0 || offset >= result.Total {
			return all, nil
		}
	}
}

// Get retrieves a zone by ID.
func (s *Service) Get(ctx context.Context, zoneID string) (*models.Zone, error) {
	zone, err := s.repo.Get(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	result := s.toAPIZone(zone)
	return &result, nil
}

// GetDomain retrieves a zone by ID as the repository record.
func (s *Service) GetDomain(ctx context.Context, zoneID string) (*Zone, error) {
	return s.repo.Get(ctx, zoneID)
}

// Create creates a new zone.
func (s *Service) Create(ctx context.Context, input *models.ZoneCreateRequest) (*models.Zone, error) {
	if fieldErrors := s.validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	zone := &Zone{
		ID:          newZoneID(),
		Name:        input.Name,
		Center:      Point{Lat: input.Center.Lat, Lon: input.Center.Lon},
		RadiusKm:    input.RadiusKm,
		Weight:      input.Weight,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, zone); err != nil {
		return nil, err
	}

	result := s.toAPIZone(zone)
	return &result, nil
}

// Update updates an existing zone.
func (s *Service) Update(ctx context.Context, zoneID string, input *models.ZoneUpdateRequest) (*models.Zone, error) {
	zone, err := s.repo.Get(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := s.validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.Name != nil {
		zone.Name = *input.Name
	}
	if input.Center != nil {
		zone.Center = Point{Lat: input.Center.Lat, Lon: input.Center.Lon}
	}
	if input.RadiusKm != nil {
		zone.RadiusKm = *input.RadiusKm
	}
	if input.Weight != nil {
		zone.Weight = input.Weight
	}
	if input.Description != nil {
		zone.Description = input.Description
	}
	zone.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, zone); err != nil {
		return nil, err
	}

	result := s.toAPIZone(zone)
	return &result, nil
}

// Delete deletes a zone.
func (s *Service) Delete(ctx context.Context, zoneID string) error {
	// Verify existence so callers can distinguish 404 from success
	if _, err := s.repo.Get(ctx, zoneID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, zoneID)
}

// Upsert describes a zone to create or update by name.
type Upsert struct {
	Name        string
	Center      Point
	RadiusKm    float64
	Weight      *float64
	Description *string
}

// UpsertByName creates the zone when no zone carries its name, otherwise
// updates the existing zone's geometry and metadata. Returns true when a
// new zone was created. Feed ingestion and sample seeding use this to stay
// idempotent.
func (s *Service) UpsertByName(ctx context.Context, input Upsert) (bool, error) {
	if fieldErrors := s.validateUpsert(input); len(fieldErrors) > 0 {
		return false, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()

	existing, err := s.repo.GetByName(ctx, input.Name)
	switch {
	case err == nil:
		existing.Center = input.Center
		existing.RadiusKm = input.RadiusKm
		if input.Weight != nil {
			existing.Weight = input.Weight
		}
		if input.Description != nil {
			existing.Description = input.Description
		}
		existing.UpdatedAt = now
		return false, s.repo.Update(ctx, existing)

	case errors.Is(err, ErrZoneNotFound):
		zone := &Zone{
			ID:          newZoneID(),
			Name:        input.Name,
			Center:      input.Center,
			RadiusKm:    input.RadiusKm,
			Weight:      input.Weight,
			Description: input.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return true, s.repo.Create(ctx, zone)

	default:
		return false, err
	}
}

// SeedSampleZones inserts the sample zone set, skipping zones whose names
// already exist. Returns the number of zones created.
func (s *Service) SeedSampleZones(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range SampleZoneSeeds() {
		wasCreated, err := s.UpsertByName(ctx, seed)
		if err != nil {
			return created, err
		}
		if wasCreated {
			created++
		}
	}
	return created, nil
}

// ToHazardZone converts a registry zone to the analyzer's value type.
func ToHazardZone(z *Zone) (georisk.HazardZone, error) {
	center, err := georisk.NewCoordinate(z.Center.Lat, z.Center.Lon)
	if err != nil {
		return georisk.HazardZone{}, err
	}
	return georisk.NewHazardZone(z.Name, center, z.RadiusKm)
}

// newZoneID generates a registry zone ID.
func newZoneID() string {
	return "hz_" + uuid.New().String()[:22]
}

// validateCreateInput validates the create zone input.
func (s *Service) validateCreateInput(input *models.ZoneCreateRequest) []models.FieldError {
	var errs []models.FieldError

	errs = append(errs, validateName(input.Name, true)...)
	errs = append(errs, validateCenter(input.Center.Lat, input.Center.Lon)...)
	errs = append(errs, validateRadius(input.RadiusKm)...)

	if input.Weight != nil && *input.Weight <= 0 {
		errs = append(errs, models.FieldError{Field: "weight", Message: "must be positive"})
	}
	if input.Description != nil && len(*input.Description) > MaxDescriptionLength {
		errs = append(errs, models.FieldError{Field: "description", Message: "must be at most 500 characters"})
	}

	return errs
}

// validateUpdateInput validates the update zone input.
func (s *Service) validateUpdateInput(input *models.ZoneUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name != nil {
		errs = append(errs, validateName(*input.Name, true)...)
	}
	if input.Center != nil {
		errs = append(errs, validateCenter(input.Center.Lat, input.Center.Lon)...)
	}
	if input.RadiusKm != nil {
		errs = append(errs, validateRadius(*input.RadiusKm)...)
	}
	if input.Weight != nil && *input.Weight <= 0 {
		errs = append(errs, models.FieldError{Field: "weight", Message: "must be positive"})
	}
	if input.Description != nil && len(*input.Description) > MaxDescriptionLength {
		errs = append(errs, models.FieldError{Field: "description", Message: "must be at most 500 characters"})
	}

	return errs
}

// validateUpsert validates an upsert-by-name input.
func (s *Service) validateUpsert(input Upsert) []models.FieldError {
	var errs []models.FieldError

	errs = append(errs, validateName(input.Name, true)...)
	errs = append(errs, validateCenter(input.Center.Lat, input.Center.Lon)...)
	errs = append(errs, validateRadius(input.RadiusKm)...)

	if input.Weight != nil && *input.Weight <= 0 {
		errs = append(errs, models.FieldError{Field: "weight", Message: "must be positive"})
	}

	return errs
}

func validateName(name string, required bool) []models.FieldError {
	if name == "" {
		if required {
			return []models.FieldError{{Field: "name", Message: "is required"}}
		}
		return nil
	}
	if len(name) > MaxNameLength {
		return []models.FieldError{{Field: "name", Message: "must be at most 80 characters"}}
	}
	return nil
}

func validateCenter(lat, lon float64) []models.FieldError {
	var errs []models.FieldError

	if lat < georisk.MinLatitude || lat > georisk.MaxLatitude {
		errs = append(errs, models.FieldError{
			Field:   "center.lat",
			Message: "must be between -90 and 90",
		})
	}
	if lon < georisk.MinLongitude || lon > georisk.MaxLongitude {
		errs = append(errs, models.FieldError{
			Field:   "center.lon",
			Message: "must be between -180 and 180",
		})
	}

	return errs
}

func validateRadius(radiusKm float64) []models.FieldError {
	if radiusKm <= 0 {
		return []models.FieldError{{Field: "radiusKm", Message: "must be positive"}}
	}
	return nil
}

// toAPIZone converts a domain Zone to an API Zone.
func (s *Service) toAPIZone(z *Zone) models.Zone {
	return models.Zone{
		ID:          z.ID,
		Name:        z.Name,
		Center:      models.Point{Lat: z.Center.Lat, Lon: z.Center.Lon},
		RadiusKm:    z.RadiusKm,
		Weight:      z.Weight,
		Description: z.Description,
		CreatedAt:   models.Timestamp(z.CreatedAt),
		UpdatedAt:   models.Timestamp(z.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
