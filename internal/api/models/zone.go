package models

// Zone represents a persisted hazard zone from the registry.
type Zone struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Center      Point     `json:"center"`
	RadiusKm    float64   `json:"radiusKm"`
	Weight      *float64  `json:"weight,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// PagedZones represents a page of registry zones.
type PagedZones struct {
	Items []Zone            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// ZoneCreateRequest is the body of POST /v1/zones.
type ZoneCreateRequest struct {
	Name        string   `json:"name"`
	Center      Point    `json:"center"`
	RadiusKm    float64  `json:"radiusKm"`
	Weight      *float64 `json:"weight,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ZoneUpdateRequest is the body of PUT /v1/zones/{zoneId}. Nil fields are
// left unchanged.
type ZoneUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Center      *Point   `json:"center,omitempty"`
	RadiusKm    *float64 `json:"radiusKm,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Description *string  `json:"description,omitempty"`
}
