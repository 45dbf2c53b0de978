package handler

import (
	"context"

	"github.com/hazardroute/hazardroute/internal/api/middleware"
)

// GetSubject retrieves the authenticated operator subject from the context.
// This is a convenience wrapper around middleware.GetSubject.
func GetSubject(ctx context.Context) string {
	return middleware.GetSubject(ctx)
}
