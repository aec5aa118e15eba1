package api

import (
	"context"
	"net/http"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// CreateProperty registers the address and then the property.
func (c *Client) CreateProperty(ctx context.Context, view *service.View, in domain.PropertyInput) (domain.Property, error) {
	if err := in.Validate(); err != nil {
		return domain.Property{}, err
	}

	var addr idResponse
	if err := c.call(ctx, view, requestOf(http.MethodPost, "/api/v1/properties-address", in.Address), &addr, ""); err != nil {
		return domain.Property{}, err
	}

	var property domain.Property
	if err := c.call(ctx, view, requestOf(http.MethodPost, "/api/v1/properties", in.Property(addr.ID)), &property, ""); err != nil {
		return domain.Property{}, err
	}
	return property, nil
}

// ListProperties calls GET /api/v1/properties.
func (c *Client) ListProperties(ctx context.Context, view *service.View) ([]domain.Property, error) {
	var properties []domain.Property
	if err := c.call(ctx, view, getOf("/api/v1/properties", nil), &properties, ""); err != nil {
		return nil, err
	}
	return properties, nil
}
