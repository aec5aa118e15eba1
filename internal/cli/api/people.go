package api

import (
	"context"
	"net/http"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// CreatePerson registers the address and then the person pointing at it.
func (c *Client) CreatePerson(ctx context.Context, view *service.View, in domain.PersonInput) (domain.Person, error) {
	if err := in.Validate(); err != nil {
		return domain.Person{}, err
	}

	var addr idResponse
	if err := c.call(ctx, view, requestOf(http.MethodPost, "/api/v1/people-address", in.Address), &addr, ""); err != nil {
		return domain.Person{}, err
	}

	var person domain.Person
	if err := c.call(ctx, view, requestOf(http.MethodPost, "/api/v1/people", in.Person(addr.ID)), &person, ""); err != nil {
		return domain.Person{}, err
	}
	return person, nil
}

// ListPeople calls GET /api/v1/people.
func (c *Client) ListPeople(ctx context.Context, view *service.View) ([]domain.Person, error) {
	var people []domain.Person
	if err := c.call(ctx, view, getOf("/api/v1/people", nil), &people, ""); err != nil {
		return nil, err
	}
	return people, nil
}
