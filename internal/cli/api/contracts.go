package api

import (
	"context"
	"net/http"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// CreateContract calls POST /api/v1/contracts.
func (c *Client) CreateContract(ctx context.Context, view *service.View, in domain.ContractInput) (domain.Contract, error) {
	if err := in.Validate(); err != nil {
		return domain.Contract{}, err
	}
	var contract domain.Contract
	if err := c.call(ctx, view, requestOf(http.MethodPost, "/api/v1/contracts", in), &contract, ""); err != nil {
		return domain.Contract{}, err
	}
	return contract, nil
}

// ListContracts calls GET /api/v1/contracts.
func (c *Client) ListContracts(ctx context.Context, view *service.View) ([]domain.Contract, error) {
	var contracts []domain.Contract
	if err := c.call(ctx, view, getOf("/api/v1/contracts", nil), &contracts, ""); err != nil {
		return nil, err
	}
	return contracts, nil
}

// ExpiringContracts lists the active contracts ending within
// domain.ContractsExpireDays.
func (c *Client) ExpiringContracts(ctx context.Context, view *service.View) ([]domain.Contract, error) {
	contracts, err := c.ListContracts(ctx, view)
	if err != nil {
		return nil, err
	}
	return domain.ExpiringContracts(contracts, domain.ContractsExpireDays), nil
}

// RenewContract calls POST /api/v1/contracts/{id}/renew.
func (c *Client) RenewContract(ctx context.Context, view *service.View, id string, in domain.RenewInput) (domain.Contract, error) {
	v := domain.NewValidator()
	v.UUID("id", id)
	if err := v.Err(); err != nil {
		return domain.Contract{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Contract{}, err
	}
	var contract domain.Contract
	if err := c.call(ctx, view, requestOf(http.MethodPost, "/api/v1/contracts/"+segment(id)+"/renew", in), &contract, ""); err != nil {
		return domain.Contract{}, err
	}
	return contract, nil
}
