package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// MsgPayDate is the failure message of the pay action.
const MsgPayDate = "check the payment date - it must not be a future date"

// ListPayments calls GET /api/v1/payments, optionally for one contract.
func (c *Client) ListPayments(ctx context.Context, view *service.View, contractID string) ([]domain.Payment, error) {
	q := url.Values{}
	if contractID != "" {
		q.Set("contract_id", contractID)
	}
	var payments []domain.Payment
	if err := c.call(ctx, view, getOf("/api/v1/payments", q), &payments, ""); err != nil {
		return nil, err
	}
	return payments, nil
}

// PaymentsByPeriod lists the payments due in a month, filtered by paid.
func (c *Client) PaymentsByPeriod(ctx context.Context, view *service.View, q domain.PaymentsQuery, paid bool) ([]domain.Payment, error) {
	if err := q.ValidatePeriod(); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("due_month", strconv.Itoa(q.DueMonth))
	query.Set("due_year", strconv.Itoa(q.DueYear))
	if q.ContractID != "" {
		query.Set("contract_id", q.ContractID)
	}

	var payments []domain.Payment
	if err := c.call(ctx, view, getOf("/api/v1/payments", query), &payments, ""); err != nil {
		return nil, err
	}
	return domain.FilterPayments(payments, paid), nil
}

// CreatePayment calls POST /api/v1/contracts/{id}/payments.
func (c *Client) CreatePayment(ctx context.Context, view *service.View, in domain.PaymentInput) (domain.Payment, error) {
	if err := in.Validate(); err != nil {
		return domain.Payment{}, err
	}
	var payment domain.Payment
	path := "/api/v1/contracts/" + segment(in.ContractID) + "/payments"
	if err := c.call(ctx, view, requestOf(http.MethodPost, path, in), &payment, ""); err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

// PayPayment calls PUT /api/v1/payments/{id}/pay.
func (c *Client) PayPayment(ctx context.Context, view *service.View, id string, in domain.PayInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return c.call(ctx, view, requestOf(http.MethodPut, "/api/v1/payments/"+segment(id)+"/pay", in), nil, MsgPayDate)
}
