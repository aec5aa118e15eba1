package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// ListSuppliers calls GET /suppliers.
func (c *Client) ListSuppliers(ctx context.Context, view *service.View) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	if err := c.call(ctx, view, getOf("/suppliers", nil), &suppliers, ""); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// SupplierProducts loads a supplier's curve products and seeds the order
// rows from them. ref is "123" or "123-Name".
func (c *Client) SupplierProducts(ctx context.Context, view *service.View, ref string, outOfLine bool) ([]domain.OrderRow, error) {
	id, err := domain.ParseSupplierRef(ref)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("add_out_of_line", strconv.FormatBool(outOfLine))

	var products []domain.CurveProduct
	path := "/curve-products/supplier/" + strconv.FormatInt(id, 10)
	if err := c.call(ctx, view, getOf(path, q), &products, ""); err != nil {
		return nil, err
	}
	return domain.RowsFromProducts(products), nil
}

type orderRequest struct {
	Items []domain.OrderItem `json:"items"`
}

// CreateOrder validates the items and calls POST /orders-suggested.
func (c *Client) CreateOrder(ctx context.Context, view *service.View, items []domain.OrderItem) (domain.SuggestedOrder, error) {
	if err := domain.ValidateOrderItems(items); err != nil {
		return domain.SuggestedOrder{}, err
	}
	var order domain.SuggestedOrder
	if err := c.call(ctx, view, requestOf(http.MethodPost, "/orders-suggested", orderRequest{Items: items}), &order, ""); err != nil {
		return domain.SuggestedOrder{}, err
	}
	return order, nil
}

// PendingOrders lists the unauthorized orders placed by email.
func (c *Client) PendingOrders(ctx context.Context, view *service.View, email string) ([]domain.SuggestedOrder, error) {
	q := url.Values{}
	q.Set("onlyUnauthorized", "true")

	var orders []domain.SuggestedOrder
	if err := c.call(ctx, view, getOf("/orders-suggested/", q), &orders, ""); err != nil {
		return nil, err
	}
	return domain.OrdersOf(orders, email), nil
}
