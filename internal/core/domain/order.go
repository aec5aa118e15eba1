package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yndnr/leasedesk-go/pkg/format"
)

// Supplier is a vendor the purchase suggestions are computed for.
type Supplier struct {
	SupplierID   int64  `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	BuyerName    string `json:"buyer_name"`
}

// CurveProduct is a product of a supplier's ABC curve with its suggestion.
type CurveProduct struct {
	ProductID          int64           `json:"product_id"`
	ProductDescription string          `json:"product_description"`
	PurchaseSuggestion decimal.Decimal `json:"purchase_suggestion"`
	LastIncomePrice    decimal.Decimal `json:"last_income_price"`
}

// OrderRow is an editable line built from a CurveProduct.
type OrderRow struct {
	ProductID                int64           `json:"product_id"`
	ProductDescription       string          `json:"product_description"`
	PurchaseSuggestion       decimal.Decimal `json:"purchase_suggestion"`
	Amount                   decimal.Decimal `json:"amount"`
	Price                    decimal.Decimal `json:"price"`
	PercentageSupplierBudget decimal.Decimal `json:"percentage_supplier_budget"`
	ValueSupplierBudget      decimal.Decimal `json:"value_supplier_budget"`
}

// RowsFromProducts seeds order rows: the amount defaults to the positive
// suggestion and the price to the last income price rounded to cents.
func RowsFromProducts(products []CurveProduct) []OrderRow {
	rows := make([]OrderRow, 0, len(products))
	for _, p := range products {
		row := OrderRow{
			ProductID:                p.ProductID,
			ProductDescription:       p.ProductDescription,
			PurchaseSuggestion:       p.PurchaseSuggestion,
			Amount:                   decimal.Zero,
			Price:                    decimal.Zero,
			PercentageSupplierBudget: decimal.Zero,
			ValueSupplierBudget:      decimal.Zero,
		}
		if p.PurchaseSuggestion.IsPositive() {
			row.Amount = p.PurchaseSuggestion
		}
		if p.LastIncomePrice.IsPositive() {
			row.Price = p.LastIncomePrice.Round(2)
		}
		rows = append(rows, row)
	}
	return rows
}

// WithBudget sets the supplier budget percentage and recomputes its value
// against the unit price.
func (r OrderRow) WithBudget(pct decimal.Decimal) OrderRow {
	r.PercentageSupplierBudget = pct
	r.ValueSupplierBudget = format.PercentageOf(pct, r.Price)
	return r
}

// OrderItem is a line submitted to POST /orders-suggested.
type OrderItem struct {
	ProductID                int64           `json:"product_id"`
	Amount                   decimal.Decimal `json:"amount"`
	Price                    decimal.Decimal `json:"price"`
	PercentageSupplierBudget decimal.Decimal `json:"percentage_supplier_budget"`
	PurchaseSuggestion       decimal.Decimal `json:"purchase_suggestion"`
	ProductDescription       string          `json:"product_description,omitempty"`
}

// ValidateOrderItems checks every line before submission. Field names are
// indexed, e.g. "items[1].amount".
func ValidateOrderItems(items []OrderItem) error {
	v := NewValidator()
	if len(items) == 0 {
		v.Fail("items", "no products")
		return v.Err()
	}
	for i, it := range items {
		prefix := "items[" + strconv.Itoa(i) + "]."
		if it.ProductID <= 0 {
			v.Fail(prefix+"product_id", "must be a positive number")
		}
		if !it.Amount.IsPositive() {
			v.Fail(prefix+"amount", "invalid quantity, must be greater than 0")
		} else if !it.Amount.Equal(it.Amount.Truncate(0)) {
			v.Fail(prefix+"amount", "must be a whole number")
		}
		if !it.Price.IsPositive() {
			v.Fail(prefix+"price", "invalid price, must be greater than 0")
		}
	}
	return v.Err()
}

// ParseOrderItem parses "product:amount:price[:percentage]".
func ParseOrderItem(s string) (OrderItem, error) {
	parts := strings.Split(s, ":")
	v := NewValidator()
	if len(parts) < 3 || len(parts) > 4 {
		v.Fail("item", "expected product:amount:price[:percentage]")
		return OrderItem{}, v.Err()
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		v.Fail("product_id", "must be a number")
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		v.Fail("amount", "must be a number")
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		v.Fail("price", "must be a number")
	}
	pct := decimal.Zero
	if len(parts) == 4 {
		if pct, err = decimal.NewFromString(parts[3]); err != nil {
			v.Fail("percentage_supplier_budget", "must be a number")
		}
	}
	if err := v.Err(); err != nil {
		return OrderItem{}, err
	}
	return OrderItem{ProductID: id, Amount: amount, Price: price, PercentageSupplierBudget: pct}, nil
}

// ParseSupplierRef extracts the supplier id from "123" or "123-Name".
func ParseSupplierRef(ref string) (int64, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(ref), "-")
	id, err := strconv.ParseInt(strings.TrimSpace(head), 10, 64)
	if err != nil || id <= 0 {
		v := NewValidator()
		v.Fail("supplier", "must start with the numeric supplier code")
		return 0, v.Err()
	}
	return id, nil
}

// SuggestedOrder is a submitted order awaiting approval.
type SuggestedOrder struct {
	ID         string      `json:"id"`
	User       User        `json:"user"`
	Supplier   *Supplier   `json:"supplier,omitempty"`
	Authorized bool        `json:"authorized"`
	CreatedAt  string      `json:"created_at,omitempty"`
	Items      []OrderItem `json:"items"`
}

// OrdersOf keeps the orders placed by the user with the given e-mail.
func OrdersOf(orders []SuggestedOrder, email string) []SuggestedOrder {
	out := make([]SuggestedOrder, 0, len(orders))
	for _, o := range orders {
		if o.User.Email == email {
			out = append(out, o)
		}
	}
	return out
}

// OrderTotals are the three sums printed on an order.
type OrderTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Suggested      decimal.Decimal `json:"suggested"`
	SupplierBudget decimal.Decimal `json:"supplier_budget"`
}

// Totals computes amount×price, suggestion×price, and the supplier budget
// (price×pct/100)×amount over the items.
func Totals(items []OrderItem) OrderTotals {
	t := OrderTotals{Subtotal: decimal.Zero, Suggested: decimal.Zero, SupplierBudget: decimal.Zero}
	for _, it := range items {
		t.Subtotal = t.Subtotal.Add(it.Amount.Mul(it.Price))
		t.Suggested = t.Suggested.Add(it.PurchaseSuggestion.Mul(it.Price))
		t.SupplierBudget = t.SupplierBudget.Add(format.PercentageOf(it.PercentageSupplierBudget, it.Price).Mul(it.Amount))
	}
	return t
}
