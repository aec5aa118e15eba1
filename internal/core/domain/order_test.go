package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRowsFromProducts(t *testing.T) {
	rows := RowsFromProducts([]CurveProduct{
		{ProductID: 1, PurchaseSuggestion: d("12"), LastIncomePrice: d("3.456")},
		{ProductID: 2, PurchaseSuggestion: d("-4"), LastIncomePrice: d("0")},
	})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !rows[0].Amount.Equal(d("12")) || !rows[0].Price.Equal(d("3.46")) {
		t.Errorf("row 0 = amount %s price %s", rows[0].Amount, rows[0].Price)
	}
	if !rows[1].Amount.IsZero() || !rows[1].Price.IsZero() {
		t.Errorf("row 1 = amount %s price %s, want zeros", rows[1].Amount, rows[1].Price)
	}
	if !rows[1].PurchaseSuggestion.Equal(d("-4")) {
		t.Error("suggestion should be kept as received")
	}
}

func TestOrderRow_WithBudget(t *testing.T) {
	row := OrderRow{Price: d("200")}.WithBudget(d("15"))
	if !row.ValueSupplierBudget.Equal(d("30")) {
		t.Errorf("ValueSupplierBudget = %s, want 30", row.ValueSupplierBudget)
	}
}

func TestValidateOrderItems(t *testing.T) {
	if err := ValidateOrderItems(nil); !errors.Is(err, ErrFormValidation) {
		t.Errorf("empty order = %v, want ErrFormValidation", err)
	}

	valid := []OrderItem{{ProductID: 1, Amount: d("2"), Price: d("9.90")}}
	if err := ValidateOrderItems(valid); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	bad := []OrderItem{
		{ProductID: 1, Amount: d("2"), Price: d("9.90")},
		{ProductID: 0, Amount: d("1.5"), Price: d("0")},
	}
	fields := fieldsOf(t, ValidateOrderItems(bad))
	for _, f := range []string{"items[1].product_id", "items[1].amount", "items[1].price"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing failure for %s (got %v)", f, fields)
		}
	}
	if fields["items[1].amount"] != "must be a whole number" {
		t.Errorf("amount message = %q", fields["items[1].amount"])
	}
}

func TestParseOrderItem(t *testing.T) {
	it, err := ParseOrderItem("42:3:10.50:5")
	if err != nil {
		t.Fatal(err)
	}
	if it.ProductID != 42 || !it.Amount.Equal(d("3")) || !it.Price.Equal(d("10.5")) || !it.PercentageSupplierBudget.Equal(d("5")) {
		t.Errorf("ParseOrderItem = %+v", it)
	}

	if _, err := ParseOrderItem("42:3"); !errors.Is(err, ErrFormValidation) {
		t.Errorf("short item = %v", err)
	}
	if _, err := ParseOrderItem("x:3:1"); !errors.Is(err, ErrFormValidation) {
		t.Errorf("bad product = %v", err)
	}
}

func TestParseSupplierRef(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"123", 123, false},
		{"123-ACME Foods", 123, false},
		{" 7 - Spaced ", 7, false},
		{"ACME", 0, true},
		{"", 0, true},
		{"-5", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSupplierRef(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSupplierRef(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSupplierRef(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOrdersOf(t *testing.T) {
	orders := []SuggestedOrder{
		{ID: "1", User: User{Email: "a@b.com"}},
		{ID: "2", User: User{Email: "c@d.com"}},
		{ID: "3", User: User{Email: "a@b.com"}},
	}
	got := OrdersOf(orders, "a@b.com")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("OrdersOf = %+v", got)
	}
}

func TestTotals(t *testing.T) {
	items := []OrderItem{
		{Amount: d("2"), Price: d("10"), PurchaseSuggestion: d("3"), PercentageSupplierBudget: d("10")},
		{Amount: d("1"), Price: d("5.50"), PurchaseSuggestion: d("0"), PercentageSupplierBudget: d("0")},
	}
	got := Totals(items)
	if !got.Subtotal.Equal(d("25.5")) {
		t.Errorf("Subtotal = %s", got.Subtotal)
	}
	if !got.Suggested.Equal(d("30")) {
		t.Errorf("Suggested = %s", got.Suggested)
	}
	if !got.SupplierBudget.Equal(d("2")) {
		t.Errorf("SupplierBudget = %s", got.SupplierBudget)
	}
}
