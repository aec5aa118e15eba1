package command

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yndnr/leasedesk-go/internal/cli/output"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/pkg/format"
)

// datePattern is how dates are printed in tables.
const datePattern = "dd/MM/yyyy"

func printDate(iso string) string {
	return format.DateOr(iso, datePattern, iso)
}

func refName(r *domain.Ref) string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.Description
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type peopleView []domain.Person

func (v peopleView) Table() *output.Table {
	t := output.NewTable("ID", "NAME", "KIND", "DOCUMENT", "TELEPHONE", "EMAIL")
	for _, p := range v {
		kind := "individual"
		if p.IsLegalPerson {
			kind = "company"
		}
		t.AddRow(p.ID, p.Name, kind, p.DocumentID, p.Telephone, p.Email)
	}
	return t
}

func (v peopleView) Data() any { return []domain.Person(v) }

type propertiesView []domain.Property

func (v propertiesView) Table() *output.Table {
	t := output.NewTable("ID", "DESCRIPTION", "OWNER", "IPTU", "REGISTRATION", "MEASURE", "CITY")
	for _, p := range v {
		city := ""
		if p.Address != nil {
			city = p.Address.City
		}
		measure := p.MeasureAmount.String() + " " + p.MeasureType
		t.AddRow(p.ID, p.Description, refName(p.Owner),
			strconv.FormatInt(p.IPTUID, 10), strconv.FormatInt(p.RegistrationID, 10), measure, city)
	}
	return t
}

func (v propertiesView) Data() any { return []domain.Property(v) }

type contractsView struct {
	contracts []domain.Contract
	now       time.Time
}

func (v contractsView) Table() *output.Table {
	t := output.NewTable("ID", "DESCRIPTION", "CUSTOMER", "PROPERTY", "PRICE", "START", "END", "STATUS", "RENEW")
	for _, c := range v.contracts {
		status := "Expired"
		if c.IsActive {
			status = "Active"
		}
		t.AddRow(c.ID, c.Description, refName(c.Customer), refName(c.Property),
			format.Currency(c.Price), printDate(c.StartDate), printDate(c.EndDate),
			status, yesNo(c.RenewAllowed(v.now)))
	}
	return t
}

func (v contractsView) Data() any { return v.contracts }

type expiringView []domain.Contract

func (v expiringView) Table() *output.Table {
	t := output.NewTable("ID", "DESCRIPTION", "CUSTOMER", "END", "EXPIRES IN")
	for _, c := range v {
		t.AddRow(c.ID, c.Description, refName(c.Customer), printDate(c.EndDate),
			strconv.Itoa(c.ExpiresInDays)+" days")
	}
	return t
}

func (v expiringView) Data() any { return []domain.Contract(v) }

type paymentsView struct {
	payments  []domain.Payment
	withTotal bool
}

func (v paymentsView) Table() *output.Table {
	t := output.NewTable("ID", "CONTRACT", "DESCRIPTION", "DUE", "PAID ON", "VALUE", "FEES", "DISCOUNT", "SUBTOTAL")
	for _, p := range v.payments {
		paidOn := ""
		if p.PaymentDate != nil {
			paidOn = printDate(*p.PaymentDate)
		}
		t.AddRow(p.ID, refName(p.Contract), p.Description, printDate(p.DueDate), paidOn,
			format.Currency(p.Value), format.Currency(p.AdditionalFees),
			format.Currency(p.Discount), format.Currency(p.Subtotal))
	}
	if v.withTotal {
		t.SetFooter("TOTAL", "", "", "", "", "", "", "", format.Currency(domain.PaymentsTotal(v.payments)))
	}
	return t
}

func (v paymentsView) Data() any {
	if !v.withTotal {
		return v.payments
	}
	return map[string]any{
		"payments": v.payments,
		"total":    domain.PaymentsTotal(v.payments),
	}
}

type suppliersView []domain.Supplier

func (v suppliersView) Table() *output.Table {
	t := output.NewTable("SUPPLIER", "NAME", "BUYER")
	for _, s := range v {
		t.AddRow(strconv.FormatInt(s.SupplierID, 10), s.SupplierName, s.BuyerName)
	}
	return t
}

func (v suppliersView) Data() any { return []domain.Supplier(v) }

type orderRowsView []domain.OrderRow

func (v orderRowsView) Table() *output.Table {
	t := output.NewTable("PRODUCT", "DESCRIPTION", "SUGGESTION", "AMOUNT", "PRICE")
	for _, r := range v {
		t.AddRow(strconv.FormatInt(r.ProductID, 10), r.ProductDescription,
			r.PurchaseSuggestion.String(), r.Amount.String(), format.Currency(r.Price))
	}
	return t
}

func (v orderRowsView) Data() any { return []domain.OrderRow(v) }

type orderView struct {
	order  domain.SuggestedOrder
	totals domain.OrderTotals
}

func newOrderView(o domain.SuggestedOrder) orderView {
	return orderView{order: o, totals: domain.Totals(o.Items)}
}

func (v orderView) Table() *output.Table {
	t := output.NewTable("PRODUCT", "DESCRIPTION", "AMOUNT", "PRICE", "BUDGET %", "SUBTOTAL")
	for _, it := range v.order.Items {
		t.AddRow(strconv.FormatInt(it.ProductID, 10), it.ProductDescription, it.Amount.String(),
			format.Currency(it.Price), it.PercentageSupplierBudget.String(),
			format.Currency(it.Amount.Mul(it.Price)))
	}
	t.SetFooter("TOTAL", "suggested "+format.Currency(v.totals.Suggested),
		"", "", "budget "+format.Currency(v.totals.SupplierBudget), format.Currency(v.totals.Subtotal))
	return t
}

func (v orderView) Data() any {
	return map[string]any{"order": v.order, "totals": v.totals}
}

type pendingOrdersView []domain.SuggestedOrder

func (v pendingOrdersView) Table() *output.Table {
	t := output.NewTable("ID", "SUPPLIER", "CREATED", "ITEMS", "SUBTOTAL")
	for _, o := range v {
		supplier := ""
		if o.Supplier != nil {
			supplier = o.Supplier.SupplierName
		}
		t.AddRow(o.ID, supplier, printDate(o.CreatedAt), strconv.Itoa(len(o.Items)),
			format.Currency(domain.Totals(o.Items).Subtotal))
	}
	return t
}

func (v pendingOrdersView) Data() any { return []domain.SuggestedOrder(v) }

// parseDecimal reads an optional money flag; empty means zero.
func parseDecimal(v *domain.Validator, field, s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		v.Fail(field, "must be a number")
		return decimal.Zero
	}
	return d
}
