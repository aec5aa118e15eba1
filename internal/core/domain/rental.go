package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractsExpireDays is the horizon of the expiring-contracts report.
const ContractsExpireDays = 30

// Ref is the id/name pair embedded in list responses.
type Ref struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Address is a postal address shared by people and properties.
type Address struct {
	ID           string `json:"id,omitempty"`
	Street       string `json:"street"`
	PostalCode   string `json:"postal_code"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
}

func (a Address) validate(v *Validator) {
	v.Required("street", a.Street)
	v.Required("postal_code", a.PostalCode)
	v.Required("state", a.State)
	v.Required("city", a.City)
	v.Required("neighborhood", a.Neighborhood)
}

// Person is a tenant, owner or contractor.
type Person struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	IsLegalPerson bool     `json:"is_legal_person"`
	DocumentID    string   `json:"document_id"`
	Telephone     string   `json:"telephone"`
	Email         string   `json:"email"`
	AddressID     string   `json:"address_id,omitempty"`
	Address       *Address `json:"address,omitempty"`
}

// PersonInput is the create-person form.
type PersonInput struct {
	Name          string
	IsLegalPerson bool
	DocumentID    string
	Telephone     string
	Email         string
	Address       Address
}

// Validate checks the form before submission.
func (p PersonInput) Validate() error {
	v := NewValidator()
	v.Required("name", p.Name)
	v.Required("document_id", p.DocumentID)
	v.Required("telephone", p.Telephone)
	v.MinLen("telephone", p.Telephone, 6)
	v.Required("email", p.Email)
	v.Email("email", p.Email)
	p.Address.validate(v)
	return v.Err()
}

// Person returns the payload for POST /people once the address exists.
func (p PersonInput) Person(addressID string) Person {
	return Person{
		Name:          p.Name,
		IsLegalPerson: p.IsLegalPerson,
		DocumentID:    p.DocumentID,
		Telephone:     p.Telephone,
		Email:         p.Email,
		AddressID:     addressID,
	}
}

// Property is a managed real-estate unit.
type Property struct {
	ID             string          `json:"id,omitempty"`
	Description    string          `json:"description"`
	IPTUID         int64           `json:"iptu_id"`
	RegistryOffice string          `json:"registry_office"`
	RegistrationID int64           `json:"registration_id"`
	MeasureType    string          `json:"measure_type"`
	MeasureAmount  decimal.Decimal `json:"measure_amount"`
	OwnerID        string          `json:"owner_id,omitempty"`
	AddressID      string          `json:"address_id,omitempty"`
	Owner          *Ref            `json:"owner,omitempty"`
	Address        *Address        `json:"address,omitempty"`
}

// PropertyInput is the create-property form.
type PropertyInput struct {
	Description    string
	OwnerID        string
	IPTUID         int64
	RegistryOffice string
	RegistrationID int64
	MeasureType    string
	MeasureAmount  decimal.Decimal
	Address        Address
}

// Validate checks the form before submission.
func (p PropertyInput) Validate() error {
	v := NewValidator()
	v.Required("description", p.Description)
	v.UUID("owner_id", p.OwnerID)
	if p.IPTUID <= 0 {
		v.Fail("iptu_id", "must be a positive number")
	}
	v.Required("registry_office", p.RegistryOffice)
	if p.RegistrationID <= 0 {
		v.Fail("registration_id", "must be a positive number")
	}
	v.Required("measure_type", p.MeasureType)
	v.Positive("measure_amount", p.MeasureAmount)
	p.Address.validate(v)
	return v.Err()
}

// Property returns the payload for POST /properties once the address exists.
func (p PropertyInput) Property(addressID string) Property {
	return Property{
		Description:    p.Description,
		IPTUID:         p.IPTUID,
		RegistryOffice: p.RegistryOffice,
		RegistrationID: p.RegistrationID,
		MeasureType:    p.MeasureType,
		MeasureAmount:  p.MeasureAmount,
		OwnerID:        p.OwnerID,
		AddressID:      addressID,
	}
}

// Contract is a lease between a customer and a property.
type Contract struct {
	ID             string          `json:"id,omitempty"`
	Description    string          `json:"description"`
	CustomerID     string          `json:"customer_id,omitempty"`
	PropertyID     string          `json:"property_id,omitempty"`
	Price          decimal.Decimal `json:"price"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	RegistrationID string          `json:"registration_id,omitempty"`
	RegistryOffice string          `json:"registry_office,omitempty"`
	IsActive       bool            `json:"isActive"`
	ExpiresInDays  int             `json:"expiresInDays"`
	Customer       *Ref            `json:"customer,omitempty"`
	Contractor     *Ref            `json:"contractor,omitempty"`
	Property       *Ref            `json:"property,omitempty"`
}

// RenewAllowed reports whether the contract may be renewed at now: only once
// its end date has been reached. Unparseable dates never allow renewal.
func (c Contract) RenewAllowed(now time.Time) bool {
	end, err := ParseTimestamp(c.EndDate)
	if err != nil {
		return false
	}
	return !now.Before(end)
}

// ExpiringContracts keeps the active contracts ending within days.
func ExpiringContracts(contracts []Contract, days int) []Contract {
	out := make([]Contract, 0, len(contracts))
	for _, c := range contracts {
		if c.IsActive && c.ExpiresInDays <= days {
			out = append(out, c)
		}
	}
	return out
}

// ContractInput is the create-contract form.
type ContractInput struct {
	Description    string          `json:"description"`
	CustomerID     string          `json:"customer_id"`
	PropertyID     string          `json:"property_id"`
	Price          decimal.Decimal `json:"price"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	RegistrationID string          `json:"registration_id"`
	RegistryOffice string          `json:"registry_office"`
}

// Validate checks the form before submission.
func (c ContractInput) Validate() error {
	v := NewValidator()
	v.Required("description", c.Description)
	v.UUID("customer_id", c.CustomerID)
	v.UUID("property_id", c.PropertyID)
	v.NotNegative("price", c.Price)
	start := v.Date("start_date", c.StartDate)
	end := v.Date("end_date", c.EndDate)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		v.Fail("end_date", "must not precede start_date")
	}
	v.Required("registration_id", c.RegistrationID)
	v.Required("registry_office", c.RegistryOffice)
	return v.Err()
}

// RenewInput is the renew-contract form.
type RenewInput struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Price     decimal.Decimal `json:"price"`
}

// Validate checks the form before submission.
func (r RenewInput) Validate() error {
	v := NewValidator()
	start := v.Date("start_date", r.StartDate)
	end := v.Date("end_date", r.EndDate)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		v.Fail("end_date", "must not precede start_date")
	}
	v.Positive("price", r.Price)
	return v.Err()
}

// Payment is a recurring charge attached to a contract.
type Payment struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	PaymentDate    *string         `json:"payment_date"`
	DueDate        string          `json:"due_date"`
	IsPaid         bool            `json:"is_paid"`
	Value          decimal.Decimal `json:"value"`
	AdditionalFees decimal.Decimal `json:"additional_fees"`
	Discount       decimal.Decimal `json:"discount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CreatedAt      string          `json:"created_at,omitempty"`
	Contract       *Ref            `json:"contract,omitempty"`
}

// FilterPayments keeps paid or unpaid payments.
func FilterPayments(payments []Payment, paid bool) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.IsPaid == paid {
			out = append(out, p)
		}
	}
	return out
}

// PaymentsTotal sums the subtotals.
func PaymentsTotal(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Subtotal)
	}
	return total
}

// PaymentInput is the create-payment form.
type PaymentInput struct {
	ContractID     string           `json:"-"`
	Description    string           `json:"description"`
	DueDate        string           `json:"due_date"`
	AdditionalFees decimal.Decimal  `json:"additional_fees"`
	Discount       decimal.Decimal  `json:"discount"`
	PaymentDate    string           `json:"payment_date,omitempty"`
	Value          *decimal.Decimal `json:"value,omitempty"`
}

// Validate checks the form before submission.
func (p PaymentInput) Validate() error {
	v := NewValidator()
	v.Required("description", p.Description)
	v.UUID("contract_id", p.ContractID)
	v.Date("due_date", p.DueDate)
	v.NotNegative("additional_fees", p.AdditionalFees)
	v.NotNegative("discount", p.Discount)
	if p.PaymentDate != "" {
		v.Date("payment_date", p.PaymentDate)
	}
	if p.Value != nil {
		v.Positive("value", *p.Value)
	}
	return v.Err()
}

// PayInput is the pay-payment form.
type PayInput struct {
	PaymentDate string `json:"payment_date"`
}

// Validate checks the form before submission.
func (p PayInput) Validate() error {
	v := NewValidator()
	v.Date("payment_date", p.PaymentDate)
	return v.Err()
}

// PaymentsQuery filters the payments listing.
type PaymentsQuery struct {
	ContractID string
	DueMonth   int
	DueYear    int
}

// ValidatePeriod checks the report period.
func (q PaymentsQuery) ValidatePeriod() error {
	v := NewValidator()
	v.Range("due_month", q.DueMonth, 1, 12)
	if q.DueYear <= 0 {
		v.Fail("due_year", "must be a positive number")
	}
	return v.Err()
}

// ParseTimestamp accepts the date and timestamp shapes the backend emits.
// Values without a zone, such as a bare date, are read in local time so a
// date ends at local midnight.
func ParseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", DateLayout} {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
