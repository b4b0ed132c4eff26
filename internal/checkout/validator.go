package checkout

import (
	"regexp"
	"strings"
)

// Field validation for the shipping form. Messages are shown verbatim
// in the storefront UI, so their exact wording matters.
var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	pinRe   = regexp.MustCompile(`^\d{6}$`)
	upiRe   = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
	cityRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// IndianStates is the fixed choice list for the state dropdown.
var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi",
	"Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// FormFields in validation order.
const (
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldState      = "state"
	FieldPostalCode = "postalCode"
	FieldUPIID      = "upiId"
)

// ValidateField returns the user-facing error message for a single
// field value, or "" when the value is acceptable.
func ValidateField(field, value string) string {
	trimmed := strings.TrimSpace(value)

	switch field {
	case FieldName:
		if trimmed == "" {
			return "Full name is required"
		}
		if len(trimmed) < 2 {
			return "Name must be at least 2 characters"
		}
		if !nameRe.MatchString(trimmed) {
			return "Name should only contain letters"
		}
	case FieldPhone:
		if trimmed == "" {
			return "Phone number is required"
		}
		if !phoneRe.MatchString(trimmed) {
			return "Enter a valid 10-digit Indian mobile number"
		}
	case FieldAddress:
		if trimmed == "" {
			return "Address is required"
		}
		if len(trimmed) < 10 {
			return "Please enter a complete address"
		}
	case FieldCity:
		if trimmed == "" {
			return "City is required"
		}
		if !cityRe.MatchString(trimmed) {
			return "Enter a valid city name"
		}
	case FieldState:
		if trimmed == "" {
			return "State is required"
		}
	case FieldPostalCode:
		if trimmed == "" {
			return "Postal code is required"
		}
		if !pinRe.MatchString(trimmed) {
			return "Enter a valid 6-digit PIN code"
		}
	case FieldUPIID:
		if trimmed == "" {
			return "UPI ID is required"
		}
		if !upiRe.MatchString(trimmed) {
			return "Enter a valid UPI ID (e.g., name@upi)"
		}
	}
	return ""
}

// FormState tracks which fields the customer has touched so errors only
// surface for visited fields, plus the full error map after a submit.
type FormState struct {
	Touched map[string]bool   `json:"touched"`
	Errors  map[string]string `json:"errors"`
}

func NewFormState() *FormState {
	return &FormState{
		Touched: make(map[string]bool),
		Errors:  make(map[string]string),
	}
}

func (f *FormState) Touch(field string) {
	f.Touched[field] = true
}

func (f *FormState) TouchAll(fields []string) {
	for _, field := range fields {
		f.Touched[field] = true
	}
}

// VisibleError returns the error for a field only once it was touched.
func (f *FormState) VisibleError(field string) string {
	if !f.Touched[field] {
		return ""
	}
	return f.Errors[field]
}

// ShippingForm is the submitted shipping step. UPIID participates in
// validation only when the direct UPI payment method is selected.
type ShippingForm struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	UPIID      string `json:"upiId,omitempty"`
}

// ValidateAll validates every relevant field and returns the error map.
// An empty map means the form is submittable.
func ValidateAll(form ShippingForm, requireUPI bool) map[string]string {
	values := map[string]string{
		FieldName:       form.Name,
		FieldPhone:      form.Phone,
		FieldAddress:    form.Address,
		FieldCity:       form.City,
		FieldState:      form.State,
		FieldPostalCode: form.PostalCode,
	}
	if requireUPI {
		values[FieldUPIID] = form.UPIID
	}

	errors := make(map[string]string)
	for field, value := range values {
		if msg := ValidateField(field, value); msg != "" {
			errors[field] = msg
		}
	}
	return errors
}
