package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateField_Name(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "Full name is required"},
		{"too short", "A", "Name must be at least 2 characters"},
		{"digits", "R2D2", "Name should only contain letters"},
		{"valid", "Priya Sharma", ""},
		{"whitespace only", "   ", "Full name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(FieldName, tt.value))
		})
	}
}

func TestValidateField_Phone(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "Phone number is required"},
		{"too short", "98765", "Enter a valid 10-digit Indian mobile number"},
		{"bad leading digit", "1234567890", "Enter a valid 10-digit Indian mobile number"},
		{"valid", "9876543210", ""},
		{"trimmed", " 9876543210 ", ""},
		{"separators rejected", "98765-43210", "Enter a valid 10-digit Indian mobile number"},
		{"junk prefix rejected", "abc9876543210", "Enter a valid 10-digit Indian mobile number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(FieldPhone, tt.value))
		})
	}
}

func TestValidateField_Address(t *testing.T) {
	assert.Equal(t, "Address is required", ValidateField(FieldAddress, ""))
	assert.Equal(t, "Please enter a complete address", ValidateField(FieldAddress, "short"))
	assert.Equal(t, "", ValidateField(FieldAddress, "221B Baker Street, Indiranagar"))
}

func TestValidateField_City(t *testing.T) {
	assert.Equal(t, "City is required", ValidateField(FieldCity, ""))
	assert.Equal(t, "Enter a valid city name", ValidateField(FieldCity, "Delhi-6"))
	assert.Equal(t, "", ValidateField(FieldCity, "New Delhi"))
}

func TestValidateField_PostalCode(t *testing.T) {
	assert.Equal(t, "Postal code is required", ValidateField(FieldPostalCode, ""))
	assert.Equal(t, "Enter a valid 6-digit PIN code", ValidateField(FieldPostalCode, "1234"))
	assert.Equal(t, "Enter a valid 6-digit PIN code", ValidateField(FieldPostalCode, "12345a"))
	assert.Equal(t, "", ValidateField(FieldPostalCode, "560038"))
}

func TestValidateField_UPI(t *testing.T) {
	assert.Equal(t, "UPI ID is required", ValidateField(FieldUPIID, ""))
	assert.Equal(t, "Enter a valid UPI ID (e.g., name@upi)", ValidateField(FieldUPIID, "no-at-sign"))
	assert.Equal(t, "", ValidateField(FieldUPIID, "priya.sharma@okhdfc"))
}

func TestValidateAll_UPIOnlyWhenRequired(t *testing.T) {
	form := ShippingForm{
		Name:       "Priya Sharma",
		Phone:      "9876543210",
		Address:    "221B Baker Street, Indiranagar",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560038",
	}

	assert.Empty(t, ValidateAll(form, false))

	errs := ValidateAll(form, true)
	assert.Equal(t, "UPI ID is required", errs[FieldUPIID])
}

func TestValidateAll_CollectsEveryError(t *testing.T) {
	errs := ValidateAll(ShippingForm{}, false)

	assert.Len(t, errs, 6)
	assert.Equal(t, "Full name is required", errs[FieldName])
	assert.Equal(t, "State is required", errs[FieldState])
}

func TestFormState_ErrorsOnlyAfterTouch(t *testing.T) {
	state := NewFormState()
	state.Errors[FieldPhone] = "Phone number is required"

	assert.Equal(t, "", state.VisibleError(FieldPhone))

	state.Touch(FieldPhone)
	assert.Equal(t, "Phone number is required", state.VisibleError(FieldPhone))
}

func TestFormState_TouchAll(t *testing.T) {
	state := NewFormState()
	state.TouchAll([]string{FieldName, FieldPhone, FieldAddress})

	assert.True(t, state.Touched[FieldName])
	assert.True(t, state.Touched[FieldAddress])
}

func TestIndianStates_Complete(t *testing.T) {
	assert.Len(t, IndianStates, 36)
	assert.Contains(t, IndianStates, "Karnataka")
	assert.Contains(t, IndianStates, "Puducherry")
}
