// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/perfume-store/internal/models"
)

type testItem struct {
	Size     int `json:"size" validate:"product_size"`
	Quantity int `json:"quantity" validate:"min=1,max=10"`
}

type testOrder struct {
	Phone string     `json:"phone" validate:"required,e164"`
	Items []testItem `json:"items" validate:"dive"`
}

func TestGetValidationErrorsUsesJSONPaths(t *testing.T) {
	err := ValidateStruct(&testOrder{
		Items: []testItem{
			{Size: 30, Quantity: 1},
			{Size: 20, Quantity: 11},
		},
	})
	require.Error(t, err)

	fields := GetValidationErrors(err)
	assert.Equal(t, "This field is required.", fields["phone"])
	assert.Contains(t, fields["items[1].size"], "15, 30, 50")
	assert.Equal(t, "Ensure this value is less than or equal to 10.", fields["items[1].quantity"])
	assert.NotContains(t, fields, "items[0].size")
}

func TestGetValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, GetValidationErrors(assert.AnError))
}

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"short1", false},
		{"1234567890123", false},
		{"password123", false},
		{"Perfume!2024", true},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.ok, CheckPasswordPolicy(tt.password) == "")
		})
	}
}

func TestCheckPasswordSimilarity(t *testing.T) {
	assert.NotEmpty(t, CheckPasswordSimilarity("johnsmith99", "johnsmith@example.com"))
	assert.NotEmpty(t, CheckPasswordSimilarity("AidaRules2024", "aida", "Karimova"))
	assert.Empty(t, CheckPasswordSimilarity("Perfume!2024", "john@example.com", "John", "Smith"))
	// attributes shorter than three characters are ignored
	assert.Empty(t, CheckPasswordSimilarity("Perfume!2024", "Al"))
}

func TestCustomTags(t *testing.T) {
	assert.NoError(t, ValidateVar("M", "gender"))
	assert.Error(t, ValidateVar("X", "gender"))
	assert.NoError(t, ValidateVar("AW", "season"))
	assert.Error(t, ValidateVar("all", "season"))
	assert.NoError(t, ValidateVar(50, "product_size"))
	assert.Error(t, ValidateVar(100, "product_size"))
}

func TestProductSizeTagFollowsModelSizes(t *testing.T) {
	for _, size := range models.ProductSizes {
		assert.NoError(t, ValidateVar(size, "product_size"), size)
	}
	for _, size := range []int{0, 10, 20, 100} {
		assert.False(t, models.IsValidSize(size))
		assert.Error(t, ValidateVar(size, "product_size"), size)
	}
}
