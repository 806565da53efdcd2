package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testForm struct {
	Username string  `form:"username" validate:"notblank,max=64"`
	Price    float64 `json:"price" validate:"gte=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.Empty(t, ValidateStruct(testForm{Username: "admin", Price: 10}))
}

func TestValidateStruct_Errors(t *testing.T) {
	details := ValidateStruct(testForm{Username: "   ", Price: -1})

	fields := map[string]string{}
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "username is required", fields["username"])
	assert.Equal(t, "price must be greater than or equal to 0", fields["price"])
}
