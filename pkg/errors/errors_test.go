package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation_Error(t *testing.T) {
	err := &ErrValidation{
		Missing: []string{"المقاس"},
		Invalid: map[string]string{"الطول": "must be a number", "العرض": "must be a number", "البريد": "invalid email"},
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t,
			"validation failed: missing: المقاس; البريد: invalid email; الطول: must be a number; العرض: must be a number",
			err.Error())
	}
	assert.Equal(t, "validation failed", (&ErrValidation{}).Error())
}
