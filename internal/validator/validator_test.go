package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type statusPayload struct {
	Status string `binding:"required,expense_status"`
}

type frequencyPayload struct {
	Frequency string `binding:"omitempty,frequency"`
}

func TestRegister(t *testing.T) {
	Register()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("expected go-playground validator engine")
	}

	statuses := map[string]bool{"pending": true, "paid": true, "cancelled": true, "refunded": false, "PAID": false}
	for status, valid := range statuses {
		err := binding.Validator.ValidateStruct(statusPayload{Status: status})
		if valid && err != nil {
			t.Errorf("expected status %q to be valid, got %v", status, err)
		}
		if !valid && err == nil {
			t.Errorf("expected status %q to be rejected", status)
		}
	}

	frequencies := map[string]bool{"daily": true, "weekly": true, "monthly": true, "yearly": true, "": true, "hourly": false}
	for freq, valid := range frequencies {
		err := v.Struct(frequencyPayload{Frequency: freq})
		if valid && err != nil {
			t.Errorf("expected frequency %q to be valid, got %v", freq, err)
		}
		if !valid && err == nil {
			t.Errorf("expected frequency %q to be rejected", freq)
		}
	}
}
