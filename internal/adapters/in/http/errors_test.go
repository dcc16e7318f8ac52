package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "precondition violation keeps its reason",
			err:         errs.NewPreconditionViolationError(order.ReasonNotAssigning),
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: order.ReasonNotAssigning,
		},
		{
			name:        "wrapped precondition violation",
			err:         fmt.Errorf("take: %w", errs.NewPreconditionViolationError(order.ReasonCancelledAlready)),
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: order.ReasonCancelledAlready,
		},
		{
			name:        "not found",
			err:         errs.NewObjectNotFoundError("order", "11"),
			wantCode:    http.StatusNotFound,
			wantMessage: MessageOrderNotFound,
		},
		{
			name:        "already exists",
			err:         errs.NewObjectAlreadyExistsError("order", "11"),
			wantCode:    http.StatusConflict,
			wantMessage: MessageOrderAlreadyExists,
		},
		{
			name:        "version conflict",
			err:         errs.NewVersionIsInvalidError("order"),
			wantCode:    http.StatusConflict,
			wantMessage: MessageOrderVersionConflict,
		},
		{
			name:        "unexpected",
			err:         errors.New("connection reset"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: MessageInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := statusFor(tt.err)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestStatusFor_InvalidValues(t *testing.T) {
	for _, err := range []error{
		errs.NewValueIsRequiredError("id"),
		errs.NewValueIsInvalidError("stops"),
		errs.NewValueIsOutOfRangeError("lat", 91, -90, 90),
		errors.Join(errs.NewValueIsRequiredError("id"), errs.NewValueIsInvalidError("stops")),
	} {
		code, message := statusFor(err)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, message, "Invalid order data: ")
	}
}
