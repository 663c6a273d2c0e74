package validator

import (
	"errors"
	"testing"

	"computer-store-ws/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sample struct {
	ID     uuid.UUID       `validate:"uuid_required"`
	Markup decimal.Decimal `validate:"gte=0,lte=1"`
	Start  string          `validate:"clock"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		in     sample
		fields []string
	}{
		{
			name: "valid",
			in:   sample{ID: uuid.New(), Markup: decimal.RequireFromString("0.15"), Start: "09:30"},
		},
		{
			name:   "nil uuid",
			in:     sample{Markup: decimal.Zero, Start: "09:30"},
			fields: []string{"sample.ID"},
		},
		{
			name:   "markup above one",
			in:     sample{ID: uuid.New(), Markup: decimal.RequireFromString("1.5"), Start: "09:30"},
			fields: []string{"sample.Markup"},
		},
		{
			name:   "negative markup and bad clock",
			in:     sample{ID: uuid.New(), Markup: decimal.RequireFromString("-0.1"), Start: "9:30"},
			fields: []string{"sample.Markup", "sample.Start"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var ve *apperror.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !errors.Is(err, apperror.ErrValidation) {
				t.Error("expected errors.Is(err, ErrValidation)")
			}
			if len(ve.Fields) != len(tt.fields) {
				t.Fatalf("got fields %+v, want %v", ve.Fields, tt.fields)
			}
			for i, f := range tt.fields {
				if ve.Fields[i].Field != f {
					t.Errorf("field %d: got %s, want %s", i, ve.Fields[i].Field, f)
				}
			}
		})
	}
}
