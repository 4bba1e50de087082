package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/osteo-vault/models"
	"github.com/stretchr/testify/assert"
)

func TestRecordValidator(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()
	ok := RecordInput{EntityType: models.Patients, ID: "p1", Payload: models.Record(`{"name":"A"}`)}

	tests := []struct {
		name    string
		in      any
		fields  []string
		wantErr error
	}{
		{name: "valid", in: ok},
		{name: "valid pointer", in: &ok},
		{name: "bad entity type", in: RecordInput{EntityType: "Patients!", ID: "p1", Payload: ok.Payload}, wantErr: ErrInvalidEntityType},
		{name: "empty id", in: RecordInput{EntityType: models.Patients, Payload: ok.Payload}, wantErr: ErrInvalidID},
		{name: "long id", in: RecordInput{EntityType: models.Patients, ID: strings.Repeat("x", 129), Payload: ok.Payload}, wantErr: ErrInvalidID},
		{name: "non json payload", in: RecordInput{EntityType: models.Patients, ID: "p1", Payload: models.Record("nope")}, wantErr: ErrInvalidRecord},
		{name: "empty payload", in: RecordInput{EntityType: models.Patients, ID: "p1"}, wantErr: ErrInvalidRecord},
		{name: "address only skips payload", in: RecordInput{EntityType: models.Patients, ID: "p1"}, fields: []string{FieldEntityType, FieldID}},
		{name: "invoice amount", in: RecordInput{EntityType: models.Invoices, ID: "i1", Payload: models.Record(`{"amount":"45.00"}`)}},
		{name: "invoice without amount", in: RecordInput{EntityType: models.Invoices, ID: "i1", Payload: models.Record(`{}`)}},
		{name: "negative invoice", in: RecordInput{EntityType: models.Invoices, ID: "i1", Payload: models.Record(`{"amount":"-5"}`)}, wantErr: ErrNegativeAmount},
		{name: "invoice amount not a number", in: RecordInput{EntityType: models.Invoices, ID: "i1", Payload: models.Record(`{"amount":"abc"}`)}, wantErr: ErrInvalidRecord},
		{name: "unknown field", in: ok, fields: []string{"color"}, wantErr: ErrUnknownField},
		{name: "unsupported type", in: "p1", wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.in, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
