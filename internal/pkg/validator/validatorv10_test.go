package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ReceiverEmail string `json:"receiver_email" validate:"required,mailbox"`
	Subject       string `json:"subject" validate:"required"`
	BodyText      string `json:"body_text" validate:"required"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	tests := []struct {
		name        string
		in          payload
		wantMissing []string
		wantTags    []string
	}{
		{
			name: "valid",
			in:   payload{ReceiverEmail: "user@example.com", Subject: "Hi", BodyText: "Hello"},
		},
		{
			name:        "all missing keeps field order",
			in:          payload{},
			wantMissing: []string{"receiver_email", "subject", "body_text"},
			wantTags:    []string{"required", "required", "required"},
		},
		{
			name:        "only body missing",
			in:          payload{ReceiverEmail: "user@example.com", Subject: "Hi"},
			wantMissing: []string{"body_text"},
			wantTags:    []string{"required"},
		},
		{
			name:     "address without at sign",
			in:       payload{ReceiverEmail: "not-an-email", Subject: "Hi", BodyText: "Hello"},
			wantTags: []string{"mailbox"},
		},
		{
			name:     "address without dot",
			in:       payload{ReceiverEmail: "user@localhost", Subject: "Hi", BodyText: "Hello"},
			wantTags: []string{"mailbox"},
		},
		{
			name:        "malformed address and missing subject",
			in:          payload{ReceiverEmail: "nope", BodyText: "Hello"},
			wantMissing: []string{"subject"},
			wantTags:    []string{"mailbox", "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if len(tt.wantTags) == 0 {
				require.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr)

			tags := make([]string, 0, len(verr))
			for _, violation := range verr {
				tags = append(tags, violation.Tag)
				assert.NotEmpty(t, violation.Message)
			}
			assert.Equal(t, tt.wantTags, tags)
			assert.Equal(t, tt.wantMissing, verr.FieldsWithTag("required"))
		})
	}
}

func TestV10ValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error", V10ValidationError{}.Error())

	verr := V10ValidationError{{Field: "subject", Tag: "required", Message: "Subject is a required field"}}
	assert.JSONEq(t, `{"subject":"Subject is a required field"}`, verr.Error())
	assert.Equal(t, map[string]string{"subject": "Subject is a required field"}, verr.Values())
}
