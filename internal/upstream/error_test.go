package upstream

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Class
	}{
		{"validation_422", &APIError{Status: 422, Message: "invalid"}, ClassDefinite},
		{"bad_request_400", &APIError{Status: 400}, ClassDefinite},
		{"not_found_404", &APIError{Status: 404}, ClassDefinite},
		{"plain_401", &APIError{Status: 401}, ClassAmbiguous},
		{"401_during_reauth", &APIError{Status: 401, AuthRedirect: true}, ClassAuthRedirect},
		{"server_error_500", &APIError{Status: 500}, ClassAmbiguous},
		{"bad_gateway_502", &APIError{Status: 502}, ClassAmbiguous},
		{"no_response", &APIError{Status: 0, Message: "dial tcp: refused"}, ClassAmbiguous},
		{"plain_error", errors.New("context deadline exceeded"), ClassAmbiguous},
		{"wrapped_api_error", fmt.Errorf("upsert: %w", &APIError{Status: 409}), ClassDefinite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestNotice(t *testing.T) {
	assert.Equal(t, "forced_columns invalid",
		Notice(&APIError{Status: 422, Message: "forced_columns invalid"}))
	assert.Equal(t, genericFailureMessage, Notice(&APIError{Status: 422, Message: "  "}))
	assert.Equal(t, genericFailureMessage, Notice(errors.New("boom")))
}

func TestExtractMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message_field", `{"message":"Role not found"}`, "Role not found"},
		{"error_string_field", `{"error":"invalid order"}`, "invalid order"},
		{"detail_field", `{"detail":"columns must be known"}`, "columns must be known"},
		{"message_beats_error", `{"message":"primary","error":"secondary"}`, "primary"},
		{"error_beats_detail", `{"error":"primary","detail":"secondary"}`, "primary"},
		{"raw_text_body", "upstream exploded", "upstream exploded"},
		{"empty_body", "", genericFailureMessage},
		{"whitespace_body", "  \n ", genericFailureMessage},
		{"empty_object", `{}`, genericFailureMessage},
		{"error_object_skipped", `{"error":{"code":9},"detail":"fallback"}`, "fallback"},
		{
			"details_map_flattened",
			`{"details":{"forced_columns":"unknown column","default_order":"bad value"}}`,
			"default_order: bad value; forced_columns: unknown column",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractMessage([]byte(tc.body)))
		})
	}
}
