package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"insurance_desk/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Customer contact details",
			input:  []byte(`{"reason":"call me","customer_profile":{"customer_name":"Asha Rao","phone":"+919800000000","email":"asha@example.com"}}`),
			output: []byte(`{"reason":"call me","customer_profile":{"customer_name":"[MASKED]","phone":"[MASKED]","email":"[MASKED]"}}`),
		},
		{
			name:   "Identity documents",
			input:  []byte(`{"pan": "ABCDE1234F", "aadhaar": "1234 5678 9012", "age_band": "25-35"}`),
			output: []byte(`{"pan": "[MASKED]", "aadhaar": "[MASKED]", "age_band": "25-35"}`),
		},
		{
			name:   "Policy name is kept",
			input:  []byte(`{"policy_id":"protection_1","name":"Click 2 Protect Supreme"}`),
			output: []byte(`{"policy_id":"protection_1","name":"Click 2 Protect Supreme"}`),
		},
		{
			name:   "Gemini API key header",
			input:  []byte("POST /v1beta/models HTTP/1.1\r\nX-Goog-Api-Key: AIzaSecret\r\n\r\n"),
			output: []byte("POST /v1beta/models HTTP/1.1\r\nX-Goog-Api-Key: [MASKED]\r\n\r\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
