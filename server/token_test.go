package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_bearerToken(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		expect    string
		expectErr bool
	}{
		{
			name:   "normal bearer header",
			header: "Bearer sometoken",
			expect: "sometoken",
		},
		{
			name:   "scheme is case-insensitive",
			header: "BEARER sometoken",
			expect: "sometoken",
		},
		{
			name:   "surrounding whitespace is ignored",
			header: "  Bearer   sometoken  ",
			expect: "sometoken",
		},
		{
			name:      "missing header",
			header:    "",
			expectErr: true,
		},
		{
			name:      "no scheme",
			header:    "sometoken",
			expectErr: true,
		},
		{
			name:      "wrong scheme",
			header:    "Basic dXNlcjpwYXNz",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			actual, err := bearerToken(req)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}
