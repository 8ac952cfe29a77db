package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Move string `json:"move" validate:"required,max=8"`
	Ply  int    `json:"ply" validate:"min=0"`
}

func TestDecodeJSONRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"move":"e4","ply":1}`))
	var got sample
	require.NoError(t, DecodeJSONRequest(r, &got))
	assert.Equal(t, sample{Move: "e4", Ply: 1}, got)
}

func TestDecodeJSONRequest_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"move":`, "invalid JSON"},
		{"unknown field", `{"move":"e4","colour":"w"}`, "invalid JSON"},
		{"missing move", `{"ply":3}`, "validation failed"},
		{"negative ply", `{"move":"e4","ply":-1}`, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var got sample
			err := DecodeJSONRequest(r, &got)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
