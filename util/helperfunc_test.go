package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	list := []string{"a", "b", "c"}
	if !Contains("b", list) {
		t.Fatalf("expected Contains to return true for existing item")
	}
	if Contains("x", list) {
		t.Fatalf("expected Contains to return false for missing item")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trim leading whitespace",
			input:    "  John Doe",
			expected: "John Doe",
		},
		{
			name:     "trim trailing whitespace",
			input:    "John Doe  ",
			expected: "John Doe",
		},
		{
			name:     "trim leading and trailing whitespace",
			input:    "  John Doe  ",
			expected: "John Doe",
		},
		{
			name:     "collapse multiple internal spaces",
			input:    "John  Doe",
			expected: "John Doe",
		},
		{
			name:     "collapse many internal spaces",
			input:    "John     Doe",
			expected: "John Doe",
		},
		{
			name:     "trim and collapse combined",
			input:    "  John    Doe  ",
			expected: "John Doe",
		},
		{
			name:     "already normalized",
			input:    "John Doe",
			expected: "John Doe",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "tabs and newlines",
			input:    "John\t\nDoe",
			expected: "John Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeName(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		call   func(*gin.Context, APIErrorParams)
		status int
	}{
		{"not found", CallErrorNotFound, http.StatusNotFound},
		{"user error", CallUserError, http.StatusBadRequest},
		{"conflict", CallConflict, http.StatusConflict},
		{"forbidden", CallForbidden, http.StatusForbidden},
		{"unprocessable", CallUnprocessable, http.StatusUnprocessableEntity},
		{"too many requests", CallTooManyRequests, http.StatusTooManyRequests},
		{"server error", CallServerError, http.StatusInternalServerError},
		{"unauthorized", CallUserNotAuthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.call(c, APIErrorParams{Msg: "nope", Err: errors.New("boom")})

			assert.Equal(t, tt.status, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, "boom", resp.Error)
			assert.Equal(t, "nope", resp.Msg)
		})
	}
}

func TestErrorResponse_NilError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	CallUserError(c, APIErrorParams{Msg: "bad input"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuccessResponses(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	CallSuccessCreated(c, APISuccessParams{Msg: "created", Data: map[string]int{"id": 1}})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"error":"","msg":"created","data":{"id":1}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	CallSuccessOK(c, APISuccessParams{Msg: "ok", Data: []string{"a"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"error":"","msg":"ok","data":["a"]}`, w.Body.String())
}
