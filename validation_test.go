package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCreateCategoryValidation tests proper validation for createCategory endpoint
func TestCreateCategoryValidation(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	t.Run("should fail with empty name", func(t *testing.T) {
		resp := makeRequest("POST", "/api/categories", jsonBody(t, map[string]interface{}{"name": ""}))

		// Should return 400 Bad Request for empty name
		assertStatusCode(t, http.StatusBadRequest, resp.Code)

		var errorResp map[string]interface{}
		assertNoError(t, parseJSONResponse(resp, &errorResp))

		if errorResp["error"] == nil {
			t.Error("Expected error message in response")
		}
	})

	t.Run("should fail with whitespace-only name", func(t *testing.T) {
		resp := makeRequest("POST", "/api/categories", jsonBody(t, map[string]interface{}{"name": "   "}))
		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("should fail with missing name", func(t *testing.T) {
		resp := makeRequest("POST", "/api/categories", jsonBody(t, map[string]interface{}{}))
		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})
}

// TestCreateTransactionValidation tests proper validation for createTransaction endpoint
func TestCreateTransactionValidation(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	_, err := createTestAccount("CASH", 0)
	assertNoError(t, err)

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{
			name:  "missing account",
			body:  map[string]interface{}{"date": "2024-06-10", "amount": 10, "positive": 0},
			field: "account",
		},
		{
			name:  "negative amount",
			body:  map[string]interface{}{"account": "CASH", "date": "2024-06-10", "amount": -5, "positive": 0},
			field: "amount",
		},
		{
			name:  "unknown direction",
			body:  map[string]interface{}{"account": "CASH", "date": "2024-06-10", "amount": 5, "positive": 2},
			field: "positive",
		},
		{
			name:  "missing date",
			body:  map[string]interface{}{"account": "CASH", "amount": 5, "positive": 1},
			field: "date",
		},
	}

	for _, tt := range tests {
		t.Run("should fail with "+tt.name, func(t *testing.T) {
			resp := makeRequest("POST", "/api/transactions", jsonBody(t, tt.body))
			assertStatusCode(t, http.StatusBadRequest, resp.Code)

			var errorResp map[string]interface{}
			assertNoError(t, parseJSONResponse(resp, &errorResp))
			assert.Contains(t, errorResp["error"], tt.field)
		})
	}

	t.Run("should fail with unparseable date", func(t *testing.T) {
		resp := makeRequest("POST", "/api/transactions", jsonBody(t, map[string]interface{}{
			"account": "CASH", "date": "15/06/2024", "amount": 5, "positive": 1,
		}))
		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("should not move the balance on rejection", func(t *testing.T) {
		resp := makeRequest("GET", "/api/accounts/totalNetworth", nil)
		assert.Equal(t, "0.00", resp.Body.String())
	})
}
