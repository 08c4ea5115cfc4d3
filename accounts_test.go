package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/ledger"
)

// TestGetAccounts tests the GET /api/accounts endpoint
func TestGetAccounts(t *testing.T) {
	// Clean data before test
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	t.Run("should return empty list when no accounts exist", func(t *testing.T) {
		resp := makeRequest("GET", "/api/accounts", nil)

		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, "[]", resp.Body.String())
	})

	t.Run("should return accounts with balances", func(t *testing.T) {
		_, err := createTestAccount("ING", 125050)
		require.NoError(t, err)
		_, err = createTestAccount("CASH", 2000)
		require.NoError(t, err)

		resp := makeRequest("GET", "/api/accounts", nil)
		assertStatusCode(t, http.StatusOK, resp.Code)

		var accounts []Account
		require.NoError(t, parseJSONResponse(resp, &accounts))
		require.Len(t, accounts, 2)

		assert.Equal(t, "CASH", accounts[0].AccountName)
		assert.Equal(t, ledger.Money(2000), accounts[0].AccountAmount)
		assert.Equal(t, "ING", accounts[1].AccountName)
		assert.Equal(t, ledger.Money(125050), accounts[1].AccountAmount)
		assert.Contains(t, resp.Body.String(), `"accountAmount":1250.50`)
	})
}

// TestGetAccount tests the GET /api/accounts/:id endpoint
func TestGetAccount(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	account, err := createTestAccount("CASH", 4200)
	require.NoError(t, err)

	t.Run("should return the account", func(t *testing.T) {
		resp := makeRequest("GET", "/api/accounts/"+account.ID, nil)
		assertStatusCode(t, http.StatusOK, resp.Code)

		var got Account
		require.NoError(t, parseJSONResponse(resp, &got))
		assert.Equal(t, account.ID, got.ID)
		assert.Equal(t, "CASH", got.AccountName)
		assert.Equal(t, ledger.Money(4200), got.AccountAmount)
		assert.Equal(t, int64(1), got.Version)
	})

	t.Run("should return 404 for unknown id", func(t *testing.T) {
		resp := makeRequest("GET", "/api/accounts/does-not-exist", nil)
		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}

// TestCreateAccount tests the POST /api/accounts endpoint
func TestCreateAccount(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	t.Run("should create account with opening balance", func(t *testing.T) {
		resp := makeRequest("POST", "/api/accounts", jsonBody(t, map[string]interface{}{
			"accountName":   "  ING  ",
			"accountAmount": 100.5,
		}))

		assertStatusCode(t, http.StatusCreated, resp.Code)

		var account Account
		require.NoError(t, parseJSONResponse(resp, &account))
		assert.NotEmpty(t, account.ID)
		assert.Equal(t, "ING", account.AccountName)
		assert.Equal(t, ledger.Money(10050), account.AccountAmount)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		resp := makeRequest("POST", "/api/accounts", jsonBody(t, map[string]interface{}{
			"accountName": "   ",
		}))
		assertStatusCode(t, http.StatusBadRequest, resp.Code)

		var errorResp map[string]interface{}
		assertNoError(t, parseJSONResponse(resp, &errorResp))
		assert.Equal(t, "name cannot be empty", errorResp["error"])
	})

	t.Run("should fail with malformed amount", func(t *testing.T) {
		resp := makeRequest("POST", "/api/accounts", jsonBody(t, map[string]interface{}{
			"accountName":   "CASH",
			"accountAmount": "ten euros",
		}))
		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})
}

// TestUpdateAccount tests the PUT /api/accounts/:id endpoint
func TestUpdateAccount(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	account, err := createTestAccount("CASH", 1000)
	require.NoError(t, err)

	t.Run("should replace name and balance", func(t *testing.T) {
		resp := makeRequest("PUT", "/api/accounts/"+account.ID, jsonBody(t, map[string]interface{}{
			"accountName":   "WALLET",
			"accountAmount": 15.25,
			"version":       account.Version,
		}))
		assertStatusCode(t, http.StatusNoContent, resp.Code)

		stored, err := testStore.GetAccount(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, "WALLET", stored.Name)
		assert.Equal(t, ledger.Money(1525), stored.Balance)
		assert.Equal(t, account.Version+1, stored.Version)
	})

	t.Run("should return 409 for a stale version", func(t *testing.T) {
		resp := makeRequest("PUT", "/api/accounts/"+account.ID, jsonBody(t, map[string]interface{}{
			"accountName":   "CASH",
			"accountAmount": 1,
			"version":       account.Version,
		}))
		assertStatusCode(t, http.StatusConflict, resp.Code)

		var errorResp map[string]interface{}
		require.NoError(t, parseJSONResponse(resp, &errorResp))
		assert.Contains(t, errorResp["error"], "retry")
	})

	t.Run("should overwrite without a version", func(t *testing.T) {
		resp := makeRequest("PUT", "/api/accounts/"+account.ID, jsonBody(t, map[string]interface{}{
			"id":            account.ID,
			"accountName":   "CASH",
			"accountAmount": 0,
		}))
		assertStatusCode(t, http.StatusNoContent, resp.Code)
	})

	t.Run("should trim the name before storing it", func(t *testing.T) {
		resp := makeRequest("PUT", "/api/accounts/"+account.ID, jsonBody(t, map[string]interface{}{
			"accountName":   "  CASH  ",
			"accountAmount": 0,
		}))
		assertStatusCode(t, http.StatusNoContent, resp.Code)

		stored, err := testStore.GetAccount(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, "CASH", stored.Name)

		// Recording resolves the account by its exact name.
		_, err = recordTestTransaction("CASH", ledger.NewDate(2024, 6, 5), 100, ledger.Credit)
		require.NoError(t, err)
	})

	t.Run("should fail when body id differs from path id", func(t *testing.T) {
		before, err := testStore.GetAccount(context.Background(), account.ID)
		require.NoError(t, err)

		resp := makeRequest("PUT", "/api/accounts/"+account.ID, jsonBody(t, map[string]interface{}{
			"id":            "another-id",
			"accountName":   "HIJACKED",
			"accountAmount": 999,
		}))
		assertStatusCode(t, http.StatusBadRequest, resp.Code)

		after, err := testStore.GetAccount(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.Balance, after.Balance)
		assert.Equal(t, before.Version, after.Version)
	})

	t.Run("should return 404 for unknown account", func(t *testing.T) {
		resp := makeRequest("PUT", "/api/accounts/missing", jsonBody(t, map[string]interface{}{
			"accountName": "CASH",
		}))
		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}

// TestDeleteAccount tests the DELETE /api/accounts/:id endpoint
func TestDeleteAccount(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	account, err := createTestAccount("CASH", 0)
	require.NoError(t, err)

	resp := makeRequest("DELETE", "/api/accounts/"+account.ID, nil)
	assertStatusCode(t, http.StatusNoContent, resp.Code)

	resp = makeRequest("GET", "/api/accounts/"+account.ID, nil)
	assertStatusCode(t, http.StatusNotFound, resp.Code)

	resp = makeRequest("DELETE", "/api/accounts/"+account.ID, nil)
	assertStatusCode(t, http.StatusNotFound, resp.Code)
}

// TestGetTotalNetworth tests the GET /api/accounts/totalNetworth endpoint
func TestGetTotalNetworth(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	t.Run("should be zero without accounts", func(t *testing.T) {
		resp := makeRequest("GET", "/api/accounts/totalNetworth", nil)
		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.Equal(t, "0.00", resp.Body.String())
	})

	t.Run("should sum every balance", func(t *testing.T) {
		for name, balance := range map[string]ledger.Money{"CASH": 10050, "ING": 250000, "CREDIT CARD": -12025} {
			_, err := createTestAccount(name, balance)
			require.NoError(t, err, "create %s", name)
		}

		resp := makeRequest("GET", "/api/accounts/totalNetworth", nil)
		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.Equal(t, "2480.25", resp.Body.String())
	})
}
