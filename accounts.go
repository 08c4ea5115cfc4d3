package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"financetracker/ledger"
)

// @Summary Get all accounts
// @Description Retrieve every account with its running balance
// @Tags accounts
// @Produce json
// @Success 200 {array} Account "List of accounts"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts [get]
func getAccounts(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	dbAccounts, err := service.Store().ListAccounts(ctx)
	if err != nil {
		respondWithError(c, err, "list accounts")
		return
	}

	accounts := make([]Account, 0, len(dbAccounts))
	for _, a := range dbAccounts {
		accounts = append(accounts, newAccount(a))
	}
	c.JSON(http.StatusOK, accounts)
}

// @Summary Get total net worth
// @Description Sum of all account balances
// @Tags accounts
// @Produce json
// @Success 200 {number} number "Total net worth"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts/totalNetworth [get]
func getTotalNetworth(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	total, err := service.TotalNetWorth(ctx)
	if err != nil {
		respondWithError(c, err, "total net worth")
		return
	}
	c.JSON(http.StatusOK, total)
}

// @Summary Get account
// @Description Retrieve a single account by id
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} Account "Account"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts/{id} [get]
func getAccount(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	account, err := service.Store().GetAccount(ctx, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get account")
		return
	}
	c.JSON(http.StatusOK, newAccount(account))
}

// @Summary Create account
// @Description Create a new account with an opening balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body Account true "Account data (accountName required)"
// @Success 201 {object} Account "Created account"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts [post]
func createAccount(c *gin.Context) {
	var account Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validateName(account.AccountName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	created, err := service.Store().CreateAccount(ctx, ledger.Account{
		Name:    strings.TrimSpace(account.AccountName),
		Balance: account.AccountAmount,
	})
	if err != nil {
		respondWithError(c, err, "create account")
		return
	}

	requestLog(c).Info().Str("account_id", created.ID).Str("account", created.Name).Msg("Account created")
	c.JSON(http.StatusCreated, newAccount(created))
}

// @Summary Update account
// @Description Replace an account. Send the version read earlier to reject concurrent edits.
// @Tags accounts
// @Accept json
// @Param id path string true "Account ID"
// @Param account body Account true "Full account"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 409 {object} map[string]interface{} "Account was modified concurrently"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts/{id} [put]
func updateAccount(c *gin.Context) {
	var account Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validatePathID(c.Param("id"), &account.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateName(account.AccountName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	account.AccountName = strings.TrimSpace(account.AccountName)

	ctx, cancel := storeContext(c)
	defer cancel()

	if _, err := service.Store().UpdateAccount(ctx, account.toLedger()); err != nil {
		respondWithError(c, err, "update account")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete account
// @Description Delete an account. Transactions keep their account label.
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts/{id} [delete]
func deleteAccount(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	if err := service.Store().DeleteAccount(ctx, c.Param("id")); err != nil {
		respondWithError(c, err, "delete account")
		return
	}
	c.Status(http.StatusNoContent)
}
