package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"financetracker/ledger"
)

// @Summary Get all transactions
// @Description Retrieve every transaction, newest first
// @Tags transactions
// @Produce json
// @Success 200 {array} Transaction "List of transactions"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions [get]
func getTransactions(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	dbTransactions, err := service.Store().ListTransactions(ctx)
	if err != nil {
		respondWithError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, newTransactions(dbTransactions))
}

// @Summary Get transaction
// @Description Retrieve a single transaction by id
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Transaction "Transaction"
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/{id} [get]
func getTransaction(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	t, err := service.Store().GetTransaction(ctx, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get transaction")
		return
	}
	c.JSON(http.StatusOK, newTransaction(t))
}

// @Summary Record transaction
// @Description Store a transaction and apply it to the account balance: credits (positive=1) add, debits (positive=0) subtract
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body Transaction true "Transaction (account or accountId, date and amount required)"
// @Success 201 {object} Transaction "Recorded transaction"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions [post]
func createTransaction(c *gin.Context) {
	var transaction Transaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	recorded, err := service.RecordTransaction(ctx, transaction.toLedger())
	if err != nil {
		respondWithError(c, err, "record transaction")
		return
	}
	c.JSON(http.StatusCreated, newTransaction(recorded))
}

// @Summary Update transaction
// @Description Replace a transaction. The account balance is not recalculated.
// @Tags transactions
// @Accept json
// @Param id path string true "Transaction ID"
// @Param transaction body Transaction true "Full transaction"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Transaction or account not found"
// @Failure 409 {object} map[string]interface{} "Transaction was modified concurrently"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/{id} [put]
func updateTransaction(c *gin.Context) {
	var transaction Transaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validatePathID(c.Param("id"), &transaction.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	if _, err := service.UpdateTransaction(ctx, transaction.toLedger()); err != nil {
		respondWithError(c, err, "update transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete transaction
// @Description Delete a transaction. The account balance is not recalculated.
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/{id} [delete]
func deleteTransaction(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	if err := service.Store().DeleteTransaction(ctx, c.Param("id")); err != nil {
		respondWithError(c, err, "delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// Aggregates

// @Summary Spend this month
// @Description Sum of debit amounts dated in the current calendar month
// @Tags transactions
// @Produce json
// @Success 200 {number} number "Total spend"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/totalSpendMonth [get]
func getTotalSpendMonth(c *gin.Context) {
	respondWithTotal(c, "total spend month", func(ctx context.Context) (ledger.Money, error) {
		return service.TotalSpend(ctx, ledger.PeriodMonth)
	})
}

// @Summary Spend this year
// @Description Sum of debit amounts dated from January 1st to December 31st of the current year
// @Tags transactions
// @Produce json
// @Success 200 {number} number "Total spend"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/totalSpendYear [get]
func getTotalSpendYear(c *gin.Context) {
	respondWithTotal(c, "total spend year", func(ctx context.Context) (ledger.Money, error) {
		return service.TotalSpend(ctx, ledger.PeriodYear)
	})
}

// @Summary Income this month
// @Description Sum of credit amounts dated in the current calendar month
// @Tags transactions
// @Produce json
// @Success 200 {number} number "Total income"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/totalIncomeMonth [get]
func getTotalIncomeMonth(c *gin.Context) {
	respondWithTotal(c, "total income month", service.TotalIncomeMonth)
}

func respondWithTotal(c *gin.Context, operation string, total func(context.Context) (ledger.Money, error)) {
	ctx, cancel := storeContext(c)
	defer cancel()

	sum, err := total(ctx)
	if err != nil {
		respondWithError(c, err, operation)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary Transactions this month
// @Description Every transaction dated in the current calendar month, both directions
// @Tags transactions
// @Produce json
// @Success 200 {array} Transaction "Transactions"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/currentMonthDaily [get]
func getCurrentMonthDaily(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	dbTransactions, err := service.CurrentMonthDaily(ctx)
	if err != nil {
		respondWithError(c, err, "current month daily")
		return
	}
	c.JSON(http.StatusOK, newTransactions(dbTransactions))
}
