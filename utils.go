package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"financetracker/ledger"
)

// Validation functions

// validateName validates that a name is not empty or just whitespace
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

// validatePathID checks the id in a PUT body against the one in the URL.
// An empty body id is filled from the path.
func validatePathID(pathID string, bodyID *string) error {
	if *bodyID == "" {
		*bodyID = pathID
		return nil
	}
	if *bodyID != pathID {
		return fmt.Errorf("id in body (%s) does not match id in path (%s)", *bodyID, pathID)
	}
	return nil
}

// Error handling

// handleLedgerError converts ledger errors to appropriate HTTP responses
func handleLedgerError(err error) (statusCode int, message string) {
	var ve *ledger.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound, "Account not found"
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, ledger.ErrConflict):
		return http.StatusConflict, "Resource was modified by another request, reload it and retry"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Storage did not respond in time"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// respondWithError logs err with the failed operation and writes the mapped
// status. Causes of 5xx responses stay in the log.
func respondWithError(c *gin.Context, err error, operation string) {
	statusCode, message := handleLedgerError(err)

	event := requestLog(c).Warn()
	if statusCode >= http.StatusInternalServerError {
		event = requestLog(c).Error()
	}
	event.Err(err).Str("operation", operation).Str("id", c.Param("id")).Msg("Request failed")

	c.JSON(statusCode, gin.H{"error": message})
}

// storeContext detaches store calls from the client connection so that a
// disconnect does not abort a write halfway. The call is still bounded by
// the configured store timeout.
func storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), storeTimeout)
}
