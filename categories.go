package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"financetracker/ledger"
)

// Category handler functions

// @Summary Get all categories
// @Description Retrieve all categories
// @Tags categories
// @Produce json
// @Success 200 {array} Category "List of categories"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/categories [get]
func getCategories(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	dbCategories, err := service.Store().ListCategories(ctx)
	if err != nil {
		respondWithError(c, err, "list categories")
		return
	}

	categories := make([]Category, 0, len(dbCategories))
	for _, dbCategory := range dbCategories {
		categories = append(categories, newCategory(dbCategory))
	}
	c.JSON(http.StatusOK, categories)
}

// @Summary Create category
// @Description Create a new category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body Category true "Category data (name required)"
// @Success 201 {object} Category "Created category"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/categories [post]
func createCategory(c *gin.Context) {
	var category Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Validate required fields
	if err := validateName(category.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	created, err := service.Store().CreateCategory(ctx, ledger.Category{Name: strings.TrimSpace(category.Name)})
	if err != nil {
		respondWithError(c, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, newCategory(created))
}

// @Summary Delete category
// @Description Delete a category. Transactions keep their category label.
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]interface{} "Category not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/categories/{id} [delete]
func deleteCategory(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	if err := service.Store().DeleteCategory(ctx, c.Param("id")); err != nil {
		respondWithError(c, err, "delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
