package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/services"
	"github.com/cafereservas/booking-app/utils"
)

type TableController struct {
	Service *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{Service: services.NewTableService(db)}
}

// CreateTable -> admin registers a new table.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Seats int `json:"seats" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.CreateTable(req.Seats, isAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// ListTables -> public list of tables with the derived occupancy flag.
func (tc *TableController) ListTables(c *gin.Context) {
	tables, err := tc.Service.ListTables()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// DeleteTable -> admin removes a table without upcoming bookings.
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		respondServiceError(c, &services.ValidationError{Field: "table_id", Reason: "must be an integer"})
		return
	}

	if err := tc.Service.DeleteTable(uint(id), isAdmin(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": id})
}
