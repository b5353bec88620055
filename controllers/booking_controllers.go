package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
	"github.com/cafereservas/booking-app/services"
	"github.com/cafereservas/booking-app/utils"
)

type BookingController struct {
	Service *services.BookingService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{Service: services.NewBookingService(db)}
}

// CreateBooking -> public endpoint for customers to request a table.
// table_id is optional; without it the service picks a fitting table.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		TableID uint   `json:"table_id"`
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		Date    string `json:"date" binding:"required"`
		Time    string `json:"time" binding:"required"`
		Guests  int    `json:"number_of_guests" binding:"required"`
		Notes   string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.CreateBooking(services.CreateBookingInput{
		TableID: req.TableID,
		Name:    req.Name,
		Phone:   req.Phone,
		Date:    req.Date,
		Time:    req.Time,
		Guests:  req.Guests,
		Notes:   req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", bookingView(booking))
}

// ListBookings -> full records for admins, occupied slots for everyone else.
func (bc *BookingController) ListBookings(c *gin.Context) {
	bookings, slots, err := bc.Service.ListBookings(isAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if bookings != nil {
		views := make([]gin.H, 0, len(bookings))
		for i := range bookings {
			views = append(views, bookingView(&bookings[i]))
		}
		utils.RespondJSON(c, http.StatusOK, "All bookings", views)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Occupied slots", slots)
}

// CancelBooking -> admin removes a reservation permanently.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("booking_id"))
	if err != nil {
		respondServiceError(c, &services.ValidationError{Field: "booking_id", Reason: "must be an integer"})
		return
	}

	if err := bc.Service.CancelBooking(uint(id), isAdmin(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", gin.H{"booking_id": id})
}

func bookingView(b *models.Booking) gin.H {
	return gin.H{
		"id":               b.ID,
		"table_id":         b.TableID,
		"name":             b.Name,
		"phone":            b.Phone,
		"date":             b.Date.Format("2006-01-02"),
		"start_time":       b.StartsAt.Format("15:04"),
		"end_time":         b.EndsAt.Format("15:04"),
		"number_of_guests": b.Guests,
		"notes":            b.Notes,
	}
}
