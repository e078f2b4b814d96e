package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/skyjourney/internal/admin"
	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	flights  *admin.Flights
	bookings *admin.Bookings
	currency string
}

type scheduledFlightRequest struct {
	FlightNumber  string  `json:"flight_number" binding:"required"`
	Airline       string  `json:"airline" binding:"required"`
	Departure     string  `json:"departure" binding:"required"`
	DepartureTime string  `json:"departure_time"`
	Arrival       string  `json:"arrival" binding:"required"`
	ArrivalTime   string  `json:"arrival_time"`
	Status        string  `json:"status" binding:"required"`
	Price         float64 `json:"price" binding:"gte=0"`
	Domestic      bool    `json:"domestic"`
}

func (r scheduledFlightRequest) toDomain(id string) (domain.ScheduledFlight, error) {
	status, err := domain.ParseFlightStatus(r.Status)
	if err != nil {
		return domain.ScheduledFlight{}, err
	}
	return domain.ScheduledFlight{
		ID:            id,
		FlightNumber:  r.FlightNumber,
		Airline:       r.Airline,
		Departure:     r.Departure,
		DepartureTime: r.DepartureTime,
		Arrival:       r.Arrival,
		ArrivalTime:   r.ArrivalTime,
		Status:        status,
		Price:         r.Price,
		Domestic:      r.Domestic,
	}, nil
}

type bookingRequest struct {
	Passenger    string  `json:"passenger" binding:"required"`
	FlightNumber string  `json:"flight_number" binding:"required"`
	From         string  `json:"from" binding:"required"`
	To           string  `json:"to" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Status       string  `json:"status" binding:"required"`
	Amount       float64 `json:"amount" binding:"gte=0"`
}

func (r bookingRequest) toDomain(id string) (domain.Booking, error) {
	status, err := domain.ParseBookingStatus(r.Status)
	if err != nil {
		return domain.Booking{}, err
	}
	return domain.Booking{
		ID:           id,
		Passenger:    r.Passenger,
		FlightNumber: r.FlightNumber,
		From:         r.From,
		To:           r.To,
		Date:         r.Date,
		Status:       status,
		Amount:       r.Amount,
	}, nil
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewAdminHandler(flights *admin.Flights, bookings *admin.Bookings, currency string) *AdminHandler {
	return &AdminHandler{flights: flights, bookings: bookings, currency: currency}
}

// Register mounts the back office. The group is expected to carry
// RequireAdmin.
func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard", h.dashboard)

	flights := router.Group("/flights")
	flights.GET("", func(c *gin.Context) { listEntities(c, h.flights.Manager) })
	flights.GET("/:id", func(c *gin.Context) { getEntity(c, h.flights.Manager) })
	flights.POST("", h.createFlight)
	flights.PUT("/:id", h.updateFlight)
	flights.DELETE("/:id", func(c *gin.Context) { deleteEntity(c, h.flights.Manager) })

	bookings := router.Group("/bookings")
	bookings.GET("", func(c *gin.Context) { listEntities(c, h.bookings.Manager) })
	bookings.GET("/:id", func(c *gin.Context) { getEntity(c, h.bookings.Manager) })
	bookings.POST("", h.createBooking)
	bookings.PUT("/:id", h.updateBooking)
	bookings.PATCH("/:id/status", h.setBookingStatus)
	bookings.DELETE("/:id", func(c *gin.Context) { deleteEntity(c, h.bookings.Manager) })
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, admin.BuildDashboard(h.bookings.All(), h.flights.All(), h.currency))
}

func (h *AdminHandler) createFlight(c *gin.Context) {
	var req scheduledFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := req.toDomain("")
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.flights.Create(flight))
}

func (h *AdminHandler) updateFlight(c *gin.Context) {
	var req scheduledFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := req.toDomain(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	updated, err := h.flights.Update(flight)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) createBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := req.toDomain("")
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.bookings.Create(b))
}

func (h *AdminHandler) updateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := req.toDomain(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	updated, err := h.bookings.Update(b)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) setBookingStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.bookings.SetStatus(c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func listEntities[T admin.Entity[T]](c *gin.Context, m *admin.Manager[T]) {
	var lq listQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := lq.order()
	if err != nil {
		abortWithError(c, err)
		return
	}
	result, err := m.List(admin.ListQuery{
		Filter: lq.filter(),
		Order:  order,
		Page:   getPagination(c),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func getEntity[T admin.Entity[T]](c *gin.Context, m *admin.Manager[T]) {
	item, err := m.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// deleteEntity requires ?confirm=true; anything else answers 428.
func deleteEntity[T admin.Entity[T]](c *gin.Context, m *admin.Manager[T]) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := m.Delete(c.Param("id"), confirmed); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
