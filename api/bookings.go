package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/Domenick1991/skyjourney/internal/service/booking"
	"github.com/gin-gonic/gin"
)

const confirmationPath = "/booking-confirmation"

type BookingHandler struct {
	service booking.BookingUseCase
}

type submitResponse struct {
	Key             string `json:"key"`
	Reference       string `json:"reference"`
	ConfirmationURL string `json:"confirmation_url"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.start)
	router.GET("/:session", h.get)
	router.PUT("/:session/passengers/:index", h.setPassenger)
	router.PUT("/:session/payment", h.setPayment)
	router.POST("/:session/next", h.next)
	router.POST("/:session/back", h.back)
	router.POST("/:session/submit", h.submit)
	router.DELETE("/:session", h.discard)
}

func (h *BookingHandler) start(c *gin.Context) {
	var req booking.StartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Start(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *BookingHandler) get(c *gin.Context) {
	session, err := h.service.Get(c.Request.Context(), c.Param("session"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) setPassenger(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger index"})
		return
	}
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.SetPassenger(c.Request.Context(), c.Param("session"), index, fields)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) setPayment(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.SetPayment(c.Request.Context(), c.Param("session"), fields)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) next(c *gin.Context) {
	session, err := h.service.Next(c.Request.Context(), c.Param("session"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) back(c *gin.Context) {
	session, err := h.service.Back(c.Request.Context(), c.Param("session"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) submit(c *gin.Context) {
	conf, err := h.service.Submit(c.Request.Context(), c.Param("session"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submitResponse{
		Key:             conf.Key,
		Reference:       conf.Reference,
		ConfirmationURL: confirmationPath + "?key=" + url.QueryEscape(conf.Key),
	})
}

func (h *BookingHandler) discard(c *gin.Context) {
	if err := h.service.Discard(c.Request.Context(), c.Param("session")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type confirmationResponse struct {
	Reference    string             `json:"reference"`
	Flight       *domain.Flight     `json:"flight"`
	Passengers   []domain.Passenger `json:"passengers"`
	LeadEmail    string             `json:"lead_email,omitempty"`
	TotalPrice   float64            `json:"total_price"`
	BaseFare     float64            `json:"base_fare"`
	TaxesAndFees float64            `json:"taxes_and_fees"`
}

// ConfirmationHandler serves the one-shot booking confirmation. Visitors
// arriving without a valid handoff are sent back to the landing page.
type ConfirmationHandler struct {
	service     booking.BookingUseCase
	landingPath string
}

func NewConfirmationHandler(service booking.BookingUseCase, landingPath string) *ConfirmationHandler {
	return &ConfirmationHandler{service: service, landingPath: landingPath}
}

func (h *ConfirmationHandler) Register(router gin.IRoutes) {
	router.GET(confirmationPath, h.show)
}

func (h *ConfirmationHandler) show(c *gin.Context) {
	handoff, err := h.service.Confirmation(c.Request.Context(), c.Query("key"))
	if err != nil {
		if statusFor(err) != http.StatusNotFound {
			abortWithError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, h.landingPath)
		return
	}

	resp := confirmationResponse{
		Reference:    handoff.Reference,
		Flight:       handoff.Flight,
		Passengers:   handoff.Passengers,
		TotalPrice:   handoff.TotalPrice,
		BaseFare:     handoff.BaseFare,
		TaxesAndFees: handoff.TaxesAndFees,
	}
	if lead, ok := handoff.LeadPassenger(); ok {
		resp.LeadEmail = lead.Email
	}
	c.JSON(http.StatusOK, resp)
}
