package api

import (
	"net/http"

	"github.com/Domenick1991/skyjourney/config"
	"github.com/gin-gonic/gin"
)

type landingResponse struct {
	Name           string   `json:"name"`
	Tagline        string   `json:"tagline,omitempty"`
	CurrencySymbol string   `json:"currency_symbol"`
	PopularRoutes  []string `json:"popular_routes"`
	MaxPassengers  int      `json:"max_passengers"`
}

// SiteHandler serves the landing page data. Copy comes from configuration.
type SiteHandler struct {
	site          config.SiteConfig
	maxPassengers int
}

func NewSiteHandler(site config.SiteConfig, maxPassengers int) *SiteHandler {
	return &SiteHandler{site: site, maxPassengers: maxPassengers}
}

func (h *SiteHandler) Register(router gin.IRoutes) {
	router.GET("/", h.landing)
}

func (h *SiteHandler) landing(c *gin.Context) {
	routes := h.site.PopularRoutes
	if routes == nil {
		routes = []string{}
	}
	c.JSON(http.StatusOK, landingResponse{
		Name:           h.site.Name,
		Tagline:        h.site.Tagline,
		CurrencySymbol: h.site.CurrencySymbol,
		PopularRoutes:  routes,
		MaxPassengers:  h.maxPassengers,
	})
}
