package handlers

import (
	"net/http"
	"strings"

	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ExchangeRateHandler handles exchange rate requests.
type ExchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// NewExchangeRateHandler creates a new ExchangeRateHandler.
func NewExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *ExchangeRateHandler {
	return &ExchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes sets up the routes for exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := NewExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.ListLatestRates)
		rates.GET("/:pair", h.GetExchangeRate)
		rates.POST("", h.CreateExchangeRate)
	}
}

// ListLatestRates godoc
// @Summary List latest exchange rates
// @Description Returns the most recent rate for every currency pair on record.
// @Tags exchange-rates
// @Produce json
// @Success 200 {array} dto.ExchangeRateResponse
// @Router /exchange-rates [get]
func (h *ExchangeRateHandler) ListLatestRates(c *gin.Context) {
	rates, err := h.rateService.ListLatestRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// GetExchangeRate godoc
// @Summary Get latest rate for a pair
// @Description The pair is given as "FROM-TO", e.g. "USD-NPR".
// @Tags exchange-rates
// @Produce json
// @Param pair path string true "Currency pair, e.g. USD-NPR"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exchange-rates/{pair} [get]
func (h *ExchangeRateHandler) GetExchangeRate(c *gin.Context) {
	parts := strings.SplitN(c.Param("pair"), "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pair, expected FROM-TO"})
		return
	}

	rate, err := h.rateService.GetExchangeRate(c.Request.Context(), parts[0], parts[1])
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// CreateExchangeRate godoc
// @Summary Record an exchange rate
// @Description Records a new rate for a currency pair and invalidates the conversion cache. SUPERUSER only.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateExchangeRateRequest true "Exchange Rate Info"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /exchange-rates [post]
func (h *ExchangeRateHandler) CreateExchangeRate(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), req, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}
