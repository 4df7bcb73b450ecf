package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httpresp"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
)

type SaleHandler struct {
	db *gorm.DB
}

func NewSaleHandler(db *gorm.DB) *SaleHandler {
	return &SaleHandler{db: db}
}

type saleListResponse struct {
	Data  []models.Sale `json:"data"`
	Total int           `json:"total"`
	Sum   float64       `json:"total_amount"`
}

// List returns sales within a day/week/month/year window plus their
// total amount. Defaults to today.
func (h *SaleHandler) List(c *gin.Context) {
	window, err := parseSalePeriod(c.Query("filter"), c.Query("value"))
	if err != nil {
		httperr.BadRequest(c, "invalid_filter", "Unknown filter or malformed value.")
		return
	}

	var sales []models.Sale
	if err := h.db.
		Where("date >= ? AND date < ?", window.start, window.end).
		Order("date DESC, id DESC").
		Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Could not list sales.")
		return
	}

	var sum float64
	for _, s := range sales {
		sum += s.Amount
	}

	httpresp.OK(c, saleListResponse{
		Data:  sales,
		Total: len(sales),
		Sum:   sum,
	})
}
