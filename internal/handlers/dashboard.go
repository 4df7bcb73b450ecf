package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/timezone"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
)

type DashboardHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewDashboardHandler(db *gorm.DB, rdb *redis.Client) *DashboardHandler {
	return &DashboardHandler{db: db, rdb: rdb}
}

type dashboardSummary struct {
	AppointmentsToday int64   `json:"appointments_today"`
	Clients           int64   `json:"clients"`
	ActiveEmployees   int64   `json:"active_employees"`
	WeekSales         float64 `json:"week_sales"`
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
		var out dashboardSummary
		if json.Unmarshal(cached, &out) == nil {
			c.JSON(200, out)
			return
		}
	}

	now := timezone.Now()
	dayStart, dayEnd := dayWindow(now)

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := dayStart.AddDate(0, 0, 1-weekday)

	var out dashboardSummary

	if err := h.db.Model(&models.Appointment{}).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Count(&out.AppointmentsToday).Error; err != nil {
		httperr.Internal(c, "failed_to_build_dashboard", "Could not build summary.")
		return
	}

	if err := h.db.Model(&models.Client{}).
		Count(&out.Clients).Error; err != nil {
		httperr.Internal(c, "failed_to_build_dashboard", "Could not build summary.")
		return
	}

	if err := h.db.Model(&models.Employee{}).
		Where("active = ?", true).
		Count(&out.ActiveEmployees).Error; err != nil {
		httperr.Internal(c, "failed_to_build_dashboard", "Could not build summary.")
		return
	}

	if err := h.db.Model(&models.Sale{}).
		Where("date >= ? AND date < ?", weekStart, weekStart.AddDate(0, 0, 7)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.WeekSales).Error; err != nil {
		httperr.Internal(c, "failed_to_build_dashboard", "Could not build summary.")
		return
	}

	if b, err := json.Marshal(out); err == nil {
		// Cache write is best effort.
		h.rdb.Set(ctx, dashboardCacheKey, b, dashboardCacheTTL)
	}

	c.JSON(200, out)
}
