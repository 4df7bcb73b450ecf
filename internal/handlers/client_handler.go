package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httpresp"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")

	if name := c.Query("name"); name != "" {
		q = q.Where("name ILIKE ?", "%"+name+"%")
	}

	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}

type updateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name and phone are required.")
		return
	}

	if !validators.IsValidPhone(req.Phone) {
		httperr.BadRequest(c, httperr.CodeInvalidPhone, "Phone must be exactly 10 digits.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeClientNotFound, "Client not found.")
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Could not update client.")
		return
	}

	httpresp.OK(c, client)
}
