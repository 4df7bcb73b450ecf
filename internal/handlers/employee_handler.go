package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httpresp"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/validators"
)

type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

type employeeRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
}

func (r *employeeRequest) validate(c *gin.Context) bool {
	if r.Email != "" && !validators.IsValidEmail(r.Email) {
		httperr.BadRequest(c, "invalid_email", "Invalid email.")
		return false
	}
	if r.Phone != "" && !validators.IsValidPhone(r.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone must be exactly 10 digits.")
		return false
	}
	return true
}

func (h *EmployeeHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")
	if c.Query("all") == "" {
		q = q.Where("active = ?", true)
	}

	var employees []models.Employee
	if err := q.Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Could not list employees.")
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or malformed fields.")
		return
	}
	if !req.validate(c) {
		return
	}

	emp := models.Employee{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: true,
	}

	if err := h.db.Create(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Could not create employee.")
		return
	}

	httpresp.Created(c, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or malformed fields.")
		return
	}
	if !req.validate(c) {
		return
	}

	var emp models.Employee
	if err := h.db.First(&emp, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeEmployeeNotFound, "Employee not found.")
		return
	}

	emp.Name = req.Name
	emp.Email = req.Email
	emp.Phone = req.Phone
	if req.Active != nil {
		emp.Active = *req.Active
	}

	if err := h.db.Save(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Could not update employee.")
		return
	}

	httpresp.OK(c, emp)
}
