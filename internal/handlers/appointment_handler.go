package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httpresp"
	ucAppointment "github.com/HealthyFeetMX/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	editUC         *ucAppointment.EditAppointment
	finalizeUC     *ucAppointment.FinalizeAppointment
	cancelUC       *ucAppointment.CancelAppointment
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByClientUC *ucAppointment.ListAppointmentsByClient
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	editUC *ucAppointment.EditAppointment,
	finalizeUC *ucAppointment.FinalizeAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByClientUC *ucAppointment.ListAppointmentsByClient,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		editUC:         editUC,
		finalizeUC:     finalizeUC,
		cancelUC:       cancelUC,
		listByDateUC:   listByDateUC,
		listByClientUC: listByClientUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`

	EmployeeID uint   `json:"employee_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
}

type EditAppointmentRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`

	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

type FinalizeAppointmentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or malformed fields.")
		return
	}

	if req.ClientID == 0 && (req.ClientName == "" || req.ClientPhone == "") {
		httperr.BadRequest(c, "missing_client", "Provide client_id or client_name with client_phone.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		EmployeeID:  req.EmployeeID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// EDIT
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or malformed fields.")
		return
	}

	ap, err := h.editUC.Execute(c.Request.Context(), ucAppointment.EditAppointmentInput{
		AppointmentID: id,
		EmployeeID:    req.EmployeeID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// FINALIZE / CANCEL
// ======================================================

func (h *AppointmentHandler) Finalize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req FinalizeAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_payment_method", "Payment method is required.")
		return
	}

	ap, err := h.finalizeUC.Execute(c.Request.Context(), id, req.PaymentMethod)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	employeeID, err := strconv.ParseUint(c.Query("employee_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_employee_id", "Employee id is required.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), uint(employeeID), dateStr)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	out, err := h.listByClientUC.Execute(c.Request.Context(), id, limit)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// writeSchedulingError maps the engine's business codes onto HTTP.
func writeSchedulingError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch be.Code {
	case httperr.CodeInvalidDateOrTime, httperr.CodeInvalidPhone, httperr.CodeInvalidDuration:
		httperr.BadRequest(c, be.Code, "Invalid request data.")

	case httperr.CodeServiceNotFound, httperr.CodeClientNotFound,
		httperr.CodeEmployeeNotFound, httperr.CodeAppointmentNotFound:
		httperr.NotFound(c, be.Code, "Referenced record not found.")

	case httperr.CodeClientDoubleBooked:
		httperr.Conflict(c, be.Code, "The client already has an appointment at that exact time.")

	case httperr.CodeEmployeeOverlap:
		httperr.Conflict(c, be.Code, "The employee already has an overlapping appointment.")

	case httperr.CodeTerminalState:
		httperr.Conflict(c, be.Code, "The appointment is finalized or cancelled and cannot change.")

	case httperr.CodeBusy:
		httperr.Unavailable(c, be.Code, "The schedule is busy, retry the request.")

	case httperr.CodeCoordinationFailure:
		httperr.Internal(c, be.Code, "The operation could not be completed; nothing was changed.")

	default:
		httperr.Internal(c, be.Code, "Unexpected error.")
	}
}
