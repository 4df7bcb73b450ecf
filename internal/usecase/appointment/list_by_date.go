package appointment

import (
	"context"

	domain "github.com/HealthyFeetMX/clinic-scheduler/internal/domain/appointment"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	employeeID uint,
	dateStr string,
) ([]dto.AppointmentListDTO, error) {

	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := domain.DayBounds(date)

	appointments, err := uc.repo.ListForEmployeeDay(
		ctx,
		employeeID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			ClientName:   ap.Client.Name,
			ClientPhone:  ap.Client.Phone,
			EmployeeName: ap.Employee.Name,
			ServiceName:  ap.Service.Name,
			Price:        ap.Service.Price,
		})
	}

	return out, nil
}
