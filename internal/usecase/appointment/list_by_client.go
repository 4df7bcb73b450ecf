package appointment

import (
	"context"

	domain "github.com/HealthyFeetMX/clinic-scheduler/internal/domain/appointment"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/dto"
)

const defaultClientHistoryLimit = 10

type ListAppointmentsByClient struct {
	repo domain.Repository
}

func NewListAppointmentsByClient(
	repo domain.Repository,
) *ListAppointmentsByClient {
	return &ListAppointmentsByClient{
		repo: repo,
	}
}

func (uc *ListAppointmentsByClient) Execute(
	ctx context.Context,
	clientID uint,
	limit int,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultClientHistoryLimit
	}

	appointments, err := uc.repo.ListForClient(ctx, clientID, limit)
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
			EmployeeName: ap.Employee.Name,
			ServiceName:  ap.Service.Name,
			Price:        ap.Service.Price,
		})
	}

	return out, nil
}
