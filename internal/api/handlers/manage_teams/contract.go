package manage_teams

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/teams/models"
)

type TeamService interface {
	Create(ctx context.Context, callerID int64, req *models.CreateTeamRequest) (*models.TeamResponse, error)
	GetByID(ctx context.Context, callerID int64, id int64) (*models.TeamResponse, error)
	List(ctx context.Context, callerID int64) (*models.TeamListResponse, error)
	Update(ctx context.Context, callerID int64, id int64, req *models.UpdateTeamRequest) (*models.TeamResponse, error)
	Delete(ctx context.Context, callerID int64, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
