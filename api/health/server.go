package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(hrm.healthService.GetServerHealthStatus()),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthStatus, err := hrm.healthService.GetDatabaseHealthStatus(r.Context())
	if err != nil {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Database health check failed"),
			gecho.WithData(dbHealthStatus),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(dbHealthStatus),
		gecho.Send(),
	)
}
