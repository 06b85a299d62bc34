package handler

import (
	"net/http"

	"github.com/caretide/facility-metrics-api/internal/api/handler/router"
	"github.com/caretide/facility-metrics-api/internal/events"
	"github.com/caretide/facility-metrics-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func FacilityMetrics(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/facility-metrics",
			Method:  http.MethodGet,
			Handler: ListFacilityMetrics(service),
		},
		{
			Path:    "/v1/facility-metrics/churn-export",
			Method:  http.MethodPost,
			Handler: ExportChurnCSV(service),
		},
		{
			Path:    "/v1/facility-metrics/:id",
			Method:  http.MethodGet,
			Handler: GetFacilityMetric(service),
		},
	}
}

func ShiftEvents(bus *events.Bus) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/events/shift-update",
			Method:  http.MethodPost,
			Handler: PublishShiftUpdate(bus),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
