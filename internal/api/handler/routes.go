package handler

import (
	"net/http"

	"github.com/drobertson-glitch/revintel/infrastructure/dataset"
	"github.com/drobertson-glitch/revintel/internal/api/handler/router"
	"github.com/drobertson-glitch/revintel/internal/usecases/aggregating"
	"github.com/drobertson-glitch/revintel/internal/usecases/insighting"
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

func Datasets(store *dataset.Store, ingestor dataset.Ingestor) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset/ingest",
			Method:  http.MethodPost,
			Handler: IngestDataset(store, ingestor),
		},
		{
			Path:    "/v1/dataset",
			Method:  http.MethodGet,
			Handler: GetDatasetInfo(store),
		},
		{
			Path:    "/v1/dataset/records",
			Method:  http.MethodGet,
			Handler: GetDealRecords(store),
		},
	}
}

func Dashboards(store *dataset.Store, aggregator *aggregating.Service, insighter insighting.Insighter, supportedYears []int) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(store, aggregator, supportedYears),
		},
		{
			Path:    "/v1/dashboard/insights",
			Method:  http.MethodGet,
			Handler: GetInsights(store, aggregator, insighter, supportedYears),
		},
		{
			Path:    "/v1/dashboard/summary",
			Method:  http.MethodGet,
			Handler: GetSummary(store, aggregator, supportedYears),
		},
	}
}

func Reps(store *dataset.Store) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reps",
			Method:  http.MethodGet,
			Handler: GetRoster(store),
		},
		{
			Path:    "/v1/reps/:name/quota",
			Method:  http.MethodPut,
			Handler: UpdateRepQuota(store),
		},
		{
			Path:    "/v1/goals",
			Method:  http.MethodGet,
			Handler: GetGoals(store),
		},
		{
			Path:    "/v1/goals",
			Method:  http.MethodPut,
			Handler: UpdateGoals(store),
		},
	}
}
