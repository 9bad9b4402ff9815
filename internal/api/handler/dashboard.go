package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/drobertson-glitch/revintel/infrastructure/dataset"
	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/internal/usecases/aggregating"
	"github.com/drobertson-glitch/revintel/internal/usecases/filtering"
	"github.com/drobertson-glitch/revintel/internal/usecases/insighting"
	"github.com/drobertson-glitch/revintel/pkg/apiErrors"
	"github.com/drobertson-glitch/revintel/pkg/log"
	"github.com/drobertson-glitch/revintel/pkg/utils"
)

// GetDashboard devolve todos os agregados do painel para os filtros da query
func GetDashboard(store *dataset.Store, aggregator *aggregating.Service, supportedYears []int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot, ok := store.Current()
		if !ok {
			logger.Warn("dashboard: no dataset loaded")
			apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "Nenhum dataset carregado", nil)
			return
		}

		opts, err := parseFilterOptions(r, supportedYears)
		if err != nil {
			logger.WithError(err).Warn("dashboard: invalid filter parameters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		goal := resolveGoal(r, store)

		response := aggregator.Dashboard(snapshot.Dataset, opts, goal, store.Roster())

		logger.WithFields(log.Fields{
			"snapshot_id": snapshot.ID,
			"deal_count":  response.DealCount,
		}).Info("dashboard: aggregates computed")

		writeJSON(w, response)
	})
}

// GetInsights devolve as listas de insights/ações e a ação principal
func GetInsights(store *dataset.Store, aggregator *aggregating.Service, insighter insighting.Insighter, supportedYears []int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot, ok := store.Current()
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "Nenhum dataset carregado", nil)
			return
		}

		opts, err := parseFilterOptions(r, supportedYears)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		goal := resolveGoal(r, store)

		dashboard := aggregator.Dashboard(snapshot.Dataset, opts, goal, store.Roster())
		priorMetrics := aggregator.PriorYearMetrics(snapshot.Dataset, opts)
		lossStats := aggregator.LossStats(snapshot.Dataset, opts)

		report := insighter.Report(dashboard, priorMetrics, lossStats, goal.Resolve())

		logger.WithFields(log.Fields{
			"insights": len(report.Insights),
			"actions":  len(report.Actions),
		}).Info("insights: report generated")

		writeJSON(w, report)
	})
}

// GetSummary devolve o resumo plano exportável
func GetSummary(store *dataset.Store, aggregator *aggregating.Service, supportedYears []int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := store.Current()
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "Nenhum dataset carregado", nil)
			return
		}

		opts, err := parseFilterOptions(r, supportedYears)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		writeJSON(w, aggregator.Summary(snapshot.Dataset, opts, resolveGoal(r, store)))
	})
}

// parseFilterOptions monta as opções de filtro a partir da query string e
// aplica as regras de exclusividade dos tokens de período
func parseFilterOptions(r *http.Request, supportedYears []int) (domain.FilterOptions, error) {
	query := r.URL.Query()

	opts := domain.FilterOptions{
		Sources:       splitParam(query.Get("sources")),
		Verticals:     splitParam(query.Get("verticals")),
		Relationships: splitParam(query.Get("relationships")),
	}

	for _, raw := range splitParam(query.Get("territories")) {
		opts.Territories = append(opts.Territories, domain.Territory(raw))
	}
	for _, raw := range splitParam(query.Get("types")) {
		opts.Types = append(opts.Types, domain.DealType(raw))
	}
	for _, raw := range splitParam(query.Get("periods")) {
		opts.Periods = append(opts.Periods, domain.PeriodToken(raw))
	}

	for _, raw := range splitParam(query.Get("years")) {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return opts, err
		}
		opts.Years = append(opts.Years, year)
	}
	if len(opts.Years) == 0 {
		opts.Years = supportedYears
	}

	if rawAsOf := query.Get("as_of"); rawAsOf != "" {
		asOf, err := utils.ParseDate(rawAsOf)
		if err != nil {
			return opts, err
		}
		opts.AsOf = *asOf
	}

	return filtering.NormalizeOptions(opts, time.Now()), nil
}

func splitParam(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// resolveGoal aplica o override de meta da query, quando presente, sobre a
// configuração vigente
func resolveGoal(r *http.Request, store *dataset.Store) domain.GoalSettings {
	goal := store.Goals()

	if raw := r.URL.Query().Get("goal"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
			goal.Override = &value
		}
	}

	return goal
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("handler: failed to encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
