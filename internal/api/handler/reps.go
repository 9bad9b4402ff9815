package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/drobertson-glitch/revintel/infrastructure/dataset"
	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/pkg/apiErrors"
	"github.com/drobertson-glitch/revintel/pkg/log"
)

// GetRoster devolve o roster de vendedores vigente
func GetRoster(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, store.Roster())
	})
}

// quotaRequest é o corpo do ajuste de quota de um vendedor
type quotaRequest struct {
	Territory domain.Territory `json:"territory"`
	Year      int              `json:"year"`
	Quota     float64          `json:"quota"`
}

// UpdateRepQuota atualiza a quota de um vendedor para um ano. A quota é
// estado externo editável; o núcleo apenas a lê nas agregações.
func UpdateRepQuota(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do vendedor ausente", nil)
			return
		}

		var request quotaRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("reps: invalid quota payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if request.Year == 0 || request.Quota < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Ano ou quota inválidos", nil)
			return
		}
		if request.Territory == "" {
			request.Territory = domain.TerritoryUS
		}

		rep := store.SetRepQuota(name, request.Territory, request.Year, request.Quota)

		logger.WithFields(log.Fields{
			"rep":   name,
			"year":  request.Year,
			"quota": request.Quota,
		}).Info("reps: quota updated")

		writeJSON(w, rep)
	})
}

// goalRequest é o corpo do ajuste de meta; override nulo limpa o override
type goalRequest struct {
	Override *float64 `json:"override"`
}

// GetGoals devolve a configuração de meta vigente e o valor efetivo
func GetGoals(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		goals := store.Goals()
		writeJSON(w, map[string]any{
			"override":  goals.Override,
			"default":   goals.Default,
			"effective": goals.Resolve(),
		})
	})
}

// UpdateGoals define ou limpa o override manual da meta de receita
func UpdateGoals(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request goalRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("goals: invalid payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if request.Override != nil && *request.Override <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Meta deve ser positiva", nil)
			return
		}

		goals := store.SetGoalOverride(request.Override)

		logger.WithField("override", request.Override).Info("goals: override updated")

		writeJSON(w, map[string]any{
			"override":  goals.Override,
			"default":   goals.Default,
			"effective": goals.Resolve(),
		})
	})
}
