package handler

import (
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/drobertson-glitch/revintel/infrastructure/dataset"
	"github.com/drobertson-glitch/revintel/internal/usecases/normalizing"
	"github.com/drobertson-glitch/revintel/pkg/apiErrors"
	"github.com/drobertson-glitch/revintel/pkg/log"
)

// Limite do payload de ingestão (32 MiB)
const maxIngestBytes = 32 << 20

// IngestDataset recebe um payload bruto (texto, XLSX ou compacto), normaliza
// e substitui o snapshot vigente. Uma ingestão que termine depois de superada
// por outra é descartada.
func IngestDataset(store *dataset.Store, ingestor dataset.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		body, err := io.ReadAll(io.LimitReader(r.Body, maxIngestBytes))
		if err != nil {
			logger.WithError(err).Warn("ingest: failed to read request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Falha ao ler o corpo da requisição", nil)
			return
		}
		if len(body) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Payload de dataset vazio", nil)
			return
		}

		format := r.URL.Query().Get("format")
		generation := store.Begin()

		parsed, err := ingestor.FromBytes(body, format)
		if err != nil {
			if errors.Is(err, normalizing.ErrNoUsableData) {
				logger.Warn("ingest: no usable data in payload")
				apiErrors.WriteError(w, apiErrors.ErrNoUsableData, "Nenhum registro aproveitável no dataset", nil)
				return
			}
			if errors.Is(err, dataset.ErrUnknownFormat) {
				logger.WithError(err).Warn("ingest: unknown dataset format")
				apiErrors.WriteError(w, apiErrors.ErrUnknownDataset, err.Error(), nil)
				return
			}

			logger.WithError(err).Warn("ingest: failed to parse dataset")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		snapshot, installed := store.Replace(generation, parsed)
		if !installed {
			logger.Warn("ingest: superseded by a newer load")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Ingestão superada por uma carga mais recente", nil)
			return
		}

		logger.WithFields(log.Fields{
			"snapshot_id": snapshot.ID,
			"records":     snapshot.Records,
			"dropped":     snapshot.Dropped,
		}).Info("ingest: dataset replaced")

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, snapshot)
	})
}

// GetDatasetInfo devolve os metadados do snapshot vigente
func GetDatasetInfo(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := store.Current()
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "Nenhum dataset carregado", nil)
			return
		}

		writeJSON(w, snapshot)
	})
}

// GetDealRecords devolve a lista canônica de oportunidades do snapshot
func GetDealRecords(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := store.Current()
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "Nenhum dataset carregado", nil)
			return
		}

		writeJSON(w, snapshot.Dataset.Deals)
	})
}
