package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/drobertson-glitch/revintel/infrastructure/dataset"
	"github.com/drobertson-glitch/revintel/infrastructure/dataset/mocks"
	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/internal/usecases/normalizing"
	"github.com/drobertson-glitch/revintel/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func TestIngestDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	parsed := &domain.Dataset{
		Deals:   []*domain.Deal{{ID: "deal-0001", Account: "Acme Corp", Stage: domain.StageClosedWon}},
		Dropped: 2,
	}

	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(store *dataset.Store, ingestor *mocks.MockIngestor)
		wantStatus int
		validate   func(t *testing.T, store *dataset.Store, body string)
	}{
		{
			name: "Deve ingerir e substituir o snapshot vigente",
			body: "raw payload",
			setup: func(store *dataset.Store, ingestor *mocks.MockIngestor) {
				ingestor.EXPECT().
					FromBytes([]byte("raw payload"), "").
					Return(parsed, nil)
			},
			wantStatus: http.StatusCreated,
			validate: func(t *testing.T, store *dataset.Store, body string) {
				assert.Contains(t, body, `"records":1`)
				assert.Contains(t, body, `"dropped":2`)

				snapshot, ok := store.Current()
				require.True(t, ok)
				assert.Equal(t, 1, snapshot.Records)
			},
		},
		{
			name:       "Payload vazio é rejeitado",
			body:       "",
			setup:      func(*dataset.Store, *mocks.MockIngestor) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Dataset sem registros aproveitáveis devolve 422",
			body: "garbage",
			setup: func(store *dataset.Store, ingestor *mocks.MockIngestor) {
				ingestor.EXPECT().
					FromBytes(gomock.Any(), "").
					Return(nil, normalizing.ErrNoUsableData)
			},
			wantStatus: http.StatusUnprocessableEntity,
			validate: func(t *testing.T, store *dataset.Store, body string) {
				assert.Contains(t, body, "DATA_001")
				_, ok := store.Current()
				assert.False(t, ok, "snapshot não deve ser instalado")
			},
		},
		{
			name: "Formato não reconhecido devolve 415",
			path: "/v1/dataset/ingest?format=parquet",
			body: "payload",
			setup: func(store *dataset.Store, ingestor *mocks.MockIngestor) {
				ingestor.EXPECT().
					FromBytes(gomock.Any(), "parquet").
					Return(nil, dataset.ErrUnknownFormat)
			},
			wantStatus: http.StatusUnsupportedMediaType,
			validate: func(t *testing.T, store *dataset.Store, body string) {
				assert.Contains(t, body, "DATA_002")
			},
		},
		{
			name: "Ingestão superada por outra mais recente é descartada",
			body: "slow payload",
			setup: func(store *dataset.Store, ingestor *mocks.MockIngestor) {
				ingestor.EXPECT().
					FromBytes(gomock.Any(), "").
					DoAndReturn(func([]byte, string) (*domain.Dataset, error) {
						// Outra ingestão começa e termina enquanto esta roda
						generation := store.Begin()
						_, ok := store.Replace(generation, parsed)
						require.True(t, ok)
						return parsed, nil
					})
			},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, store *dataset.Store, body string) {
				snapshot, ok := store.Current()
				require.True(t, ok)
				assert.Equal(t, 1, snapshot.Records)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := dataset.NewStore(1_000_000, nil)
			ingestor := mocks.NewMockIngestor(ctrl)
			tt.setup(store, ingestor)

			path := tt.path
			if path == "" {
				path = "/v1/dataset/ingest"
			}
			request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()

			IngestDataset(store, ingestor).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.validate != nil {
				tt.validate(t, store, recorder.Body.String())
			}
		})
	}
}

func TestGetDatasetInfo(t *testing.T) {
	store := dataset.NewStore(1_000_000, nil)

	t.Run("Sem dataset carregado devolve 409", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/v1/dataset", nil)
		recorder := httptest.NewRecorder()

		GetDatasetInfo(store).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "DATA_003")
	})

	t.Run("Com dataset devolve os metadados do snapshot", func(t *testing.T) {
		generation := store.Begin()
		_, ok := store.Replace(generation, &domain.Dataset{
			Deals: []*domain.Deal{{ID: "deal-0001"}},
		})
		require.True(t, ok)

		request := httptest.NewRequest(http.MethodGet, "/v1/dataset", nil)
		recorder := httptest.NewRecorder()

		GetDatasetInfo(store).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"records":1`)
	})
}

func TestGetDealRecords(t *testing.T) {
	store := dataset.NewStore(1_000_000, nil)
	generation := store.Begin()
	_, ok := store.Replace(generation, &domain.Dataset{
		Deals: []*domain.Deal{{ID: "deal-0001", Account: "Acme Corp"}},
	})
	require.True(t, ok)

	request := httptest.NewRequest(http.MethodGet, "/v1/dataset/records", nil)
	recorder := httptest.NewRecorder()

	GetDealRecords(store).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Acme Corp")
}
