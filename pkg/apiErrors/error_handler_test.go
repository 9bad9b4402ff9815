package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
	}{
		{name: "Requisição inválida", code: ErrInvalidRequest, wantStatus: http.StatusBadRequest},
		{name: "Sem registros aproveitáveis", code: ErrNoUsableData, wantStatus: http.StatusUnprocessableEntity},
		{name: "Formato desconhecido", code: ErrUnknownDataset, wantStatus: http.StatusUnsupportedMediaType},
		{name: "Sem dataset carregado", code: ErrEmptyDataset, wantStatus: http.StatusConflict},
		{name: "Código não mapeado vira 500", code: "XXX_999", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			WriteError(recorder, tt.code, "mensagem", nil)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			assert.Contains(t, recorder.Body.String(), tt.code)
		})
	}
}

func TestFromError(t *testing.T) {
	apiErr := FromError(errors.New("falha na ingestão"), ErrInvalidFormat)
	assert.Equal(t, ErrInvalidFormat, apiErr.Code)
	assert.Equal(t, "falha na ingestão", apiErr.Message)

	apiErr = FromError(nil, ErrInvalidFormat)
	assert.Equal(t, ErrInternalServer, apiErr.Code)
}
