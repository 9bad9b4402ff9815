// Package dataset carrega dados brutos (texto delimitado, planilha XLSX ou
// dataset compacto) e mantém o snapshot canônico em memória.
package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/internal/usecases/normalizing"
)

// Formatos de entrada aceitos
const (
	FormatAuto    = "auto"
	FormatText    = "text"
	FormatXLSX    = "xlsx"
	FormatCompact = "compact"
)

// ErrUnknownFormat indica um formato de dataset fora dos suportados
var ErrUnknownFormat = errors.New("formato de dataset não reconhecido")

// Ingestor é a porta de ingestão consumida pelos handlers
type Ingestor interface {
	Load(path string) (*domain.Dataset, error)
	FromBytes(data []byte, format string) (*domain.Dataset, error)
}

// Loader implementa Ingestor sobre o serviço de normalização
type Loader struct {
	normalizer normalizing.Normalizer
}

// NewLoader cria o carregador de datasets
func NewLoader(normalizer normalizing.Normalizer) *Loader {
	return &Loader{normalizer: normalizer}
}

// Load lê um arquivo do disco, resolvendo o formato pela extensão
func (l *Loader) Load(path string) (*domain.Dataset, error) {
	format := FormatText
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		format = FormatXLSX
	case ".json":
		format = FormatCompact
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lendo dataset %s", path)
	}

	return l.FromBytes(data, format)
}

// FromBytes ingere um payload bruto no formato indicado. Com FormatAuto o
// conteúdo é inspecionado: JSON vira o caminho compacto, assinatura ZIP vira
// XLSX e o restante é tratado como texto delimitado.
func (l *Loader) FromBytes(data []byte, format string) (*domain.Dataset, error) {
	if format == "" || format == FormatAuto {
		format = sniffFormat(data)
	}

	switch format {
	case FormatCompact:
		return l.normalizer.DecodeCompact(data)
	case FormatXLSX:
		raw, err := flattenWorkbook(data)
		if err != nil {
			return nil, err
		}
		return l.normalizer.ParseText(raw)
	case FormatText:
		return l.normalizer.ParseText(string(data))
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func sniffFormat(data []byte) string {
	trimmed := strings.TrimLeft(string(data[:min(len(data), 64)]), " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return FormatCompact
	case len(data) >= 4 && data[0] == 'P' && data[1] == 'K':
		return FormatXLSX
	default:
		return FormatText
	}
}

// flattenWorkbook converte a primeira aba de uma planilha para texto
// tabulado, reaproveitando o caminho de texto da normalização
func flattenWorkbook(data []byte) (string, error) {
	file, err := excelize.OpenReader(strings.NewReader(string(data)))
	if err != nil {
		return "", errors.Wrap(err, "abrindo planilha")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.WithError(closeErr).Warn("Erro ao fechar planilha")
		}
	}()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("planilha sem abas")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return "", errors.Wrap(err, "lendo linhas da planilha")
	}

	var builder strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				builder.WriteByte('\t')
			}
			// Tabulações dentro de células quebrariam o delimitador
			builder.WriteString(strings.ReplaceAll(cell, "\t", " "))
		}
		builder.WriteByte('\n')
	}

	return builder.String(), nil
}
