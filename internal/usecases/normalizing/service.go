// Package normalizing transforma dados brutos de vendas (texto exportado de
// CRM ou dataset compacto pré-codificado) na lista canônica de oportunidades
// consumida pelo restante do pipeline.
package normalizing

import (
	"time"

	"github.com/pkg/errors"

	"github.com/drobertson-glitch/revintel/internal/config"
	"github.com/drobertson-glitch/revintel/internal/domain"
)

// ErrNoUsableData indica que a ingestão terminou sem nenhum registro
// aproveitável. Linhas malformadas nunca geram erro individualmente; apenas
// o resultado vazio é sinalizado ao chamador.
var ErrNoUsableData = errors.New("nenhum registro aproveitável no dataset")

// Normalizer define os dois caminhos de ingestão. Ambos produzem o mesmo
// alvo canônico (domain.Dataset) para impedir divergência de esquema entre
// os formatos de entrada.
type Normalizer interface {
	ParseText(raw string) (*domain.Dataset, error)
	DecodeCompact(data []byte) (*domain.Dataset, error)
}

// Service implementa a interface Normalizer
type Service struct {
	minYear int
	maxYear int
	now     func() time.Time
}

// NewService cria o serviço de normalização com o intervalo de anos fiscais
// suportado pela configuração
func NewService(cfg *config.Config) *Service {
	return &Service{
		minYear: cfg.Analysis.MinYear,
		maxYear: cfg.Analysis.MaxYear,
		now:     time.Now,
	}
}

// WithClock substitui o relógio usado nos fallbacks de data. Usado em testes
// para manter a normalização determinística.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// yearSupported aplica o filtro de intervalo de anos comum aos dois caminhos
func (s *Service) yearSupported(year int) bool {
	return year >= s.minYear && year <= s.maxYear
}
