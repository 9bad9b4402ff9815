package normalizing

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Posições das colunas na tupla de uma linha do formato compacto
const (
	rowRep = iota
	rowAccount
	rowTerritory
	rowSource
	rowType
	rowStage
	rowAmount
	rowYear
	rowQuarter
	rowMonth
	rowLossReason
	rowVertical
	rowAge
	rowRelationship

	rowWidth = 14
)

// lossReasonNone é o sentinela de motivo de perda ausente em uma linha
const lossReasonNone = -1

// Enumerações fixas do formato compacto, na ordem dos índices codificados
var (
	compactStages      = []domain.Stage{domain.StagePipeline, domain.StageClosedWon, domain.StageClosedLost}
	compactTypes       = []domain.DealType{domain.TypeNewBusiness, domain.TypeExpansion, domain.TypeUpsell, domain.TypeRenewal}
	compactTerritories = []domain.Territory{domain.TerritoryUS, domain.TerritoryCanada}
)

// compactDataset é o envelope decodificado do formato compacto: tabelas de
// nomes paralelas, as tuplas de linhas e, opcionalmente, o razão de receita
// conta/ano já agregado.
type compactDataset struct {
	Reps          []string                   `json:"reps"`
	Accounts      []string                   `json:"accounts"`
	Sources       []string                   `json:"sources"`
	Verticals     []string                   `json:"verticals"`
	LossReasons   []string                   `json:"loss_reasons"`
	Relationships []string                   `json:"relationships"`
	Rows          [][]float64                `json:"rows"`
	Ledger        map[string]map[int]float64 `json:"ledger,omitempty"`
}

// DecodeCompact decodifica o dataset compacto produzindo os mesmos registros
// canônicos do caminho de texto, inclusive aplicando o mesmo filtro de
// intervalo de anos. Linhas com índices fora das tabelas são descartadas.
func (s *Service) DecodeCompact(data []byte) (*domain.Dataset, error) {
	var encoded compactDataset
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, errors.Wrap(err, "decodificando dataset compacto")
	}

	deals := make([]*domain.Deal, 0, len(encoded.Rows))
	dropped := 0

	for _, row := range encoded.Rows {
		deal, ok := s.decodeRow(&encoded, row, len(deals))
		if !ok {
			dropped++
			continue
		}
		deals = append(deals, deal)
	}

	logrus.WithFields(logrus.Fields{
		"parsed":  len(deals),
		"dropped": dropped,
	}).Debug("Decodificação do dataset compacto concluída")

	if len(deals) == 0 {
		return nil, ErrNoUsableData
	}

	dataset := &domain.Dataset{Deals: deals, Dropped: dropped}
	if len(encoded.Ledger) > 0 {
		dataset.Ledger = &domain.RevenueLedger{Revenue: encoded.Ledger}
	}

	return dataset, nil
}

func (s *Service) decodeRow(encoded *compactDataset, row []float64, seq int) (*domain.Deal, bool) {
	if len(row) < rowWidth {
		return nil, false
	}

	rep, ok := lookup(encoded.Reps, row[rowRep])
	if !ok {
		return nil, false
	}
	account, ok := lookup(encoded.Accounts, row[rowAccount])
	if !ok {
		return nil, false
	}
	source, ok := lookup(encoded.Sources, row[rowSource])
	if !ok {
		return nil, false
	}
	vertical, ok := lookup(encoded.Verticals, row[rowVertical])
	if !ok {
		return nil, false
	}
	relationship, ok := lookup(encoded.Relationships, row[rowRelationship])
	if !ok {
		relationship = "Unknown"
	}

	stageIdx := int(row[rowStage])
	if stageIdx < 0 || stageIdx >= len(compactStages) {
		return nil, false
	}
	stage := compactStages[stageIdx]

	typeIdx := int(row[rowType])
	if typeIdx < 0 || typeIdx >= len(compactTypes) {
		return nil, false
	}

	territoryIdx := int(row[rowTerritory])
	if territoryIdx < 0 || territoryIdx >= len(compactTerritories) {
		return nil, false
	}

	year := int(row[rowYear])
	if !s.yearSupported(year) {
		return nil, false
	}

	month := int(row[rowMonth])
	if month < 1 || month > 12 {
		month = 1
	}
	quarter := int(row[rowQuarter])
	if quarter != domain.QuarterOfMonth(month) {
		quarter = domain.QuarterOfMonth(month)
	}

	amount := row[rowAmount]
	if amount < 0 {
		amount = 0
	}

	lossReason := ""
	if stage == domain.StageClosedLost {
		lossReason = "Unknown"
		if idx := int(row[rowLossReason]); idx != lossReasonNone {
			if reason, found := lookup(encoded.LossReasons, row[rowLossReason]); found {
				lossReason = reason
			}
		}
	}

	age := int(row[rowAge])
	if age < 0 {
		age = 0
	}

	dealType := compactTypes[typeIdx]

	return &domain.Deal{
		ID:           fmt.Sprintf("deal-%04d", seq+1),
		Name:         fmt.Sprintf("%s - %s", account, dealType),
		Account:      account,
		Rep:          rep,
		Territory:    compactTerritories[territoryIdx],
		Source:       NormalizeSource(source),
		Type:         dealType,
		Stage:        stage,
		Amount:       amount,
		Year:         year,
		Quarter:      quarter,
		Month:        month,
		LossReason:   lossReason,
		Vertical:     NormalizeVertical(vertical),
		AgeDays:      age,
		Probability:  compactProbability(stage),
		Relationship: relationship,
		KeyAccount:   amount > domain.KeyAccountThreshold,
	}, true
}

func compactProbability(stage domain.Stage) float64 {
	if stage == domain.StagePipeline {
		return 0.5
	}
	return 0
}

func lookup(table []string, rawIdx float64) (string, bool) {
	idx := int(rawIdx)
	if idx < 0 || idx >= len(table) {
		return "", false
	}
	return table[idx], true
}
