package domain

import "time"

// PeriodToken é um seletor de janela de tempo aplicado sobre o conjunto
// canônico. MTD/QTD/YTD/All são modos exclusivos entre si; Q1..Q4 são
// combináveis entre si.
type PeriodToken string

const (
	PeriodMTD PeriodToken = "MTD"
	PeriodQTD PeriodToken = "QTD"
	PeriodYTD PeriodToken = "YTD"
	PeriodAll PeriodToken = "All"
	PeriodQ1  PeriodToken = "Q1"
	PeriodQ2  PeriodToken = "Q2"
	PeriodQ3  PeriodToken = "Q3"
	PeriodQ4  PeriodToken = "Q4"
)

// IsQuarter indica se o token é um trimestre absoluto
func (p PeriodToken) IsQuarter() bool {
	switch p {
	case PeriodQ1, PeriodQ2, PeriodQ3, PeriodQ4:
		return true
	}
	return false
}

// QuarterNumber retorna o número do trimestre (0 se o token não for trimestre)
func (p PeriodToken) QuarterNumber() int {
	switch p {
	case PeriodQ1:
		return 1
	case PeriodQ2:
		return 2
	case PeriodQ3:
		return 3
	case PeriodQ4:
		return 4
	}
	return 0
}

// FilterOptions reúne os filtros independentes aplicados pelo motor de
// filtragem. Lista vazia em uma dimensão significa sem restrição naquela
// dimensão.
type FilterOptions struct {
	Territories   []Territory   `json:"territories,omitempty"`
	Sources       []string      `json:"sources,omitempty"`
	Types         []DealType    `json:"types,omitempty"`
	Verticals     []string      `json:"verticals,omitempty"`
	Relationships []string      `json:"relationships,omitempty"`
	Years         []int         `json:"years"`
	Periods       []PeriodToken `json:"periods"`

	// AsOf ancora os tokens relativos (MTD/QTD/YTD). A camada chamadora o
	// preenche com a data atual quando não informado, mantendo o resultado
	// reprodutível em testes.
	AsOf time.Time `json:"as_of"`
}
