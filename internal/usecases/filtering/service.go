// Package filtering aplica as listas de permissão categóricas e os
// predicados de janela de tempo sobre o conjunto canônico. A filtragem
// preserva a ordem dos registros e nunca os altera.
package filtering

import (
	"time"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

// NormalizeOptions garante as regras de exclusividade dos tokens de período:
// selecionar um modo singleton (MTD/QTD/YTD/All) limpa os trimestres e
// vice-versa; sem tokens, o padrão é All. O AsOf vazio é ancorado no relógio
// informado.
func NormalizeOptions(opts domain.FilterOptions, now time.Time) domain.FilterOptions {
	if opts.AsOf.IsZero() {
		opts.AsOf = now
	}

	if len(opts.Periods) == 0 {
		opts.Periods = []domain.PeriodToken{domain.PeriodAll}
		return opts
	}

	// O último token não-trimestre vence; se apenas trimestres foram
	// selecionados, todos permanecem ativos
	var quarters []domain.PeriodToken
	var singleton domain.PeriodToken
	for _, token := range opts.Periods {
		if token.IsQuarter() {
			quarters = append(quarters, token)
		} else {
			singleton = token
		}
	}

	if singleton != "" {
		opts.Periods = []domain.PeriodToken{singleton}
	} else {
		opts.Periods = quarters
	}

	return opts
}

// Apply devolve o subconjunto estável dos registros que passam em todas as
// dimensões discretas (conjunção), pertencem aos anos ativos e casam com ao
// menos um token de período ativo (disjunção).
func Apply(deals []*domain.Deal, opts domain.FilterOptions) []*domain.Deal {
	filtered := make([]*domain.Deal, 0, len(deals))

	for _, deal := range deals {
		if !Matches(deal, opts) {
			continue
		}
		filtered = append(filtered, deal)
	}

	return filtered
}

// Matches avalia um único registro contra os filtros ativos
func Matches(deal *domain.Deal, opts domain.FilterOptions) bool {
	if !containsTerritory(opts.Territories, deal.Territory) {
		return false
	}
	if !containsString(opts.Sources, deal.Source) {
		return false
	}
	if !containsType(opts.Types, deal.Type) {
		return false
	}
	if !containsString(opts.Verticals, deal.Vertical) {
		return false
	}
	if !containsString(opts.Relationships, deal.Relationship) {
		return false
	}
	if !containsYear(opts.Years, deal.Year) {
		return false
	}

	return matchesAnyPeriod(deal, opts)
}

func matchesAnyPeriod(deal *domain.Deal, opts domain.FilterOptions) bool {
	if len(opts.Periods) == 0 {
		return true
	}

	for _, token := range opts.Periods {
		if matchesPeriod(deal, token, opts.AsOf) {
			return true
		}
	}
	return false
}

// matchesPeriod compara o ano/mês próprios do registro com a data de
// referência. Os tokens relativos não atravessam o ano do registro.
func matchesPeriod(deal *domain.Deal, token domain.PeriodToken, asOf time.Time) bool {
	switch token {
	case domain.PeriodAll:
		return true
	case domain.PeriodMTD:
		return deal.Year == asOf.Year() && deal.Month == int(asOf.Month())
	case domain.PeriodQTD:
		return deal.Year == asOf.Year() && deal.Quarter == domain.QuarterOfMonth(int(asOf.Month()))
	case domain.PeriodYTD:
		return deal.Year == asOf.Year() && deal.Month <= int(asOf.Month())
	}

	if token.IsQuarter() {
		return deal.Quarter == token.QuarterNumber()
	}

	return false
}

func containsTerritory(list []domain.Territory, value domain.Territory) bool {
	if len(list) == 0 {
		return true
	}
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func containsType(list []domain.DealType, value domain.DealType) bool {
	if len(list) == 0 {
		return true
	}
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func containsString(list []string, value string) bool {
	if len(list) == 0 {
		return true
	}
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func containsYear(list []int, value int) bool {
	if len(list) == 0 {
		return true
	}
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// PriorYearOptions deriva a variante "ano anterior" dos filtros, decrementando
// cada ano ativo em um; usada pelos agregadores para comparações YoY
func PriorYearOptions(opts domain.FilterOptions) domain.FilterOptions {
	prior := opts
	prior.Years = make([]int, len(opts.Years))
	for i, y := range opts.Years {
		prior.Years[i] = y - 1
	}
	return prior
}
