package normalizing

import "strings"

// Campos semânticos reconhecidos no cabeçalho de um export de CRM
const (
	colAccount       = "account"
	colParentAccount = "parent_account"
	colRep           = "rep"
	colName          = "name"
	colStage         = "stage"
	colFiscalPeriod  = "fiscal_period"
	colAge           = "age"
	colCloseDate     = "close_date"
	colCreatedDate   = "created_date"
	colSource        = "source"
	colType          = "type"
	colCurrency      = "currency"
	colVertical      = "vertical"
	colAmount        = "amount"
	colRelationship  = "relationship"
	colLossPrimary   = "loss_primary"
	colLossSecondary = "loss_secondary"
	colLastActivity  = "last_activity"
)

// columnSpec descreve como um campo semântico é localizado no cabeçalho:
// correspondência por substring (case-insensitive), com exclusões para
// desambiguar cabeçalhos parecidos.
type columnSpec struct {
	field    string
	contains []string
	excludes []string
}

// A ordem importa: especificações mais específicas vêm antes das genéricas
// para que "parent account" não seja capturado por "account", nem
// "loss reason sub" pelo motivo de perda primário.
var columnSpecs = []columnSpec{
	{field: colLossSecondary, contains: []string{"loss reason sub", "secondary loss", "loss sub"}},
	{field: colLossPrimary, contains: []string{"loss reason", "lost reason"}, excludes: []string{"sub", "secondary"}},
	{field: colParentAccount, contains: []string{"parent account", "parent"}},
	{field: colRelationship, contains: []string{"customer relationship", "relationship"}},
	{field: colAccount, contains: []string{"account"}},
	{field: colRep, contains: []string{"owner", "sales rep", "rep name"}, excludes: []string{"manager"}},
	{field: colName, contains: []string{"opportunity name", "opportunity", "deal name"}},
	{field: colStage, contains: []string{"stage"}},
	{field: colFiscalPeriod, contains: []string{"fiscal period", "fiscal"}},
	{field: colCloseDate, contains: []string{"close date", "closed date"}},
	{field: colCreatedDate, contains: []string{"created date", "create date"}},
	{field: colLastActivity, contains: []string{"activity"}},
	{field: colAge, contains: []string{"age"}},
	{field: colSource, contains: []string{"lead source", "source"}},
	{field: colCurrency, contains: []string{"currency"}},
	{field: colVertical, contains: []string{"vertical", "industry"}},
	{field: colAmount, contains: []string{"amount"}},
	{field: colType, contains: []string{"type"}},
}

// resolveColumns mapeia cada campo semântico para a posição da coluna no
// cabeçalho. Campos não encontrados ficam ausentes do mapa.
func resolveColumns(header []string) map[string]int {
	resolved := make(map[string]int, len(columnSpecs))

	for idx, raw := range header {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}

		for _, spec := range columnSpecs {
			if _, taken := resolved[spec.field]; taken {
				continue
			}
			if !matchesSpec(token, spec) {
				continue
			}
			resolved[spec.field] = idx
			break
		}
	}

	return resolved
}

func matchesSpec(token string, spec columnSpec) bool {
	for _, ex := range spec.excludes {
		if strings.Contains(token, ex) {
			return false
		}
	}
	for _, sub := range spec.contains {
		if strings.Contains(token, sub) {
			return true
		}
	}
	return false
}
