package normalizing

import (
	"strings"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

// keywordRule mapeia palavras-chave contidas no valor bruto para um valor
// canônico. As regras são avaliadas em ordem fixa, então a primeira que
// casar decide.
type keywordRule struct {
	keywords []string
	value    string
}

// categoryNormalizer normaliza um campo categórico: valores já canônicos
// passam direto, o restante desce pela lista ordenada de regras até o
// balde padrão.
type categoryNormalizer struct {
	canonical []string
	rules     []keywordRule
	fallback  string
}

// Normalize resolve o valor bruto para o conjunto canônico do campo
func (n categoryNormalizer) Normalize(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return n.fallback
	}

	for _, canonical := range n.canonical {
		if strings.EqualFold(value, canonical) {
			return canonical
		}
	}

	lower := strings.ToLower(value)
	for _, rule := range n.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.value
			}
		}
	}

	return n.fallback
}

// Verticais canônicas; balde padrão "Other"
var verticalNormalizer = categoryNormalizer{
	canonical: []string{
		"Technology", "Healthcare", "Financial Services", "Manufacturing",
		"Retail", "Education", "Government", "Other",
	},
	rules: []keywordRule{
		{keywords: []string{"tech", "software", "saas", "cloud"}, value: "Technology"},
		{keywords: []string{"health", "medical", "pharma", "bio", "hospital"}, value: "Healthcare"},
		{keywords: []string{"financ", "bank", "insur", "capital"}, value: "Financial Services"},
		{keywords: []string{"manufact", "industrial", "factory"}, value: "Manufacturing"},
		{keywords: []string{"retail", "commerce", "consumer"}, value: "Retail"},
		{keywords: []string{"edu", "school", "univers", "college"}, value: "Education"},
		{keywords: []string{"gov", "public sector", "municipal", "federal"}, value: "Government"},
	},
	fallback: "Other",
}

// Origens de lead canônicas; balde padrão "Other"
var sourceNormalizer = categoryNormalizer{
	canonical: []string{"Inbound", "Outbound", "Referral", "Partner", "Event", "Other"},
	rules: []keywordRule{
		{keywords: []string{"inbound", "web", "marketing", "organic"}, value: "Inbound"},
		{keywords: []string{"outbound", "cold", "prospect", "sdr"}, value: "Outbound"},
		{keywords: []string{"refer"}, value: "Referral"},
		{keywords: []string{"partner", "channel", "alliance"}, value: "Partner"},
		{keywords: []string{"event", "conference", "trade show", "webinar"}, value: "Event"},
	},
	fallback: "Other",
}

// Tipos de negócio canônicos; balde padrão "New Business"
var typeNormalizer = categoryNormalizer{
	canonical: []string{
		string(domain.TypeNewBusiness), string(domain.TypeExpansion),
		string(domain.TypeUpsell), string(domain.TypeRenewal),
	},
	rules: []keywordRule{
		{keywords: []string{"renew"}, value: string(domain.TypeRenewal)},
		{keywords: []string{"upsell", "up-sell", "upgrade"}, value: string(domain.TypeUpsell)},
		{keywords: []string{"expan", "add-on", "addon", "cross-sell"}, value: string(domain.TypeExpansion)},
		{keywords: []string{"new"}, value: string(domain.TypeNewBusiness)},
	},
	fallback: string(domain.TypeNewBusiness),
}

// NormalizeVertical expõe a normalização de vertical para as heurísticas
func NormalizeVertical(raw string) string {
	return verticalNormalizer.Normalize(raw)
}

// NormalizeSource expõe a normalização de origem de lead
func NormalizeSource(raw string) string {
	return sourceNormalizer.Normalize(raw)
}

// NormalizeDealType expõe a normalização de tipo de negócio
func NormalizeDealType(raw string) domain.DealType {
	return domain.DealType(typeNormalizer.Normalize(raw))
}
