package domain

// Estágios canônicos de uma oportunidade
type Stage string

const (
	StagePipeline   Stage = "Pipeline"
	StageClosedWon  Stage = "Closed Won"
	StageClosedLost Stage = "Closed Lost"
)

// Territórios suportados
type Territory string

const (
	TerritoryUS     Territory = "US"
	TerritoryCanada Territory = "Canada"
)

// Tipos de negócio canônicos
type DealType string

const (
	TypeNewBusiness DealType = "New Business"
	TypeExpansion   DealType = "Expansion"
	TypeUpsell      DealType = "Upsell"
	TypeRenewal     DealType = "Renewal"
)

// KeyAccountThreshold define o valor a partir do qual uma oportunidade
// marca a conta como conta-chave
const KeyAccountThreshold = 100_000.0

// Deal representa uma oportunidade de venda canônica. É construída uma única
// vez pela normalização e nunca é alterada depois disso.
type Deal struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Account        string    `json:"account"`
	Rep            string    `json:"rep"`
	Territory      Territory `json:"territory"`
	Source         string    `json:"source"`
	Type           DealType  `json:"type"`
	Stage          Stage     `json:"stage"`
	Amount         float64   `json:"amount"`
	Year           int       `json:"year"`
	Quarter        int       `json:"quarter"`
	Month          int       `json:"month"`
	LossReason     string    `json:"loss_reason,omitempty"` // Preenchido apenas para Closed Lost
	Vertical       string    `json:"vertical"`
	AgeDays        int       `json:"age_days"`
	InactivityDays int       `json:"inactivity_days"`
	Probability    float64   `json:"probability"`
	Relationship   string    `json:"relationship"`
	KeyAccount     bool      `json:"key_account"`
}

// IsClosed indica se a oportunidade já foi decidida (ganha ou perdida)
func (d *Deal) IsClosed() bool {
	return d.Stage == StageClosedWon || d.Stage == StageClosedLost
}

// QuarterOfMonth calcula o trimestre fiscal de um mês (1..12)
func QuarterOfMonth(month int) int {
	if month < 1 {
		return 1
	}
	if month > 12 {
		return 4
	}
	return (month + 2) / 3
}

// Dataset é o resultado completo de uma ingestão: os registros canônicos mais
// o razão de receita por conta/ano quando fornecido pelo formato compacto.
// Quando Ledger é nil, a análise de retenção o deriva dos próprios registros.
type Dataset struct {
	Deals   []*Deal        `json:"deals"`
	Ledger  *RevenueLedger `json:"ledger,omitempty"`
	Dropped int            `json:"dropped"`
}

// RevenueLedger mapeia conta -> ano -> receita ganha acumulada.
// Usado exclusivamente pela análise de retenção.
type RevenueLedger struct {
	Revenue map[string]map[int]float64 `json:"revenue"`
}

// NewRevenueLedger cria um razão vazio
func NewRevenueLedger() *RevenueLedger {
	return &RevenueLedger{Revenue: make(map[string]map[int]float64)}
}

// Add acumula receita de uma conta em um ano
func (l *RevenueLedger) Add(account string, year int, amount float64) {
	if l.Revenue == nil {
		l.Revenue = make(map[string]map[int]float64)
	}
	if l.Revenue[account] == nil {
		l.Revenue[account] = make(map[int]float64)
	}
	l.Revenue[account][year] += amount
}

// Get retorna a receita de uma conta em um ano (0 se ausente)
func (l *RevenueLedger) Get(account string, year int) float64 {
	if l == nil || l.Revenue == nil {
		return 0
	}
	return l.Revenue[account][year]
}

// FoldLedger deriva o razão conta/ano a partir dos registros ganhos
func FoldLedger(deals []*Deal) *RevenueLedger {
	ledger := NewRevenueLedger()
	for _, d := range deals {
		if d.Stage == StageClosedWon {
			ledger.Add(d.Account, d.Year, d.Amount)
		}
	}
	return ledger
}
