package normalizing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drobertson-glitch/revintel/internal/config"
	"github.com/drobertson-glitch/revintel/internal/domain"
)

func testService() *Service {
	cfg := &config.Config{}
	cfg.Analysis.MinYear = 2022
	cfg.Analysis.MaxYear = 2026

	return NewService(cfg).WithClock(func() time.Time {
		return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	})
}

const sampleHeader = "Opportunity Name,Account Name,Owner,Stage,Amount,Currency,Close Date,Industry,Lead Source,Deal Type,Loss Reason,Customer Relationship"

func TestParseText(t *testing.T) {
	service := testService()

	tests := []struct {
		name     string
		raw      string
		wantErr  error
		validate func(t *testing.T, ds *domain.Dataset)
	}{
		{
			name: "Deve normalizar registros ganhos e perdidos com território pela moeda",
			raw: sampleHeader + "\n" +
				`Acme Renewal,Acme Corp,Alice,Closed Won,"$120,000",USD,2024-02-10,Technology,Outbound,Renewal,,Existing` + "\n" +
				`Northwind Deal,Northwind,Bob,Closed Lost,50000,CAD,2024-08-05,Healthcare,Inbound,New Business,Price too high,New`,
			validate: func(t *testing.T, ds *domain.Dataset) {
				require.Len(t, ds.Deals, 2)
				assert.Equal(t, 0, ds.Dropped)

				won := ds.Deals[0]
				assert.Equal(t, "deal-0001", won.ID)
				assert.Equal(t, domain.StageClosedWon, won.Stage)
				assert.Equal(t, "Acme Corp", won.Account)
				assert.Equal(t, domain.TerritoryUS, won.Territory)
				assert.Equal(t, 120000.0, won.Amount)
				assert.Equal(t, 2024, won.Year)
				assert.Equal(t, 1, won.Quarter)
				assert.Equal(t, 2, won.Month)
				assert.Equal(t, domain.TypeRenewal, won.Type)
				assert.Equal(t, "Technology", won.Vertical)
				assert.Equal(t, "Outbound", won.Source)
				assert.Empty(t, won.LossReason)
				assert.True(t, won.KeyAccount)

				lost := ds.Deals[1]
				assert.Equal(t, domain.StageClosedLost, lost.Stage)
				assert.Equal(t, domain.TerritoryCanada, lost.Territory)
				assert.Equal(t, 3, lost.Quarter)
				assert.Equal(t, "Price too high", lost.LossReason)
				assert.False(t, lost.KeyAccount)
			},
		},
		{
			name: "Deve descartar estágios 0 e 1 e manter estágios numerados a partir de 2",
			raw: sampleHeader + "\n" +
				`Early Deal,Acme Corp,Alice,1. Discovery,10000,USD,2024-03-01,Technology,Outbound,New Business,,New` + "\n" +
				`Qualified Deal,Acme Corp,Alice,2. Qualification,20000,USD,2024-03-01,Technology,Outbound,New Business,,New`,
			validate: func(t *testing.T, ds *domain.Dataset) {
				require.Len(t, ds.Deals, 1)
				assert.Equal(t, 1, ds.Dropped)
				assert.Equal(t, domain.StagePipeline, ds.Deals[0].Stage)
				assert.Equal(t, 0.2, ds.Deals[0].Probability)
			},
		},
		{
			name: "Deve respeitar aspas com vírgula e escape de aspas duplicadas",
			raw: sampleHeader + "\n" +
				`"Deal ""Big"", phase 2","Acme, Inc",Alice,Closed Won,"$1,500",USD,2024-02-10,Technology,Outbound,New Business,,New`,
			validate: func(t *testing.T, ds *domain.Dataset) {
				require.Len(t, ds.Deals, 1)
				assert.Equal(t, `Deal "Big", phase 2`, ds.Deals[0].Name)
				assert.Equal(t, "Acme, Inc", ds.Deals[0].Account)
				assert.Equal(t, 1500.0, ds.Deals[0].Amount)
			},
		},
		{
			name: "Deve aceitar delimitador de tabulação",
			raw: "Opportunity Name\tAccount Name\tOwner\tStage\tAmount\tCurrency\tClose Date\n" +
				"Tab Deal\tAcme Corp\tAlice\tClosed Won\t5000\tUSD\t2024-02-10",
			validate: func(t *testing.T, ds *domain.Dataset) {
				require.Len(t, ds.Deals, 1)
				assert.Equal(t, 5000.0, ds.Deals[0].Amount)
			},
		},
		{
			name: "Deve descartar anos fora do intervalo suportado",
			raw: sampleHeader + "\n" +
				`Old Deal,Acme Corp,Alice,Closed Won,10000,USD,2019-02-10,Technology,Outbound,New Business,,New`,
			wantErr: ErrNoUsableData,
		},
		{
			name:    "Deve falhar quando só existe cabeçalho",
			raw:     sampleHeader,
			wantErr: ErrNoUsableData,
		},
		{
			name: "Deve falhar quando nenhuma linha sobrevive",
			raw: sampleHeader + "\n" +
				`,,,,,,,,,,,` + "\n" +
				`Unstaged,Acme Corp,Alice,Negotiation,10000,USD,2024-02-10,Technology,Outbound,New Business,,New`,
			wantErr: ErrNoUsableData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := service.ParseText(tt.raw)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, ds)
		})
	}
}

func TestParseTextIdempotente(t *testing.T) {
	service := testService()

	raw := sampleHeader + "\n" +
		`Acme Renewal,Acme Corp,Alice,Closed Won,"$120,000",USD,2024-02-10,Technology,Outbound,Renewal,,Existing` + "\n" +
		`Northwind Deal,Northwind,Bob,Closed Lost,50000,CAD,2024-08-05,Healthcare,Inbound,New Business,Price too high,New`

	first, err := service.ParseText(raw)
	require.NoError(t, err)

	second, err := service.ParseText(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassifyStage(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantStage domain.Stage
		wantNum   int
		wantOK    bool
	}{
		{name: "Closed won exato", raw: "Closed Won", wantStage: domain.StageClosedWon, wantOK: true},
		{name: "Closed lost com espaços", raw: "  closed lost ", wantStage: domain.StageClosedLost, wantOK: true},
		{name: "Estágio numerado vira pipeline", raw: "3. Proposal", wantStage: domain.StagePipeline, wantNum: 3, wantOK: true},
		{name: "Estágio 0 é descartado", raw: "0. Lead", wantOK: false},
		{name: "Estágio 1 é descartado", raw: "1. Discovery", wantOK: false},
		{name: "Número sem ponto é descartado", raw: "3 Proposal", wantOK: false},
		{name: "Rótulo livre é descartado", raw: "Negotiation", wantOK: false},
		{name: "Vazio é descartado", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, num, ok := classifyStage(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStage, stage)
				assert.Equal(t, tt.wantNum, num)
			}
		})
	}
}

func TestStageProbability(t *testing.T) {
	assert.Equal(t, 0.3, stageProbability(domain.StagePipeline, 3))
	assert.Equal(t, 0.9, stageProbability(domain.StagePipeline, 12)) // teto
	assert.Equal(t, 0.5, stageProbability(domain.StagePipeline, 0))
	assert.Equal(t, 0.0, stageProbability(domain.StageClosedWon, 3))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "Valor com máscara monetária", raw: "$1,234.56", want: 1234.56},
		{name: "Valor simples", raw: "5000", want: 5000},
		{name: "Valor negativo vira zero", raw: "-100", want: 0},
		{name: "Lixo vira zero", raw: "n/a", want: 0},
		{name: "Vazio vira zero", raw: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAmount(tt.raw))
		})
	}
}

func TestParseFiscalPeriod(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantYear    int
		wantQuarter int
		wantOK      bool
	}{
		{name: "FY com trimestre", raw: "FY2024 Q3", wantYear: 2024, wantQuarter: 3, wantOK: true},
		{name: "Ano isolado", raw: "2023", wantYear: 2023, wantOK: true},
		{name: "Trimestre antes do ano", raw: "Q1-2025", wantYear: 2025, wantQuarter: 1, wantOK: true},
		{name: "Sem ano não resolve", raw: "Q2", wantOK: false},
		{name: "Vazio não resolve", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, quarter, ok := parseFiscalPeriod(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantYear, year)
				assert.Equal(t, tt.wantQuarter, quarter)
			}
		})
	}
}

func TestCombineLossReason(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		secondary string
		want      string
	}{
		{name: "Primário e secundário", primary: "Price", secondary: "Competitor cheaper", want: "Price: Competitor cheaper"},
		{name: "Apenas primário", primary: "Price", want: "Price"},
		{name: "Apenas secundário", secondary: "Competitor cheaper", want: "Competitor cheaper"},
		{name: "Ambos vazios", want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, combineLossReason(tt.primary, tt.secondary))
		})
	}
}

func TestResolveColumns(t *testing.T) {
	header := []string{
		"Loss Reason Sub", "Loss Reason", "Parent Account", "Account Name",
		"Owner", "Account Manager", "Stage", "Amount",
	}

	columns := resolveColumns(header)

	assert.Equal(t, 0, columns[colLossSecondary])
	assert.Equal(t, 1, columns[colLossPrimary])
	assert.Equal(t, 2, columns[colParentAccount])
	assert.Equal(t, 3, columns[colAccount])
	assert.Equal(t, 4, columns[colRep])
	assert.NotContains(t, columns, colRelationship)
	assert.Equal(t, 6, columns[colStage])
	assert.Equal(t, 7, columns[colAmount])
}
