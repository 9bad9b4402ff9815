package aggregating

import (
	"sort"

	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/pkg/utils"
)

// AccountConcentration ranqueia as contas por receita ganha no conjunto
// filtrado, recorta o top-N e calcula a série de concentração: para cada ano
// suportado, a fração da receita total daquele ano vinda das contas do top-N
// atual. A coorte do top-N é fixa no presente, não recalculada por ano.
func AccountConcentration(deals, prior []*domain.Deal, ledger *domain.RevenueLedger, limit int, supportedYears []int) *domain.AccountConcentration {
	type accountFold struct {
		revenue    float64
		pipeline   float64
		keyAccount bool
	}

	folds := make(map[string]*accountFold)
	totalRevenue := 0.0

	for _, deal := range deals {
		fold, ok := folds[deal.Account]
		if !ok {
			fold = &accountFold{}
			folds[deal.Account] = fold
		}

		switch deal.Stage {
		case domain.StageClosedWon:
			fold.revenue += deal.Amount
			totalRevenue += deal.Amount
		case domain.StagePipeline:
			fold.pipeline += deal.Amount
		}
		if deal.KeyAccount {
			fold.keyAccount = true
		}
	}

	priorRevenue := make(map[string]float64)
	for _, deal := range prior {
		if deal.Stage == domain.StageClosedWon {
			priorRevenue[deal.Account] += deal.Amount
		}
	}

	accounts := make([]*domain.TopAccount, 0, len(folds))
	for name, fold := range folds {
		if fold.revenue == 0 {
			continue
		}

		account := &domain.TopAccount{
			Account:       name,
			Revenue:       fold.revenue,
			PipelineValue: fold.pipeline,
			RevenueShare:  utils.RoundWithTwoDecimalPlace(utils.SafeRatio(fold.revenue, totalRevenue)),
			KeyAccount:    fold.keyAccount,
		}
		if base := priorRevenue[name]; base > 0 {
			change := utils.RoundWithTwoDecimalPlace((fold.revenue - base) / base)
			account.YoYChange = &change
		}

		accounts = append(accounts, account)
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].Revenue != accounts[j].Revenue {
			return accounts[i].Revenue > accounts[j].Revenue
		}
		return accounts[i].Account < accounts[j].Account
	})

	if len(accounts) > limit {
		accounts = accounts[:limit]
	}

	cohort := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		cohort[account.Account] = struct{}{}
	}

	trend := make([]*domain.ConcentrationPoint, 0, len(supportedYears))
	for _, year := range supportedYears {
		yearTotal := 0.0
		cohortTotal := 0.0

		if ledger != nil {
			for account, byYear := range ledger.Revenue {
				revenue := byYear[year]
				yearTotal += revenue
				if _, in := cohort[account]; in {
					cohortTotal += revenue
				}
			}
		}

		// Ano sem receita reporta 0, nunca falha de divisão
		trend = append(trend, &domain.ConcentrationPoint{
			Year:  year,
			Share: utils.RoundWithTwoDecimalPlace(utils.SafeRatio(cohortTotal, yearTotal)),
		})
	}

	return &domain.AccountConcentration{Accounts: accounts, Trend: trend}
}
