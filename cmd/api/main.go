package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drobertson-glitch/revintel/infrastructure/dataset"
	"github.com/drobertson-glitch/revintel/internal/api"
	"github.com/drobertson-glitch/revintel/internal/config"
	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/internal/usecases/aggregating"
	"github.com/drobertson-glitch/revintel/internal/usecases/insighting"
	"github.com/drobertson-glitch/revintel/internal/usecases/normalizing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	normalizer := normalizing.NewService(cfg)
	loader := dataset.NewLoader(normalizer)

	// Carga inicial opcional do dataset configurado
	var initial *domain.Dataset
	if cfg.Dataset.Path != "" {
		logrus.WithField("path", cfg.Dataset.Path).Info("Carregando dataset inicial")

		initial, err = loader.Load(cfg.Dataset.Path)
		if err != nil {
			logrus.WithError(err).Warn("Falha na carga inicial do dataset; o serviço sobe sem dados")
			initial = nil
		}
	}

	store := dataset.NewStore(cfg.Analysis.DefaultGoal, seedRoster(initial, cfg))
	if initial != nil {
		generation := store.Begin()
		if snapshot, ok := store.Replace(generation, initial); ok {
			logrus.WithFields(logrus.Fields{
				"snapshot_id": snapshot.ID,
				"records":     snapshot.Records,
				"dropped":     snapshot.Dropped,
			}).Info("Dataset inicial carregado")
		}
	}

	aggregator := aggregating.NewService(cfg)
	insighter := insighting.NewService(cfg.Analysis.CycleGoalDays)

	server, err := api.New(cfg, store, loader, aggregator, insighter)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// seedRoster constrói o roster inicial a partir dos vendedores distintos do
// dataset, com a quota padrão em cada ano suportado. A camada de apresentação
// ajusta quotas e territórios depois, via API.
func seedRoster(ds *domain.Dataset, cfg *config.Config) *domain.Roster {
	roster := &domain.Roster{Reps: []*domain.Rep{}}
	if ds == nil {
		return roster
	}

	seen := make(map[string]bool)
	for _, deal := range ds.Deals {
		if deal.Rep == "" || seen[deal.Rep] {
			continue
		}
		seen[deal.Rep] = true

		quota := make(map[int]float64)
		for _, year := range cfg.SupportedYears() {
			quota[year] = cfg.Analysis.DefaultQuota
		}

		roster.Reps = append(roster.Reps, &domain.Rep{
			Name:      deal.Rep,
			Territory: deal.Territory,
			Quota:     quota,
		})
	}

	return roster
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
