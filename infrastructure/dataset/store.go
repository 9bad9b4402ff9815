package dataset

import (
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

// Snapshot é o dataset canônico vigente, identificado por um ID curto
type Snapshot struct {
	ID       string          `json:"id"`
	Dataset  *domain.Dataset `json:"-"`
	Records  int             `json:"records"`
	Dropped  int             `json:"dropped"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Store guarda o snapshot canônico em memória junto com os parâmetros
// externos editáveis (meta de receita e roster de vendedores). Uma nova
// ingestão substitui integralmente o snapshot anterior; uma ingestão antiga
// que termine depois de ser superada é descartada via contador de geração.
type Store struct {
	mu         sync.RWMutex
	snapshot   *Snapshot
	generation uint64
	goals      domain.GoalSettings
	roster     *domain.Roster
}

// NewStore cria o armazenamento com a meta padrão e o roster inicial
func NewStore(defaultGoal float64, roster *domain.Roster) *Store {
	if roster == nil {
		roster = &domain.Roster{Reps: []*domain.Rep{}}
	}
	return &Store{
		goals:  domain.GoalSettings{Default: defaultGoal},
		roster: roster,
	}
}

// Begin inicia uma ingestão e devolve o token de geração que deve ser
// apresentado no Replace
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	return s.generation
}

// Replace instala o novo snapshot se a geração ainda for a vigente. Retorna
// falso quando a ingestão foi superada por outra mais recente; nesse caso o
// resultado é descartado.
func (s *Store) Replace(generation uint64, ds *domain.Dataset) (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		logrus.WithFields(logrus.Fields{
			"generation": generation,
			"current":    s.generation,
		}).Warn("Ingestão superada descartada")
		return nil, false
	}

	id, err := gonanoid.New(10)
	if err != nil {
		// gonanoid só falha sem entropia do sistema
		id = time.Now().Format("20060102150405")
	}

	s.snapshot = &Snapshot{
		ID:       id,
		Dataset:  ds,
		Records:  len(ds.Deals),
		Dropped:  ds.Dropped,
		LoadedAt: time.Now(),
	}

	return s.snapshot, true
}

// Current devolve o snapshot vigente (nil, false sem dataset carregado)
func (s *Store) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

// Goals devolve a configuração de meta vigente
func (s *Store) Goals() domain.GoalSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals
}

// SetGoalOverride define ou limpa o override manual da meta
func (s *Store) SetGoalOverride(override *float64) domain.GoalSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals.Override = override
	return s.goals
}

// Roster devolve o roster de vendedores vigente
func (s *Store) Roster() *domain.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster
}

// SetRepQuota atualiza a quota de um vendedor do roster para um ano. Cria o
// vendedor quando ausente, no território informado.
func (s *Store) SetRepQuota(name string, territory domain.Territory, year int, quota float64) *domain.Rep {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep := s.roster.Find(name)
	if rep == nil {
		rep = &domain.Rep{Name: name, Territory: territory, Quota: map[int]float64{}}
		s.roster = &domain.Roster{Reps: append(s.roster.Reps, rep)}
	}
	if rep.Quota == nil {
		rep.Quota = map[int]float64{}
	}
	rep.Quota[year] = quota

	return rep
}
