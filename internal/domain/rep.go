package domain

// Rep representa um vendedor do roster conhecido. A quota é fornecida e
// editada externamente; o núcleo apenas a lê.
type Rep struct {
	Name      string          `json:"name"`
	Territory Territory       `json:"territory"`
	Quota     map[int]float64 `json:"quota"` // ano -> quota
}

// QuotaForYears soma a quota do vendedor nos anos ativos informados
func (r *Rep) QuotaForYears(years []int) float64 {
	total := 0.0
	for _, y := range years {
		total += r.Quota[y]
	}
	return total
}

// Roster é o conjunto de vendedores válidos. Vendedores fora do roster são
// excluídos das análises de desempenho mesmo quando presentes nos dados.
type Roster struct {
	Reps []*Rep `json:"reps"`
}

// Contains indica se o vendedor pertence ao roster
func (r *Roster) Contains(name string) bool {
	return r.Find(name) != nil
}

// Find localiza um vendedor pelo nome
func (r *Roster) Find(name string) *Rep {
	if r == nil {
		return nil
	}
	for _, rep := range r.Reps {
		if rep.Name == name {
			return rep
		}
	}
	return nil
}

// GoalSettings carrega a meta de receita efetiva: um valor calculado por
// padrão e um override manual opcional definido pela camada de apresentação.
type GoalSettings struct {
	Override *float64 `json:"override,omitempty"`
	Default  float64  `json:"default"`
}

// Resolve retorna a meta efetiva, preferindo o override quando definido
func (g GoalSettings) Resolve() float64 {
	if g.Override != nil {
		return *g.Override
	}
	return g.Default
}
