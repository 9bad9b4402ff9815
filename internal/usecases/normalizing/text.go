package normalizing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

// Quantidade mínima de campos resolvidos e preenchidos para uma linha ser
// aproveitada
const minResolvedFields = 5

// ParseText ingere um export delimitado por vírgula ou tabulação. Linhas
// malformadas são descartadas silenciosamente e contadas; o erro
// ErrNoUsableData só é devolvido quando nenhum registro sobrevive.
func (s *Service) ParseText(raw string) (*domain.Dataset, error) {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil, ErrNoUsableData
	}

	delimiter := detectDelimiter(lines[0])
	header := splitFields(lines[0], delimiter)
	columns := resolveColumns(header)

	deals := make([]*domain.Deal, 0, len(lines)-1)
	dropped := 0

	for _, line := range lines[1:] {
		fields := splitFields(line, delimiter)

		deal, ok := s.buildDeal(columns, fields, len(deals))
		if !ok {
			dropped++
			continue
		}

		deals = append(deals, deal)
	}

	logrus.WithFields(logrus.Fields{
		"parsed":  len(deals),
		"dropped": dropped,
	}).Debug("Ingestão de texto concluída")

	if len(deals) == 0 {
		return nil, ErrNoUsableData
	}

	return &domain.Dataset{Deals: deals, Dropped: dropped}, nil
}

// buildDeal aplica a transformação por linha do caminho de texto
func (s *Service) buildDeal(columns map[string]int, fields []string, seq int) (*domain.Deal, bool) {
	row := rowView{columns: columns, fields: fields}

	if row.resolvedCount() < minResolvedFields {
		return nil, false
	}

	stage, stageNum, ok := classifyStage(row.get(colStage))
	if !ok {
		return nil, false
	}

	year, quarter, month := s.resolvePeriod(row.get(colCloseDate), row.get(colFiscalPeriod))
	if !s.yearSupported(year) {
		return nil, false
	}

	amount := parseAmount(row.get(colAmount))

	account := strings.TrimSpace(row.get(colParentAccount))
	if account == "" {
		account = strings.TrimSpace(row.get(colAccount))
	}
	if account == "" {
		account = "Unknown"
	}

	name := strings.TrimSpace(row.get(colName))
	dealType := NormalizeDealType(row.get(colType))
	if name == "" {
		name = fmt.Sprintf("%s - %s", account, dealType)
	}

	lossReason := ""
	if stage == domain.StageClosedLost {
		lossReason = combineLossReason(row.get(colLossPrimary), row.get(colLossSecondary))
	}

	relationship := strings.TrimSpace(row.get(colRelationship))
	if relationship == "" {
		relationship = "Unknown"
	}

	return &domain.Deal{
		ID:             fmt.Sprintf("deal-%04d", seq+1),
		Name:           name,
		Account:        account,
		Rep:            strings.TrimSpace(row.get(colRep)),
		Territory:      territoryFromCurrency(row.get(colCurrency)),
		Source:         NormalizeSource(row.get(colSource)),
		Type:           dealType,
		Stage:          stage,
		Amount:         amount,
		Year:           year,
		Quarter:        quarter,
		Month:          month,
		LossReason:     lossReason,
		Vertical:       NormalizeVertical(row.get(colVertical)),
		AgeDays:        parseIntField(row.get(colAge)),
		InactivityDays: s.inactivityDays(row.get(colLastActivity)),
		Probability:    stageProbability(stage, stageNum),
		Relationship:   relationship,
		KeyAccount:     amount > domain.KeyAccountThreshold,
	}, true
}

// rowView dá acesso aos campos de uma linha pelas posições resolvidas
type rowView struct {
	columns map[string]int
	fields  []string
}

func (r rowView) get(field string) string {
	idx, ok := r.columns[field]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

func (r rowView) resolvedCount() int {
	count := 0
	for _, idx := range r.columns {
		if idx < len(r.fields) && strings.TrimSpace(r.fields[idx]) != "" {
			count++
		}
	}
	return count
}

// splitLines quebra o texto bruto em linhas não vazias
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// detectDelimiter escolhe tabulação quando presente no cabeçalho, senão vírgula
func detectDelimiter(header string) rune {
	if strings.ContainsRune(header, '\t') {
		return '\t'
	}
	return ','
}

// splitFields divide uma linha respeitando aspas duplas. Aspas duplicadas
// dentro de um campo citado produzem uma aspa literal (escape CSV padrão).
func splitFields(line string, delimiter rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// classifyStage resolve o rótulo bruto de estágio. "closed won"/"closed lost"
// mapeiam direto; rótulos numerados "N. ..." com N >= 2 viram Pipeline;
// estágios 0 e 1 e rótulos sem número são descartados.
func classifyStage(raw string) (domain.Stage, int, bool) {
	label := strings.ToLower(strings.TrimSpace(raw))

	switch label {
	case "closed won":
		return domain.StageClosedWon, 0, true
	case "closed lost":
		return domain.StageClosedLost, 0, true
	}

	digits := ""
	for _, ch := range label {
		if ch < '0' || ch > '9' {
			break
		}
		digits += string(ch)
	}
	if digits == "" || !strings.HasPrefix(label[len(digits):], ".") {
		return "", 0, false
	}

	num, err := strconv.Atoi(digits)
	if err != nil || num < 2 {
		return "", 0, false
	}

	return domain.StagePipeline, num, true
}

// stageProbability deriva a probabilidade de fechamento do número do estágio
// (n/10, teto de 0.9); oportunidades já decididas não carregam probabilidade
func stageProbability(stage domain.Stage, stageNum int) float64 {
	if stage != domain.StagePipeline {
		return 0
	}
	if stageNum == 0 {
		return 0.5
	}
	p := float64(stageNum) / 10
	if p > 0.9 {
		p = 0.9
	}
	return p
}

// territoryFromCurrency classifica o território pela moeda do registro
func territoryFromCurrency(currency string) domain.Territory {
	if strings.Contains(strings.ToUpper(currency), "CAD") {
		return domain.TerritoryCanada
	}
	return domain.TerritoryUS
}

// parseAmount remove máscara monetária ($, vírgulas, espaços) e converte o
// valor; falhas e valores negativos resultam em 0
func parseAmount(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// inactivityDays calcula os dias desde a última atividade registrada; 0
// quando a coluna está ausente ou ilegível
func (s *Service) inactivityDays(lastActivity string) int {
	date, ok := parseCloseDate(lastActivity)
	if !ok {
		return 0
	}

	days := int(s.now().Sub(date).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func parseIntField(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// resolvePeriod prefere a data de fechamento explícita, depois a string de
// período fiscal (ano de 4 dígitos + token Q<n>) e por fim a data atual
func (s *Service) resolvePeriod(closeDate, fiscalPeriod string) (year, quarter, month int) {
	if date, ok := parseCloseDate(closeDate); ok {
		return date.Year(), domain.QuarterOfMonth(int(date.Month())), int(date.Month())
	}

	now := s.now()

	if y, q, ok := parseFiscalPeriod(fiscalPeriod); ok {
		if q == 0 {
			q = domain.QuarterOfMonth(int(now.Month()))
			return y, q, int(now.Month())
		}
		return y, q, q*3 - 2
	}

	return now.Year(), domain.QuarterOfMonth(int(now.Month())), int(now.Month())
}

var closeDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"Jan 2, 2006",
}

func parseCloseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range closeDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// parseFiscalPeriod procura um ano de 4 dígitos e um token Q<n> em uma string
// de período fiscal como "FY2024 Q3"
func parseFiscalPeriod(raw string) (year, quarter int, ok bool) {
	runes := []rune(strings.ToUpper(raw))

	for i := 0; i < len(runes); i++ {
		if runes[i] == 'Q' && i+1 < len(runes) && runes[i+1] >= '1' && runes[i+1] <= '4' {
			quarter = int(runes[i+1] - '0')
			i++
			continue
		}

		if runes[i] >= '0' && runes[i] <= '9' {
			j := i
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			if j-i == 4 {
				if y, err := strconv.Atoi(string(runes[i:j])); err == nil && y >= 1900 && y <= 2999 {
					year = y
				}
			}
			i = j - 1
		}
	}

	return year, quarter, year != 0
}

// combineLossReason junta os motivos de perda primário e secundário no
// formato "primário: secundário"; "Unknown" quando ambos estão vazios
func combineLossReason(primary, secondary string) string {
	primary = strings.TrimSpace(primary)
	secondary = strings.TrimSpace(secondary)

	switch {
	case primary == "" && secondary == "":
		return "Unknown"
	case primary == "":
		return secondary
	case secondary == "":
		return primary
	default:
		return fmt.Sprintf("%s: %s", primary, secondary)
	}
}
