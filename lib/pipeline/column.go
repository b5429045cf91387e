package pipeline

import (
	"talentflow-backend/models"
	candidateapimodels "talentflow-backend/models/api/candidate"
)

type Card = candidateapimodels.CandidateView

type Column = candidateapimodels.ColumnView

// Partition раскладывает кандидатов по фиксированным колонкам в порядке этапов.
// Кандидаты с неизвестным этапом не попадают ни в одну колонку
func Partition(cards []Card) []Column {
	columns := emptyColumns()
	for _, card := range cards {
		idx := stageIndex(card.Stage)
		if idx < 0 {
			continue
		}
		columns[idx].Candidates = append(columns[idx].Candidates, card)
	}
	return columns
}

func emptyColumns() []Column {
	columns := make([]Column, 0, len(models.CandidateStages))
	for _, stage := range models.CandidateStages {
		columns = append(columns, Column{
			Stage:      stage,
			Title:      stage.Title(),
			Candidates: []Card{},
		})
	}
	return columns
}

func stageIndex(stage models.CandidateStage) int {
	for k, item := range models.CandidateStages {
		if item == stage {
			return k
		}
	}
	return -1
}

func copyColumns(columns []Column) []Column {
	result := make([]Column, len(columns))
	for k, column := range columns {
		result[k] = column
		result[k].Candidates = append([]Card{}, column.Candidates...)
	}
	return result
}

// findCard колонка и позиция карточки, -1 если карточки нет на доске
func findCard(columns []Column, cardID string) (columnIdx, cardIdx int) {
	for k, column := range columns {
		for n, card := range column.Candidates {
			if card.ID == cardID {
				return k, n
			}
		}
	}
	return -1, -1
}

func removeAt(cards []Card, idx int) []Card {
	result := make([]Card, 0, len(cards)-1)
	result = append(result, cards[:idx]...)
	return append(result, cards[idx+1:]...)
}

func insertAt(cards []Card, idx int, card Card) []Card {
	if idx < 0 || idx > len(cards) {
		idx = len(cards)
	}
	result := make([]Card, 0, len(cards)+1)
	result = append(result, cards[:idx]...)
	result = append(result, card)
	return append(result, cards[idx:]...)
}
