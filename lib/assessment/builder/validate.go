package builder

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldState состояние ответа на вопрос
type FieldState struct {
	QuestionID string `json:"questionId"`
	Required   bool   `json:"required"`
	Answered   bool   `json:"answered"`
	Error      string `json:"error,omitempty"`
}

// ValidationResult результат проверки ответов по документу теста
type ValidationResult struct {
	Fields  []FieldState `json:"fields"`
	Missing []string     `json:"missing"`
	Invalid []string     `json:"invalid"`
	Valid   bool         `json:"valid"`
}

// Validate проверяет ответы: обязательный multi требует непустого выбора,
// остальные типы требуют не пустого значения. Ограничения maxLength, min/max и options
// проверяются только для заполненных ответов
func Validate(doc Document, answers map[string]any) ValidationResult {
	result := ValidationResult{
		Fields:  []FieldState{},
		Missing: []string{},
		Invalid: []string{},
	}
	for _, item := range doc.Flatten() {
		value, present := answers[item.ID]
		state := FieldState{
			QuestionID: item.ID,
			Required:   item.Required,
			Answered:   present && isAnswered(item.Question, value),
		}
		if item.Required && !state.Answered {
			state.Error = "обязательный вопрос"
			result.Missing = append(result.Missing, item.ID)
		} else if state.Answered {
			if err := checkConstraints(item.Question, value); err != "" {
				state.Error = err
				result.Invalid = append(result.Invalid, item.ID)
			}
		}
		result.Fields = append(result.Fields, state)
	}
	result.Valid = len(result.Missing) == 0 && len(result.Invalid) == 0
	return result
}

func isAnswered(question Question, value any) bool {
	if value == nil {
		return false
	}
	if question.Type() == TypeMulti {
		return len(selection(value)) > 0
	}
	if s, ok := value.(string); ok {
		return s != ""
	}
	return true
}

func selection(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			result = append(result, fmt.Sprint(item))
		}
		return result
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		result := make([]string, 0, rv.Len())
		for k := 0; k < rv.Len(); k++ {
			result = append(result, fmt.Sprint(rv.Index(k).Interface()))
		}
		return result
	}
	return nil
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func checkConstraints(question Question, value any) string {
	switch body := question.Body.(type) {
	case LongText:
		s, ok := value.(string)
		if ok && body.MaxLength != nil && utf8.RuneCountInString(s) > *body.MaxLength {
			return fmt.Sprintf("длина ответа больше %v", *body.MaxLength)
		}
	case SingleChoice:
		if len(body.Options) > 0 && !slices.Contains(body.Options, fmt.Sprint(value)) {
			return "значение не входит в варианты ответа"
		}
	case MultiChoice:
		for _, item := range selection(value) {
			if len(body.Options) > 0 && !slices.Contains(body.Options, item) {
				return "значение не входит в варианты ответа"
			}
		}
	case Numeric:
		f, ok := number(value)
		if !ok {
			return "ожидается число"
		}
		if body.Min != nil && f < *body.Min {
			return fmt.Sprintf("значение меньше %v", *body.Min)
		}
		if body.Max != nil && f > *body.Max {
			return fmt.Sprintf("значение больше %v", *body.Max)
		}
	}
	return ""
}
