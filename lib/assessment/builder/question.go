package builder

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type QuestionType string

const (
	TypeShort   QuestionType = "short"
	TypeLong    QuestionType = "long"
	TypeSingle  QuestionType = "single"
	TypeMulti   QuestionType = "multi"
	TypeNumeric QuestionType = "numeric"
)

var QuestionTypes = []QuestionType{TypeShort, TypeLong, TypeSingle, TypeMulti, TypeNumeric}

func (t QuestionType) Validate() error {
	for _, item := range QuestionTypes {
		if t == item {
			return nil
		}
	}
	return errors.Errorf("неизвестный тип вопроса: %v", t)
}

// Variant поля, специфичные для типа вопроса
type Variant interface {
	Type() QuestionType
	clone() Variant
}

type ShortText struct{}

type LongText struct {
	MaxLength *int
}

type SingleChoice struct {
	Options []string
}

type MultiChoice struct {
	Options []string
}

type Numeric struct {
	Min *float64
	Max *float64
}

func (ShortText) Type() QuestionType    { return TypeShort }
func (LongText) Type() QuestionType     { return TypeLong }
func (SingleChoice) Type() QuestionType { return TypeSingle }
func (MultiChoice) Type() QuestionType  { return TypeMulti }
func (Numeric) Type() QuestionType      { return TypeNumeric }

func (v ShortText) clone() Variant { return v }

func (v LongText) clone() Variant {
	return LongText{MaxLength: copyPtr(v.MaxLength)}
}

func (v SingleChoice) clone() Variant {
	return SingleChoice{Options: copyOptions(v.Options)}
}

func (v MultiChoice) clone() Variant {
	return MultiChoice{Options: copyOptions(v.Options)}
}

func (v Numeric) clone() Variant {
	return Numeric{Min: copyPtr(v.Min), Max: copyPtr(v.Max)}
}

// DefaultOptions варианты ответа нового вопроса с выбором
var DefaultOptions = []string{"Option 1", "Option 2"}

// DefaultVariant поля нового вопроса указанного типа
func DefaultVariant(t QuestionType) (Variant, error) {
	switch t {
	case TypeShort:
		return ShortText{}, nil
	case TypeLong:
		return LongText{}, nil
	case TypeSingle:
		return SingleChoice{Options: copyOptions(DefaultOptions)}, nil
	case TypeMulti:
		return MultiChoice{Options: copyOptions(DefaultOptions)}, nil
	case TypeNumeric:
		return Numeric{}, nil
	}
	return nil, errors.Errorf("неизвестный тип вопроса: %v", t)
}

type Question struct {
	ID       string
	Label    string
	Required bool
	Body     Variant
}

func (q Question) Type() QuestionType {
	if q.Body == nil {
		return TypeShort
	}
	return q.Body.Type()
}

func (q Question) Clone() Question {
	if q.Body != nil {
		q.Body = q.Body.clone()
	}
	return q
}

// Options варианты ответа для single/multi, nil для остальных типов
func (q Question) Options() []string {
	switch body := q.Body.(type) {
	case SingleChoice:
		return body.Options
	case MultiChoice:
		return body.Options
	}
	return nil
}

// questionJSON плоское представление вопроса в документе
type questionJSON struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Label     string       `json:"label"`
	Required  bool         `json:"required"`
	MaxLength *int         `json:"maxLength,omitempty"`
	Options   []string     `json:"options,omitempty"`
	Min       *float64     `json:"min,omitempty"`
	Max       *float64     `json:"max,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{
		ID:       q.ID,
		Type:     q.Type(),
		Label:    q.Label,
		Required: q.Required,
	}
	switch body := q.Body.(type) {
	case LongText:
		out.MaxLength = body.MaxLength
	case SingleChoice:
		out.Options = nonNilOptions(body.Options)
	case MultiChoice:
		out.Options = nonNilOptions(body.Options)
	case Numeric:
		out.Min = body.Min
		out.Max = body.Max
	}
	return json.Marshal(out)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	in := questionJSON{}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Type == "" {
		in.Type = TypeShort
	}
	q.ID = in.ID
	q.Label = in.Label
	q.Required = in.Required
	switch in.Type {
	case TypeShort:
		q.Body = ShortText{}
	case TypeLong:
		q.Body = LongText{MaxLength: in.MaxLength}
	case TypeSingle:
		q.Body = SingleChoice{Options: nonNilOptions(in.Options)}
	case TypeMulti:
		q.Body = MultiChoice{Options: nonNilOptions(in.Options)}
	case TypeNumeric:
		q.Body = Numeric{Min: in.Min, Max: in.Max}
	default:
		return errors.Errorf("неизвестный тип вопроса: %v", in.Type)
	}
	return nil
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyOptions(options []string) []string {
	if options == nil {
		return nil
	}
	return append([]string{}, options...)
}

func nonNilOptions(options []string) []string {
	if options == nil {
		return []string{}
	}
	return options
}
