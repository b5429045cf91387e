package builder

import (
	"encoding/json"
	"strings"

	apimodels "talentflow-backend/models/api"

	"github.com/pkg/errors"
)

const (
	DefaultSectionTitle  = "General Questions"
	NewSectionTitle      = "New Section"
	NewQuestionLabel     = "New Question"
	DefaultQuestionLabel = "What is your name?"
)

type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Document дерево теста: разделы -> вопросы
type Document struct {
	JobID    apimodels.FlexString `json:"jobId"`
	Title    string               `json:"title"`
	Sections []Section            `json:"sections"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain struct {
		JobID    string    `json:"jobId"`
		Title    string    `json:"title"`
		Sections []Section `json:"sections"`
	}
	sections := make([]Section, len(d.Sections))
	copy(sections, d.Sections)
	for k := range sections {
		if sections[k].Questions == nil {
			sections[k].Questions = []Question{}
		}
	}
	return json.Marshal(plain{
		JobID:    string(d.JobID),
		Title:    d.Title,
		Sections: sections,
	})
}

// Parse разбор документа теста из json
func Parse(data []byte) (Document, error) {
	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(err, "некорректный документ теста")
	}
	return doc, nil
}

// NewDocument документ нового теста с одним разделом и вопросом
func NewDocument(jobID, title string, ids IDGenerator) Document {
	if ids == nil {
		ids = DefaultIDGenerator()
	}
	return Document{
		JobID: apimodels.FlexString(jobID),
		Title: title,
		Sections: []Section{
			{
				ID:    ids.SectionID(),
				Title: DefaultSectionTitle,
				Questions: []Question{
					{
						ID:       "q1",
						Label:    DefaultQuestionLabel,
						Required: true,
						Body:     ShortText{},
					},
				},
			},
		},
	}
}

func (d Document) Clone() Document {
	result := Document{
		JobID:    d.JobID,
		Title:    d.Title,
		Sections: make([]Section, len(d.Sections)),
	}
	for k, section := range d.Sections {
		result.Sections[k] = Section{
			ID:        section.ID,
			Title:     section.Title,
			Questions: make([]Question, len(section.Questions)),
		}
		for n, question := range section.Questions {
			result.Sections[k].Questions[n] = question.Clone()
		}
	}
	return result
}

// FlatQuestion вопрос в сквозной нумерации по всем разделам
type FlatQuestion struct {
	Question
	SectionID    string
	SectionTitle string
}

func (d Document) Flatten() []FlatQuestion {
	result := []FlatQuestion{}
	for _, section := range d.Sections {
		for _, question := range section.Questions {
			result = append(result, FlatQuestion{
				Question:     question,
				SectionID:    section.ID,
				SectionTitle: section.Title,
			})
		}
	}
	return result
}

func (d Document) QuestionCount() int {
	count := 0
	for _, section := range d.Sections {
		count += len(section.Questions)
	}
	return count
}

// FindQuestion поиск вопроса по id во всех разделах
func (d Document) FindQuestion(questionID string) (Question, bool) {
	for _, section := range d.Sections {
		for _, question := range section.Questions {
			if question.ID == questionID {
				return question, true
			}
		}
	}
	return Question{}, false
}

func (d Document) sectionIndex(sectionID string) int {
	for k, section := range d.Sections {
		if section.ID == sectionID {
			return k
		}
	}
	return -1
}

func (d Document) hasQuestionID(questionID string) bool {
	_, ok := d.FindQuestion(questionID)
	return ok
}

// Check структурные требования: у раздела есть id и название, id вопросов уникальны
func (d Document) Check() error {
	seen := map[string]bool{}
	for k, section := range d.Sections {
		if strings.TrimSpace(section.ID) == "" {
			return errors.Errorf("у раздела %v отсутствует идентификатор", k+1)
		}
		if strings.TrimSpace(section.Title) == "" {
			return errors.Errorf("у раздела %v отсутствует название", k+1)
		}
		for _, question := range section.Questions {
			if question.ID == "" {
				return errors.Errorf("в разделе %q есть вопрос без идентификатора", section.Title)
			}
			if seen[question.ID] {
				return errors.Errorf("идентификатор вопроса %q повторяется", question.ID)
			}
			seen[question.ID] = true
		}
	}
	return nil
}

// Normalize приводит документ к требованиям: jobId и title как переданы, у разделов есть id и название,
// id вопросов заполнены и уникальны, дерево не пустое
func Normalize(doc Document, jobID, title string, ids IDGenerator) Document {
	if ids == nil {
		ids = DefaultIDGenerator()
	}
	doc = doc.Clone()
	doc.JobID = apimodels.FlexString(jobID)
	doc.Title = title
	if len(doc.Sections) == 0 {
		doc.Sections = []Section{{ID: ids.SectionID(), Title: NewSectionTitle, Questions: []Question{}}}
	}
	seenSections := map[string]bool{}
	seenQuestions := map[string]bool{}
	for k := range doc.Sections {
		section := &doc.Sections[k]
		if strings.TrimSpace(section.ID) == "" || seenSections[section.ID] {
			section.ID = ids.SectionID()
		}
		seenSections[section.ID] = true
		if strings.TrimSpace(section.Title) == "" {
			section.Title = NewSectionTitle
		}
		if section.Questions == nil {
			section.Questions = []Question{}
		}
		for n := range section.Questions {
			question := &section.Questions[n]
			for question.ID == "" || seenQuestions[question.ID] {
				question.ID = ids.QuestionID()
			}
			seenQuestions[question.ID] = true
			if question.Body == nil {
				question.Body = ShortText{}
			}
		}
	}
	return doc
}
