package builder

import (
	"github.com/pkg/errors"
)

var (
	ErrSectionNotFound    = errors.New("раздел не найден")
	ErrQuestionNotFound   = errors.New("вопрос не найден")
	ErrNotEditing         = errors.New("раздел не редактируется")
	ErrFieldNotApplicable = errors.New("поле не применимо к типу вопроса")
)

// QuestionPatch частичное изменение вопроса, nil поля не меняются
type QuestionPatch struct {
	Label     *string
	Required  *bool
	MaxLength *int
	Options   []string
	Min       *float64
	Max       *float64
	// ClearLimits сбрасывает maxLength/min/max
	ClearLimits bool
}

// Builder редактор теста. Каждая операция изменения формирует новый снимок документа,
// ранее возвращенные снимки не изменяются
type Builder struct {
	doc             Document
	ids             IDGenerator
	currentSection  int
	currentQuestion int
	editingSection  string
	sectionDraft    string
}

func New(doc Document, ids IDGenerator) *Builder {
	if ids == nil {
		ids = DefaultIDGenerator()
	}
	doc = doc.Clone()
	if len(doc.Sections) == 0 {
		doc.Sections = []Section{newSection(ids)}
	}
	return &Builder{
		doc: doc,
		ids: ids,
	}
}

func newSection(ids IDGenerator) Section {
	return Section{
		ID:        ids.SectionID(),
		Title:     NewSectionTitle,
		Questions: []Question{},
	}
}

// Document текущий снимок
func (b *Builder) Document() Document {
	return b.doc.Clone()
}

func (b *Builder) commit(doc Document) Document {
	b.doc = doc
	b.clampCursors()
	return b.doc.Clone()
}

func (b *Builder) clampCursors() {
	if b.currentSection >= len(b.doc.Sections) {
		b.currentSection = len(b.doc.Sections) - 1
	}
	if b.currentSection < 0 {
		b.currentSection = 0
	}
	total := b.doc.QuestionCount()
	if b.currentQuestion >= total {
		b.currentQuestion = total - 1
	}
	if b.currentQuestion < 0 {
		b.currentQuestion = 0
	}
}

// AddSection добавляет пустой раздел "New Section" и делает его текущим
func (b *Builder) AddSection() Document {
	doc := b.doc.Clone()
	doc.Sections = append(doc.Sections, newSection(b.ids))
	b.currentSection = len(doc.Sections) - 1
	return b.commit(doc)
}

// DeleteSection удаляет раздел. Документ не остается пустым: вместо последнего раздела создается новый
func (b *Builder) DeleteSection(sectionID string) (Document, error) {
	idx := b.doc.sectionIndex(sectionID)
	if idx < 0 {
		return Document{}, ErrSectionNotFound
	}
	doc := b.doc.Clone()
	doc.Sections = append(doc.Sections[:idx], doc.Sections[idx+1:]...)
	if len(doc.Sections) == 0 {
		doc.Sections = []Section{newSection(b.ids)}
		b.currentSection = 0
	} else if b.currentSection >= idx && b.currentSection > 0 {
		b.currentSection--
	}
	if b.editingSection == sectionID {
		b.editingSection = ""
		b.sectionDraft = ""
	}
	return b.commit(doc), nil
}

// RenameSection заменяет название раздела и завершает редактирование
func (b *Builder) RenameSection(sectionID, title string) (Document, error) {
	idx := b.doc.sectionIndex(sectionID)
	if idx < 0 {
		return Document{}, ErrSectionNotFound
	}
	doc := b.doc.Clone()
	doc.Sections[idx].Title = title
	b.editingSection = ""
	b.sectionDraft = ""
	return b.commit(doc), nil
}

// BeginRename включает редактирование названия раздела, черновик = текущее название
func (b *Builder) BeginRename(sectionID string) error {
	idx := b.doc.sectionIndex(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}
	b.editingSection = sectionID
	b.sectionDraft = b.doc.Sections[idx].Title
	return nil
}

func (b *Builder) SetRenameDraft(title string) error {
	if b.editingSection == "" {
		return ErrNotEditing
	}
	b.sectionDraft = title
	return nil
}

// CommitRename применяет черновик названия
func (b *Builder) CommitRename() (Document, error) {
	if b.editingSection == "" {
		return Document{}, ErrNotEditing
	}
	return b.RenameSection(b.editingSection, b.sectionDraft)
}

// CancelRename завершает редактирование, черновик отбрасывается
func (b *Builder) CancelRename() {
	b.editingSection = ""
	b.sectionDraft = ""
}

// Editing редактируемый раздел и черновик названия
func (b *Builder) Editing() (sectionID, draft string, ok bool) {
	return b.editingSection, b.sectionDraft, b.editingSection != ""
}

func (b *Builder) newQuestion(t QuestionType) (Question, error) {
	body, err := DefaultVariant(t)
	if err != nil {
		return Question{}, err
	}
	id := b.ids.QuestionID()
	for b.doc.hasQuestionID(id) {
		id = b.ids.QuestionID()
	}
	return Question{
		ID:       id,
		Label:    NewQuestionLabel,
		Required: true,
		Body:     body,
	}, nil
}

// AddQuestion добавляет в раздел вопрос short "New Question" и переводит на него курсор вопросов
func (b *Builder) AddQuestion(sectionID string) (Document, Question, error) {
	idx := b.doc.sectionIndex(sectionID)
	if idx < 0 {
		return Document{}, Question{}, ErrSectionNotFound
	}
	question, err := b.newQuestion(TypeShort)
	if err != nil {
		return Document{}, Question{}, err
	}
	doc := b.doc.Clone()
	doc.Sections[idx].Questions = append(doc.Sections[idx].Questions, question)
	for k, item := range doc.Flatten() {
		if item.ID == question.ID {
			b.currentQuestion = k
			break
		}
	}
	return b.commit(doc), question, nil
}

func (b *Builder) questionIndex(sectionID, questionID string) (sectionIdx, questionIdx int, err error) {
	sectionIdx = b.doc.sectionIndex(sectionID)
	if sectionIdx < 0 {
		return -1, -1, ErrSectionNotFound
	}
	for k, question := range b.doc.Sections[sectionIdx].Questions {
		if question.ID == questionID {
			return sectionIdx, k, nil
		}
	}
	return -1, -1, ErrQuestionNotFound
}

// DeleteQuestion удаляет вопрос раздела, курсор вопросов остается в допустимых границах
func (b *Builder) DeleteQuestion(sectionID, questionID string) (Document, error) {
	sectionIdx, questionIdx, err := b.questionIndex(sectionID, questionID)
	if err != nil {
		return Document{}, err
	}
	doc := b.doc.Clone()
	questions := doc.Sections[sectionIdx].Questions
	doc.Sections[sectionIdx].Questions = append(questions[:questionIdx], questions[questionIdx+1:]...)
	return b.commit(doc), nil
}

// UpdateQuestion применяет patch к вопросу. Поля другого типа вопроса отклоняются
func (b *Builder) UpdateQuestion(sectionID, questionID string, patch QuestionPatch) (Document, error) {
	sectionIdx, questionIdx, err := b.questionIndex(sectionID, questionID)
	if err != nil {
		return Document{}, err
	}
	doc := b.doc.Clone()
	question := &doc.Sections[sectionIdx].Questions[questionIdx]
	if patch.Label != nil {
		question.Label = *patch.Label
	}
	if patch.Required != nil {
		question.Required = *patch.Required
	}
	body, err := patchVariant(question.Body, patch)
	if err != nil {
		return Document{}, err
	}
	question.Body = body
	return b.commit(doc), nil
}

func patchVariant(body Variant, patch QuestionPatch) (Variant, error) {
	switch v := body.(type) {
	case ShortText:
		if patch.MaxLength != nil || patch.Options != nil || patch.Min != nil || patch.Max != nil {
			return nil, ErrFieldNotApplicable
		}
		return v, nil
	case LongText:
		if patch.Options != nil || patch.Min != nil || patch.Max != nil {
			return nil, ErrFieldNotApplicable
		}
		if patch.ClearLimits {
			v.MaxLength = nil
		}
		if patch.MaxLength != nil {
			v.MaxLength = copyPtr(patch.MaxLength)
		}
		return v, nil
	case SingleChoice:
		if patch.MaxLength != nil || patch.Min != nil || patch.Max != nil {
			return nil, ErrFieldNotApplicable
		}
		if patch.Options != nil {
			v.Options = copyOptions(patch.Options)
		}
		return v, nil
	case MultiChoice:
		if patch.MaxLength != nil || patch.Min != nil || patch.Max != nil {
			return nil, ErrFieldNotApplicable
		}
		if patch.Options != nil {
			v.Options = copyOptions(patch.Options)
		}
		return v, nil
	case Numeric:
		if patch.MaxLength != nil || patch.Options != nil {
			return nil, ErrFieldNotApplicable
		}
		if patch.ClearLimits {
			v.Min = nil
			v.Max = nil
		}
		if patch.Min != nil {
			v.Min = copyPtr(patch.Min)
		}
		if patch.Max != nil {
			v.Max = copyPtr(patch.Max)
		}
		return v, nil
	case nil:
		return patchVariant(ShortText{}, patch)
	}
	return nil, errors.Errorf("неизвестный тип вопроса: %T", body)
}

// ChangeQuestionType заменяет вопрос новым вопросом типа t со значениями по умолчанию,
// id, label и required сохраняются
func (b *Builder) ChangeQuestionType(sectionID, questionID string, t QuestionType) (Document, error) {
	sectionIdx, questionIdx, err := b.questionIndex(sectionID, questionID)
	if err != nil {
		return Document{}, err
	}
	body, err := DefaultVariant(t)
	if err != nil {
		return Document{}, err
	}
	doc := b.doc.Clone()
	question := &doc.Sections[sectionIdx].Questions[questionIdx]
	question.Body = body
	return b.commit(doc), nil
}

// навигация

func (b *Builder) CurrentQuestionIndex() int {
	return b.currentQuestion
}

func (b *Builder) CurrentSectionIndex() int {
	return b.currentSection
}

// CurrentQuestion вопрос под курсором сквозной нумерации
func (b *Builder) CurrentQuestion() (FlatQuestion, bool) {
	flat := b.doc.Flatten()
	if b.currentQuestion < 0 || b.currentQuestion >= len(flat) {
		return FlatQuestion{}, false
	}
	return flat[b.currentQuestion], true
}

func (b *Builder) CurrentSection() (Section, bool) {
	if b.currentSection < 0 || b.currentSection >= len(b.doc.Sections) {
		return Section{}, false
	}
	return b.doc.Sections[b.currentSection], true
}

func (b *Builder) NextQuestion() {
	if b.currentQuestion < b.doc.QuestionCount()-1 {
		b.currentQuestion++
	}
}

func (b *Builder) PrevQuestion() {
	if b.currentQuestion > 0 {
		b.currentQuestion--
	}
}

func (b *Builder) NextSection() {
	if b.currentSection < len(b.doc.Sections)-1 {
		b.currentSection++
	}
}

func (b *Builder) PrevSection() {
	if b.currentSection > 0 {
		b.currentSection--
	}
}

// ShowSectionView редактор вопроса не показывается: нет вопроса под курсором или текущий раздел пуст
func (b *Builder) ShowSectionView() bool {
	if _, ok := b.CurrentQuestion(); !ok {
		return true
	}
	section, ok := b.CurrentSection()
	return ok && len(section.Questions) == 0
}
