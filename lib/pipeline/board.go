package pipeline

import (
	"context"
	"sync"
	"time"

	baseworker "talentflow-backend/lib/utils/base-worker"
	"talentflow-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrCardNotFound = errors.New("карточка кандидата не найдена на доске")
	ErrNoDrag       = errors.New("перетаскивание не начато")
	ErrClosed       = errors.New("доска закрыта")
)

// Persister сохранение изменений доски
type Persister interface {
	ListCandidates(ctx context.Context, jobID int) ([]Card, error)
	PatchStage(ctx context.Context, candidateID string, stage models.CandidateStage) error
	DeleteCandidate(ctx context.Context, candidateID string) error
}

// FailurePolicy поведение доски при ошибке сохранения уже примененного изменения
type FailurePolicy int

const (
	// PolicyRollback изменение откатывается обратной операцией
	PolicyRollback FailurePolicy = iota
	// PolicyBestEffort ошибка только логируется, доска остается в оптимистичном состоянии
	PolicyBestEffort
	// PolicyMarkDirty карточка помечается для повторного сохранения (Resync)
	PolicyMarkDirty
)

func (p FailurePolicy) String() string {
	switch p {
	case PolicyRollback:
		return "rollback"
	case PolicyBestEffort:
		return "best_effort"
	case PolicyMarkDirty:
		return "mark_dirty"
	}
	return "unknown"
}

// ParsePolicy разбор политики из конфигурации, пустое значение = rollback
func ParsePolicy(value string) (FailurePolicy, error) {
	switch value {
	case "", "rollback":
		return PolicyRollback, nil
	case "best_effort":
		return PolicyBestEffort, nil
	case "mark_dirty":
		return PolicyMarkDirty, nil
	}
	return PolicyRollback, errors.Errorf("неизвестная политика сохранения доски: %v", value)
}

type CardState int

const (
	CardIdle CardState = iota
	CardDragging
	CardPersistPending
	CardDirty
)

type intentKind int

const (
	intentMove intentKind = iota
	intentDelete
)

// intent изменение, ожидающее сохранения
type intent struct {
	kind   intentKind
	cardID string
	stage  models.CandidateStage
	seq    uint64
}

type dragState struct {
	cardID string
	source models.CandidateStage
}

type Option func(b *Board)

func WithPolicy(policy FailurePolicy) Option {
	return func(b *Board) {
		b.policy = policy
	}
}

// WithPersistTimeout ограничение времени одного вызова Persister
func WithPersistTimeout(timeout time.Duration) Option {
	return func(b *Board) {
		b.persistTimeout = timeout
	}
}

// WithScroll onScroll получает смещение после каждого тика в отдельной горутине,
// из него можно завершать перетаскивание, но нельзя вызывать Close
func WithScroll(cfg ScrollConfig, onScroll func(offset float64)) Option {
	return func(b *Board) {
		b.scrollCfg = cfg
		b.onScroll = onScroll
	}
}

// WithOnChange вызывается после каждого изменения колонок (вне блокировки доски)
func WithOnChange(onChange func()) Option {
	return func(b *Board) {
		b.onChange = onChange
	}
}

// Board доска подбора одной вакансии: колонки по этапам, перетаскивание и удаление карточек
// с оптимистичным применением и асинхронным сохранением
type Board struct {
	jobID          int
	persister      Persister
	policy         FailurePolicy
	persistTimeout time.Duration
	scrollCfg      ScrollConfig
	onScroll       func(offset float64)
	onChange       func()
	scroller       *autoScroller

	mu      sync.Mutex
	columns []Column
	drag    *dragState
	seq     map[string]uint64
	pending map[string]int
	dirty   map[string]intent
	closed  bool

	wg           sync.WaitGroup
	resyncCancel context.CancelFunc
	resyncDone   chan struct{}
}

func NewBoard(jobID int, persister Persister, opts ...Option) *Board {
	b := &Board{
		jobID:          jobID,
		persister:      persister,
		policy:         PolicyRollback,
		persistTimeout: 10 * time.Second,
		scrollCfg:      DefaultScrollConfig(),
		columns:        emptyColumns(),
		seq:            map[string]uint64{},
		pending:        map[string]int{},
		dirty:          map[string]intent{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.scroller = newAutoScroller(b.scrollCfg, b.onScroll)
	return b
}

func (b *Board) getLogger() *log.Entry {
	return log.
		WithField("job_id", b.jobID).
		WithField("policy", b.policy.String())
}

func (b *Board) JobID() int {
	return b.jobID
}

// Load загружает кандидатов вакансии. При ошибке доска остается с пустыми колонками
func (b *Board) Load(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, b.persistTimeout)
	defer cancel()
	list, err := b.persister.ListCandidates(loadCtx, b.jobID)
	b.mu.Lock()
	if err != nil {
		b.columns = emptyColumns()
	} else {
		b.columns = Partition(list)
	}
	b.drag = nil
	b.mu.Unlock()
	b.notify()
	if err != nil {
		b.getLogger().WithError(err).Error("ошибка загрузки кандидатов доски")
		return errors.Wrap(err, "ошибка загрузки кандидатов доски")
	}
	return nil
}

// Columns копия текущего состояния колонок
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyColumns(b.columns)
}

func (b *Board) State(cardID string) CardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.drag != nil && b.drag.cardID == cardID:
		return CardDragging
	case b.pending[cardID] > 0:
		return CardPersistPending
	}
	if _, ok := b.dirty[cardID]; ok {
		return CardDirty
	}
	return CardIdle
}

// DragStart запоминает карточку и ее исходную колонку
func (b *Board) DragStart(cardID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	columnIdx, _ := findCard(b.columns, cardID)
	if columnIdx < 0 {
		return ErrCardNotFound
	}
	b.drag = &dragState{
		cardID: cardID,
		source: b.columns[columnIdx].Stage,
	}
	return nil
}

// DragOver положение указателя x в полосе колонок ширины width, у краев включается автопрокрутка
func (b *Board) DragOver(x, width float64) {
	b.mu.Lock()
	dragging := b.drag != nil && !b.closed
	b.mu.Unlock()
	if !dragging {
		b.scroller.Set(0)
		return
	}
	b.scroller.Set(b.scrollCfg.Direction(x, width))
}

// DragEnd завершает перетаскивание без переноса и останавливает автопрокрутку
func (b *Board) DragEnd() {
	b.scroller.Stop()
	b.mu.Lock()
	b.drag = nil
	b.mu.Unlock()
}

func (b *Board) Scrolling() bool {
	return b.scroller.Running()
}

func (b *Board) ScrollOffset() float64 {
	return b.scroller.Offset()
}

// Drop переносит перетаскиваемую карточку в колонку stage (в конец) и сохраняет этап асинхронно.
// Перенос в исходную колонку отменяет перетаскивание, moved = false
func (b *Board) Drop(ctx context.Context, stage models.CandidateStage) (moved bool, err error) {
	if err = stage.Validate(); err != nil {
		return false, err
	}
	b.scroller.Stop()
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false, ErrClosed
	}
	drag := b.drag
	b.drag = nil
	if drag == nil {
		b.mu.Unlock()
		return false, ErrNoDrag
	}
	if drag.source == stage {
		b.mu.Unlock()
		return false, nil
	}
	columnIdx, cardIdx := findCard(b.columns, drag.cardID)
	if columnIdx < 0 {
		b.mu.Unlock()
		return false, ErrCardNotFound
	}
	source := b.columns[columnIdx].Stage
	card := b.columns[columnIdx].Candidates[cardIdx]
	b.columns[columnIdx].Candidates = removeAt(b.columns[columnIdx].Candidates, cardIdx)
	card.Stage = stage
	targetIdx := stageIndex(stage)
	b.columns[targetIdx].Candidates = append(b.columns[targetIdx].Candidates, card)

	in := b.beginIntent(intent{kind: intentMove, cardID: card.ID, stage: stage})
	b.wg.Add(1)
	b.mu.Unlock()
	b.notify()

	b.getLogger().
		WithField("candidate_id", card.ID).
		WithField("from", source).
		WithField("to", stage).
		Debug("карточка перенесена")

	go b.persist(ctx, in, func() {
		b.undoMove(card, source, cardIdx)
	})
	return true, nil
}

// Remove удаляет карточку с доски сразу, удаление кандидата сохраняется асинхронно
func (b *Board) Remove(ctx context.Context, cardID string) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	columnIdx, cardIdx := findCard(b.columns, cardID)
	if columnIdx < 0 {
		b.mu.Unlock()
		return ErrCardNotFound
	}
	card := b.columns[columnIdx].Candidates[cardIdx]
	b.columns[columnIdx].Candidates = removeAt(b.columns[columnIdx].Candidates, cardIdx)
	if b.drag != nil && b.drag.cardID == cardID {
		b.drag = nil
	}
	in := b.beginIntent(intent{kind: intentDelete, cardID: cardID})
	b.wg.Add(1)
	b.mu.Unlock()
	b.notify()

	go b.persist(ctx, in, func() {
		b.undoRemove(card, cardIdx)
	})
	return nil
}

// beginIntent вызывается под mu
func (b *Board) beginIntent(in intent) intent {
	b.seq[in.cardID]++
	in.seq = b.seq[in.cardID]
	b.pending[in.cardID]++
	delete(b.dirty, in.cardID)
	return in
}

func (b *Board) persist(ctx context.Context, in intent, undo func()) {
	defer b.wg.Done()
	err := b.apply(ctx, in)
	b.complete(in, err, undo)
}

// apply вызов Persister не отменяется вместе с ctx инициатора, ограничен persistTimeout
func (b *Board) apply(ctx context.Context, in intent) error {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.persistTimeout)
	defer cancel()
	switch in.kind {
	case intentMove:
		return b.persister.PatchStage(persistCtx, in.cardID, in.stage)
	case intentDelete:
		return b.persister.DeleteCandidate(persistCtx, in.cardID)
	}
	return errors.Errorf("неизвестный тип изменения: %v", in.kind)
}

func (b *Board) complete(in intent, err error, undo func()) {
	logger := b.getLogger().WithField("candidate_id", in.cardID)
	b.mu.Lock()
	b.pending[in.cardID]--
	if b.pending[in.cardID] <= 0 {
		delete(b.pending, in.cardID)
	}
	if b.seq[in.cardID] != in.seq {
		b.mu.Unlock()
		if err != nil {
			logger.WithError(err).Warn("ошибка сохранения устаревшего изменения, пропускаем")
		}
		return
	}
	if err == nil {
		b.mu.Unlock()
		return
	}
	policy := b.policy
	switch policy {
	case PolicyMarkDirty:
		b.dirty[in.cardID] = in
	case PolicyRollback:
		undo()
	}
	b.mu.Unlock()

	logger.WithError(err).Error("ошибка сохранения изменения доски")
	if policy != PolicyBestEffort {
		b.notify()
	}
}

// undoMove возвращает карточку в исходную колонку, если она все еще в целевой. Вызывается под mu
func (b *Board) undoMove(card Card, source models.CandidateStage, sourceIdx int) {
	columnIdx, cardIdx := findCard(b.columns, card.ID)
	if columnIdx < 0 || b.columns[columnIdx].Stage != card.Stage {
		return
	}
	b.columns[columnIdx].Candidates = removeAt(b.columns[columnIdx].Candidates, cardIdx)
	card.Stage = source
	sourceColumn := stageIndex(source)
	b.columns[sourceColumn].Candidates = insertAt(b.columns[sourceColumn].Candidates, sourceIdx, card)
}

// undoRemove возвращает удаленную карточку на прежнее место. Вызывается под mu
func (b *Board) undoRemove(card Card, idx int) {
	if columnIdx, _ := findCard(b.columns, card.ID); columnIdx >= 0 {
		return
	}
	columnIdx := stageIndex(card.Stage)
	if columnIdx < 0 {
		return
	}
	b.columns[columnIdx].Candidates = insertAt(b.columns[columnIdx].Candidates, idx, card)
}

// Dirty идентификаторы карточек, ожидающих повторного сохранения
func (b *Board) Dirty() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]string, 0, len(b.dirty))
	for id := range b.dirty {
		result = append(result, id)
	}
	return result
}

// Resync повторяет сохранение помеченных карточек, возвращает количество оставшихся
func (b *Board) Resync(ctx context.Context) int {
	b.mu.Lock()
	intents := make([]intent, 0, len(b.dirty))
	for _, in := range b.dirty {
		intents = append(intents, in)
	}
	b.mu.Unlock()

	for _, in := range intents {
		if ctx.Err() != nil {
			break
		}
		err := b.apply(ctx, in)
		if err != nil {
			b.getLogger().
				WithField("candidate_id", in.cardID).
				WithError(err).
				Warn("повторное сохранение не удалось")
			continue
		}
		b.mu.Lock()
		if current, ok := b.dirty[in.cardID]; ok && current.seq == in.seq {
			delete(b.dirty, in.cardID)
		}
		b.mu.Unlock()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dirty)
}

// StartResync периодический Resync до Close или завершения ctx
func (b *Board) StartResync(ctx context.Context, interval time.Duration) {
	b.mu.Lock()
	if b.closed || b.resyncCancel != nil {
		b.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	b.resyncCancel = cancel
	b.resyncDone = make(chan struct{})
	done := b.resyncDone
	b.mu.Unlock()

	worker := baseworker.NewInstance("board_resync", interval, interval)
	go func() {
		defer close(done)
		worker.Run(ctx, func(ctx context.Context) {
			b.Resync(ctx)
		})
	}()
}

// Wait ожидает завершения всех начатых сохранений
func (b *Board) Wait() {
	b.wg.Wait()
}

// Close останавливает автопрокрутку и повторное сохранение, ожидает начатые сохранения
func (b *Board) Close() {
	b.mu.Lock()
	b.closed = true
	b.drag = nil
	cancel := b.resyncCancel
	done := b.resyncDone
	b.mu.Unlock()

	b.scroller.Stop()
	b.scroller.Wait()
	if cancel != nil {
		cancel()
		<-done
	}
	b.wg.Wait()
}

func (b *Board) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}
