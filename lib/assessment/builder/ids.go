package builder

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator идентификаторы новых разделов и вопросов
type IDGenerator interface {
	SectionID() string
	QuestionID() string
}

func DefaultIDGenerator() IDGenerator {
	return &timeIDs{}
}

// timeIDs вопросы "q<unix ms>", при совпадении времени значение увеличивается
type timeIDs struct {
	mu   sync.Mutex
	last int64
}

func (g *timeIDs) SectionID() string {
	return uuid.NewString()
}

func (g *timeIDs) QuestionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return fmt.Sprintf("q%d", now)
}

// SequentialIDs предсказуемые идентификаторы s1, s2... и q1, q2...
type SequentialIDs struct {
	mu        sync.Mutex
	Sections  int
	Questions int
}

func (g *SequentialIDs) SectionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Sections++
	return fmt.Sprintf("s%d", g.Sections)
}

func (g *SequentialIDs) QuestionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Questions++
	return fmt.Sprintf("q%d", g.Questions)
}
