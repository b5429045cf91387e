package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn часть websocket.Conn, используемая хабом
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const sendBufferSize = 16

type clientSession struct {
	id    string
	jobID int
	conn  Conn

	// исходящие сообщения, буферизованы
	sendCh chan any
	stop   func()
	done   chan struct{}
}

func newSession(id string, jobID int, conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		id:     id,
		jobID:  jobID,
		stop:   cancelFn,
		conn:   conn,
		sendCh: make(chan any, sendBufferSize),
		done:   make(chan struct{}),
	}
	go sess.startSend(ctx)
	return sess
}

func (s *clientSession) startSend(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.conn.WriteJSON(msg); err != nil {
				s.getLogger().WithError(err).Error("ошибка отправки сообщения")
				continue
			}
			s.getLogger().Debugf("отправлено сообщение: %+v", msg)
		}
	}
}

// enqueue не блокирует отправителя: при переполненном буфере сообщение отбрасывается
func (s *clientSession) enqueue(msg any) bool {
	select {
	case s.sendCh <- msg:
		return true
	default:
		s.getLogger().Warn("буфер сообщений переполнен, сообщение отброшено")
		return false
	}
}

func (s *clientSession) close() {
	if s.conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		s.getLogger().WithError(err).Debug("ошибка закрытия соединения")
	}
}

func (s *clientSession) getLogger() *log.Entry {
	return log.
		WithField("job_id", s.jobID).
		WithField("session_id", s.id)
}
