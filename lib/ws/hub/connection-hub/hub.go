package connectionhub

import (
	"sync"
	wsmodels "talentflow-backend/models/ws"

	"github.com/google/uuid"
)

// Provider рассылка событий доски подписчикам вакансии
type Provider interface {
	AddClient(jobID int, conn Conn) (sessionID string)
	DeleteClient(jobID int, sessionID string)
	SendMessage(msg wsmodels.ServerMessage)
	ClientCount(jobID int) int
	Close()
}

var Instance Provider

func Init() {
	Instance = NewHub()
}

func NewHub() Provider {
	return &impl{
		clients: map[int]map[string]*clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[int]map[string]*clientSession //map[jobID]map[sessionID]
}

func (i *impl) AddClient(jobID int, conn Conn) string {
	sess := newSession(uuid.NewString(), jobID, conn)
	i.mu.Lock()
	defer i.mu.Unlock()
	sessions, ok := i.clients[jobID]
	if !ok {
		sessions = map[string]*clientSession{}
		i.clients[jobID] = sessions
	}
	sessions[sess.id] = sess
	return sess.id
}

func (i *impl) DeleteClient(jobID int, sessionID string) {
	i.mu.Lock()
	sess, ok := i.clients[jobID][sessionID]
	if ok {
		delete(i.clients[jobID], sessionID)
		if len(i.clients[jobID]) == 0 {
			delete(i.clients, jobID)
		}
	}
	i.mu.Unlock()
	if ok {
		sess.stop()
		<-sess.done
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, sess := range i.clients[msg.JobID] {
		sess.enqueue(msg)
	}
}

func (i *impl) ClientCount(jobID int) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.clients[jobID])
}

// Close закрывает все сессии
func (i *impl) Close() {
	i.mu.Lock()
	all := i.clients
	i.clients = map[int]map[string]*clientSession{}
	i.mu.Unlock()
	for _, sessions := range all {
		for _, sess := range sessions {
			sess.stop()
			<-sess.done
		}
	}
}
