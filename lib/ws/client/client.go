package wsclient

import (
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

func NewClient(jobID int, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:  c,
		jobID: jobID,
	}
}

// WsClient читает входящие сообщения до закрытия соединения, содержимое игнорируется
type WsClient struct {
	conn  *websocket.Conn
	jobID int
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

func (c *WsClient) Dispatch() {
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				log.WithError(err).WithField("job_id", c.jobID).Error("ошибка получения сообщения")
			}
			return
		}
		log.WithField("job_id", c.jobID).WithField("ws_message", string(data)).Debug("ws-msg")
	}
}
