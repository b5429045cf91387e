package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to, message, subject string) error
	Configured() bool
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) Configured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(from, to, message, subject string) (err error) {
	logger := log.
		WithField("sender", from).
		WithField("subject", subject)
	if !i.Configured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(from, to, message, subject))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, to, message, subject string) string {
	header := strings.Join([]string{
		"To: " + to,
		"Subject: TalentFlow - " + strings.NewReplacer("\r", " ", "\n", " ").Replace(subject),
		"MIME-version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}, "\r\n")
	return fmt.Sprintf("%s\r\n\r\n%s\r\nОтправитель: %s\r\n", header, message, from)
}
