package email

import (
	"errors"
	"hoa/packages/common/config"
	"hoa/packages/common/logger"
	"slices"

	"gopkg.in/gomail.v2"
)

var log = logger.NewSource("EMAIL", logger.Default)

type Email interface {
	To() string
	Subject() string
	// Builds message which is ready to be sent from the specified address.
	Message(from string) (*gomail.Message, error)
}

// Delivers messages, implemented by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

const mainMailerWorkers = 5

var MainMailer *Mailer
var isRunning = false

var validSMTPPorts = []int{587, 25, 465, 2525}

// Starts main mailer. Doesn't block.
func Run() error {
	log.Info("Initializing email module...", nil)

	if isRunning {
		errMsg := "Mailer already running"
		log.Error("Failed to start mailer", errMsg, nil)
		return errors.New(errMsg)
	}

	if !slices.Contains(validSMTPPorts, config.Email.SmtpPort) {
		errMsg := "Invalid SMTP port"
		log.Error("Failed to start mailer", errMsg, nil)
		return errors.New(errMsg)
	}

	dialer := gomail.NewDialer(
		config.Email.SmtpHost,
		config.Email.SmtpPort,
		config.Secret.MailerEmail,
		config.Secret.MailerEmailPassword,
	)

	MainMailer = NewMailer("main", dialer, config.Secret.MailerEmail, MailerOptions{
		Workers:     mainMailerWorkers,
		QueueSize:   config.Email.QueueSize,
		SendTimeout: config.Email.SendTimeout(),
	})

	go func() {
		if err := MainMailer.Run(); err != nil {
			log.Error("Main mailer failed", err.Error(), nil)
		}
	}()

	isRunning = true

	log.Info("Initializing email module: OK", nil)

	return nil
}

// Stops main mailer, waits till all pending emails are processed.
func Stop() error {
	log.Info("Stopping email module...", nil)

	if !isRunning {
		return errors.New("email module isn't started, hence can't be stopped")
	}

	defer func() { isRunning = false }()

	if err := MainMailer.Stop(); err != nil {
		return err
	}

	log.Info("Stopping email module: OK", nil)

	return nil
}
