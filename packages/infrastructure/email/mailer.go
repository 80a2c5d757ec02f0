package email

import (
	"context"
	"errors"
	"hoa/packages/common/structs"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
)

var ErrQueueFull = errors.New("mailer queue is full")

type MailerOptions struct {
	Workers int
	// Max amount of pending emails, zero means no limit.
	QueueSize int
	// Max duration of sending a single email, zero means no limit.
	SendTimeout time.Duration
}

// Sends emails in background using worker pool.
// Stops trying to send emails for a while if SMTP server keeps failing.
type Mailer struct {
	name    string
	from    string
	sender  Sender
	opt     MailerOptions
	pool    *structs.WorkerPool
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// Creates new mailer with specified name.
// (Several mailers can have the same names, be careful)
func NewMailer(name string, sender Sender, from string, opt MailerOptions) *Mailer {
	return &Mailer{
		name:   name,
		from:   from,
		sender: sender,
		opt:    opt,
		pool:   structs.NewWorkerPool(opt.Workers),
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        "Mailer " + name,
			Interval:    time.Minute,
			Timeout:     time.Second * 30,
			MaxRequests: 1,
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warning(name+": "+from.String()+" -> "+to.String(), nil)
			},
		}),
	}
}

// Starts mailer workers. Blocks till mailer is stopped.
func (m *Mailer) Run() error {
	log.Info("Mailer '"+m.name+"' started", nil)

	return m.pool.Start()
}

func (m *Mailer) IsRunning() bool {
	return m.pool.IsStarted() && !m.pool.IsCanceled()
}

// Stops mailer. Waits till all pending emails are processed.
func (m *Mailer) Stop() error {
	pending := m.pool.Pending()

	if err := m.pool.Cancel(); err != nil {
		return errors.New("mailer '" + m.name + "' is not running, hence can't be stopped")
	}

	log.Info("Mailer '"+m.name+"' shut down, sent "+strconv.Itoa(pending)+" pending emails on exit", nil)

	return nil
}

// Pushes new mail to mailer queue
func (m *Mailer) Push(mail Email) error {
	if m.opt.QueueSize > 0 && m.pool.Pending() >= m.opt.QueueSize {
		log.Warning("Mailer '"+m.name+"' queue is full, dropping email to "+mail.To(), nil)
		return ErrQueueFull
	}

	return m.pool.Push(structs.TaskFunc(func() {
		// error is already logged
		_ = m.Send(mail)
	}))
}

// Sends mail synchronously.
func (m *Mailer) Send(mail Email) error {
	log.Trace("Sending '"+mail.Subject()+"' to "+mail.To()+"...", nil)

	msg, err := mail.Message(m.from)
	if err != nil {
		log.Error("Failed to build email to "+mail.To(), err.Error(), nil)
		return err
	}

	_, err = m.breaker.Execute(func() (struct{}, error) {
		return structs.WithTimeout(context.Background(), m.opt.SendTimeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, m.sender.DialAndSend(msg)
		})
	})
	if err != nil {
		log.Error("Failed to send email to "+mail.To(), err.Error(), nil)
		return err
	}

	log.Trace("Sending '"+mail.Subject()+"' to "+mail.To()+": OK", nil)

	return nil
}
