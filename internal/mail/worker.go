package mail

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Worker consumes the email queue and pushes messages through the Mailer.
type Worker struct {
	server *asynq.Server
	mailer Mailer
}

func NewWorker(redisAddr, redisPassword string, mailer Mailer) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{queueEmails: 10},
		},
	)
	return &Worker{server: server, mailer: mailer}
}

// Run starts the worker on its own goroutine.
func (w *Worker) Run() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskOTPEmail, w.handleOTP)
	mux.HandleFunc(TaskHiredEmail, w.handleHired)

	go func() {
		if err := w.server.Run(mux); err != nil {
			logrus.WithError(err).Error("mail worker stopped")
		}
	}()
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleOTP(_ context.Context, t *asynq.Task) error {
	var p OTPEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	subject, body := otpBody(p.Name, p.Code)
	return w.mailer.Send(p.Email, subject, body)
}

func (w *Worker) handleHired(_ context.Context, t *asynq.Task) error {
	var p HiredEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	subject, body := hiredBody(p.Name, p.GigTitle)
	return w.mailer.Send(p.Email, subject, body)
}
