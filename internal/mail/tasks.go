package mail

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

const (
	TaskOTPEmail   = "email:otp"
	TaskHiredEmail = "email:hired"

	queueEmails = "emails"
)

type OTPEmailPayload struct {
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Code   string    `json:"code"`
	SentAt time.Time `json:"sent_at"`
}

type HiredEmailPayload struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	GigTitle string    `json:"gig_title"`
	SentAt   time.Time `json:"sent_at"`
}

// Enqueuer schedules email tasks. All Enqueue methods are best-effort for
// callers: a broker failure is logged and returned, never fatal.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisAddr, redisPassword string) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword}),
	}
}

// EnqueueOTP schedules the verification-code email sent at registration.
func (e *Enqueuer) EnqueueOTP(email, name, code string) error {
	b, _ := json.Marshal(OTPEmailPayload{Email: email, Name: name, Code: code, SentAt: time.Now()})
	_, err := e.client.Enqueue(asynq.NewTask(TaskOTPEmail, b), asynq.Queue(queueEmails))
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("enqueue otp email")
	}
	return err
}

// EnqueueHired schedules the you-were-hired email for a freelancer.
func (e *Enqueuer) EnqueueHired(email, name, gigTitle string) error {
	b, _ := json.Marshal(HiredEmailPayload{Email: email, Name: name, GigTitle: gigTitle, SentAt: time.Now()})
	_, err := e.client.Enqueue(asynq.NewTask(TaskHiredEmail, b), asynq.Queue(queueEmails))
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("enqueue hired email")
	}
	return err
}

func otpBody(name, code string) (subject, body string) {
	subject = "GigFlow - Email Verification"
	body = fmt.Sprintf("Hi %s,\n\nYour verification code is: %s\n\nThis code expires in 10 minutes.", name, code)
	return
}

func hiredBody(name, gigTitle string) (subject, body string) {
	subject = fmt.Sprintf("You have been hired for %q", gigTitle)
	body = fmt.Sprintf("Hi %s,\n\nCongratulations! The client selected your bid for %q. Open GigFlow to see the details.", name, gigTitle)
	return
}
