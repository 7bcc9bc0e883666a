package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

// RealtimeEvent is the event name used for every real-time push.
const RealtimeEvent = "notification"

var errNoAddress = errors.New("recipient has no email address")

// RealtimeChannel pushes to a recipient's live connection. Having no live
// connection is not an error.
type RealtimeChannel interface {
	Emit(recipientID, event string, payload any) error
}

type EmailGateway interface {
	Send(ctx context.Context, address, subject, body string) error
}

type Channel string

const (
	ChannelRecord   Channel = "record"
	ChannelRealtime Channel = "realtime"
	ChannelEmail    Channel = "email"
)

// Result is the outcome of one channel for one recipient.
type Result struct {
	RecipientID string
	Channel     Channel
	Err         error
}

// Report collects every channel outcome of one dispatch pass.
type Report struct {
	Kind    Kind
	TaskID  string
	Results []Result
}

func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Delivered counts the recipients for which ch succeeded.
func (r Report) Delivered(ch Channel) int {
	n := 0
	for _, res := range r.Results {
		if res.Channel == ch && res.Err == nil {
			n++
		}
	}
	return n
}

// Payload is the body of a real-time push.
type Payload struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"createdAt"`
}

type Dispatcher struct {
	notifications repo.NotificationRepository
	users         repo.UserRepository
	projects      repo.ProjectRepository
	realtime      RealtimeChannel
	email         EmailGateway
	logger        *zap.Logger
}

func NewDispatcher(
	notifications repo.NotificationRepository,
	users repo.UserRepository,
	projects repo.ProjectRepository,
	realtime RealtimeChannel,
	email EmailGateway,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		users:         users,
		projects:      projects,
		realtime:      realtime,
		email:         email,
		logger:        logger,
	}
}

// Dispatch delivers ev to every recipient in order. Each channel of each
// recipient is attempted regardless of earlier failures; failures are logged
// and returned in the report, never as an error. There is no retry and no
// deduplication across calls.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event, recipients []string) Report {
	report := Report{Kind: ev.Kind, TaskID: ev.Task.ID}
	if len(recipients) == 0 {
		return report
	}

	det := d.details(ctx, ev)
	c := render(ev, det)
	for _, id := range recipients {
		report.Results = append(report.Results, d.deliver(ctx, ev, c, det, id)...)
	}

	for _, f := range report.Failures() {
		d.logger.Warn("notification channel failed",
			zap.String("event", string(ev.Kind)),
			zap.String("task_id", ev.Task.ID),
			zap.String("recipient_id", f.RecipientID),
			zap.String("channel", string(f.Channel)),
			zap.Error(f.Err),
		)
	}
	return report
}

func (d *Dispatcher) deliver(ctx context.Context, ev Event, c content, det details, recipientID string) []Result {
	createdAt := time.Now().UTC()

	recordErr := isolate(func() error {
		n, err := d.notifications.Create(ctx, model.Notification{
			RecipientID: recipientID,
			Title:       c.Title,
			Message:     c.Message,
			Link:        c.Link,
		})
		if err != nil {
			return err
		}
		createdAt = n.CreatedAt
		return nil
	})

	pushErr := isolate(func() error {
		return d.realtime.Emit(recipientID, RealtimeEvent, Payload{
			Title:     c.Title,
			Message:   c.Message,
			Link:      c.Link,
			CreatedAt: createdAt,
		})
	})

	emailErr := isolate(func() error {
		u, err := d.users.Get(ctx, recipientID)
		if err != nil {
			return fmt.Errorf("looking up recipient: %w", err)
		}
		if u.Email == "" {
			return errNoAddress
		}
		return d.email.Send(ctx, u.Email, c.Title, emailBody(ev, c, det, u))
	})

	return []Result{
		{RecipientID: recipientID, Channel: ChannelRecord, Err: recordErr},
		{RecipientID: recipientID, Channel: ChannelRealtime, Err: pushErr},
		{RecipientID: recipientID, Channel: ChannelEmail, Err: emailErr},
	}
}

// details loads the names used in status and completion wording.
func (d *Dispatcher) details(ctx context.Context, ev Event) details {
	var det details
	if ev.Kind != KindStatusChanged && ev.Kind != KindCompleted {
		return det
	}
	if u, err := d.users.Get(ctx, ev.Task.AssignedTo); err == nil {
		det.assignee = u
	}
	if p, err := d.projects.Get(ctx, ev.Task.ProjectID); err == nil {
		det.project = p
	}
	return det
}

// isolate runs one channel step, turning a panic into an error so the next
// step still runs.
func isolate(step func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("channel panicked: %v", p)
		}
	}()
	return step()
}
