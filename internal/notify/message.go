package notify

import (
	"fmt"
	"strings"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

// content is what every channel shows for an event.
type content struct {
	Title   string
	Message string
	Link    string
}

// details are best-effort lookups used only for wording. Zero values are
// rendered with neutral fallbacks.
type details struct {
	assignee model.User
	project  model.Project
}

func (d details) assigneeName() string {
	if name := d.assignee.FullName(); name != "" {
		return name
	}
	return "the assignee"
}

func (d details) projectName() string {
	if d.project.Name != "" {
		return d.project.Name
	}
	return "unknown"
}

func taskLink(t model.Task) string {
	return "/tasks/" + t.ID
}

func render(ev Event, d details) content {
	c := content{Link: taskLink(ev.Task)}
	title := ev.Task.Title

	switch ev.Kind {
	case KindAssigned:
		c.Title = "New Task Assigned"
		c.Message = fmt.Sprintf("You have been assigned a new task: \"%s\"", title)
	case KindStatusChanged:
		c.Title = "Task " + string(ev.NewStatus)
		c.Message = fmt.Sprintf("Task \"%s\" has been marked as %s by %s",
			title, strings.ToLower(string(ev.NewStatus)), d.assigneeName())
	case KindCompleted:
		c.Title = "Task Completed"
		c.Message = fmt.Sprintf("Task \"%s\" has been marked as completed by %s", title, d.assigneeName())
	case KindApprovalChanged:
		c.Title = "Task Approval Update"
		if ev.Approved {
			c.Message = fmt.Sprintf("Your task \"%s\" has been approved by the manager", title)
		} else {
			c.Message = fmt.Sprintf("Your task \"%s\" approval has been revoked by the manager", title)
		}
	}
	return c
}

// emailBody is the plain-text email for one recipient.
func emailBody(ev Event, c content, d details, recipient model.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", greetingName(recipient))

	switch ev.Kind {
	case KindAssigned:
		deadline := "Not specified"
		if ev.Task.Deadline != nil {
			deadline = ev.Task.Deadline.Format("Mon Jan 02 2006")
		}
		fmt.Fprintf(&b, "%s\n\nDeadline: %s\n\nPlease check your dashboard for more details.", c.Message, deadline)
	case KindStatusChanged, KindCompleted:
		fmt.Fprintf(&b, "%s.\n\nProject: %s\n\nPlease review the task for approval.", c.Message, d.projectName())
	default:
		fmt.Fprintf(&b, "%s.\n\nPlease check your dashboard for more details.", c.Message)
	}
	return b.String()
}

func greetingName(u model.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return "there"
}
