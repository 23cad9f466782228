package prompts

import (
	"context"

	"github.com/Muneerali199/website-builder/internal/home"
	"github.com/Muneerali199/website-builder/internal/notifications"
	"github.com/Muneerali199/website-builder/internal/usage"
)

const (
	StatusAccepted = "accepted"
	StatusIgnored  = "ignored"
)

// SubmitRequest carries the prompt typed on the home page. a blank prompt is
// ignored; a missing one is a bad request.
type SubmitRequest struct {
	Prompt *string `json:"prompt" binding:"omitempty,max=10000"`
}

// SubmitResponse tells the client what happened and where to go next
type SubmitResponse struct {
	Status   string             `json:"status"`
	Redirect string             `json:"redirect,omitempty"`
	State    *home.BuilderState `json:"state,omitempty"`
	Usage    usage.View         `json:"usage"`
}

// pushes usage changes to live subscribers
type Publisher interface {
	Publish(id usage.Identity, view usage.View)
}

// records quota notices for signed-in users
type Notifier interface {
	NotifyUsage(ctx context.Context, userID string, record usage.Record) (*notifications.Notification, error)
}

// what the prompt handler needs; Feed and Notifier may be nil
type Deps struct {
	Resolver *usage.Resolver
	Sessions usage.SessionIssuer
	Feed     Publisher
	Notifier Notifier
}
