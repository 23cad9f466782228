// package home holds the state of the prompt page: the prompt being typed,
// the sidebar, the usage indicator, and where a submission sends the visitor.
package home

import (
	"context"
	"fmt"
	"slices"

	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/usage"
)

const (
	NoticeSignIn = "Please sign in to submit prompts"
	NoticeLimit  = "You've reached your free limit. Please upgrade to continue."
)

// creates a page starting from the visitor's current usage
func NewPage(submitter Submitter, navigator Navigator, current usage.View) *Page {
	return &Page{
		usage:     current,
		submitter: submitter,
		navigator: navigator,
	}
}

func (p *Page) Prompt() string {
	return p.prompt
}

func (p *Page) SetPrompt(prompt string) {
	p.prompt = prompt
	p.notice = ""
}

// fills the prompt with one of the suggestions
func (p *Page) UseRecommendation(index int) error {
	if index < 0 || index >= len(Recommendations) {
		return fmt.Errorf("no recommendation at index %d", index)
	}

	p.SetPrompt(Recommendations[index])
	return nil
}

func (p *Page) SidebarExpanded() bool {
	return p.sidebarExpanded
}

func (p *Page) ExpandSidebar() {
	p.sidebarExpanded = true
}

func (p *Page) CollapseSidebar() {
	p.sidebarExpanded = false
}

func (p *Page) ToggleSidebar() {
	p.sidebarExpanded = !p.sidebarExpanded
}

// returns the usage indicator state
func (p *Page) Usage() usage.View {
	return p.usage
}

// replaces the usage indicator state, e.g. after a fresh load
func (p *Page) SetUsage(view usage.View) {
	p.usage = view
}

// returns the message to show the visitor, if any
func (p *Page) Notice() string {
	return p.notice
}

// records a picked file. files are not uploaded anywhere.
func (p *Page) AttachFile(name string, size int64) {
	p.attachment = &Attachment{Name: name, Size: size}
	logger.Info("file attached to prompt", "name", name, "size", size)
}

func (p *Page) Attachment() *Attachment {
	return p.attachment
}

// goes to a sidebar destination
func (p *Page) Navigate(destination string) error {
	if !slices.ContainsFunc(SidebarRoutes, func(item SidebarItem) bool {
		return item.Route == destination
	}) {
		return fmt.Errorf("unknown destination %q", destination)
	}

	p.navigator.Navigate(destination, nil)
	return nil
}

// submits the current prompt and acts on the outcome: accepted prompts go to
// the builder and clear the input, an exhausted quota goes to pricing.
// a failed usage write does not stop the hand-off.
func (p *Page) Submit(ctx context.Context) (usage.Outcome, error) {
	outcome, err := p.submitter.Submit(ctx, p.prompt)
	if err != nil && outcome.Signal != usage.SignalAccepted {
		return outcome, err
	}

	if err != nil {
		logger.Warn("usage write failed, continuing to builder", "error", err)
	}

	switch outcome.Signal {
	case usage.SignalAccepted:
		p.usage = outcome.Record.View()
		p.notice = ""
		p.navigator.Navigate(RouteBuilder, BuilderState{Prompt: outcome.Prompt})
		p.prompt = ""

	case usage.SignalMustAuthenticate:
		p.notice = NoticeSignIn

	case usage.SignalQuotaExhausted:
		p.usage = outcome.Record.View()
		p.notice = NoticeLimit
		p.navigator.Navigate(RoutePricing, nil)
	}

	return outcome, nil
}
