package home

import (
	"context"

	"github.com/Muneerali199/website-builder/internal/usage"
)

// page destinations
const (
	RouteHome      = "/"
	RouteDashboard = "/dashboard"
	RouteProjects  = "/projects"
	RouteHistory   = "/history"
	RoutePricing   = "/pricing"
	RouteSettings  = "/settings"
	RouteBuilder   = "/builder"
)

// destinations reachable from the sidebar, in display order
var SidebarRoutes = []SidebarItem{
	{Label: "Home", Route: RouteHome},
	{Label: "Dashboard", Route: RouteDashboard},
	{Label: "Projects", Route: RouteProjects},
	{Label: "History", Route: RouteHistory},
	{Label: "Pricing", Route: RoutePricing},
	{Label: "Settings", Route: RouteSettings},
}

// suggested prompts shown under the input
var Recommendations = []string{
	"Design a futuristic portfolio for my digital art",
	"Create an online store for sustainable fashion",
	"Build a tech blog with interactive demos",
	"Make a vibrant landing page for my app",
}

type SidebarItem struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// state handed to the builder flow with an accepted prompt
type BuilderState struct {
	Prompt string `json:"prompt"`
}

// moves the visitor to another page
type Navigator interface {
	Navigate(destination string, state any)
}

// runs a submission against the quota tracker, wherever it lives
type Submitter interface {
	Submit(ctx context.Context, prompt string) (usage.Outcome, error)
}

// a file the visitor picked; only its name and size are kept
type Attachment struct {
	Name string
	Size int64
}

// the prompt page state for one visitor
type Page struct {
	prompt          string
	sidebarExpanded bool
	usage           usage.View
	notice          string
	attachment      *Attachment
	submitter       Submitter
	navigator       Navigator
}
