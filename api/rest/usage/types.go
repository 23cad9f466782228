package usage

import "github.com/Muneerali199/website-builder/internal/usage"

// UsageResponse is the visitor's current quota as shown on the prompt page
type UsageResponse struct {
	Usage     usage.View `json:"usage"`
	Store     string     `json:"store"`
	SignedIn  bool       `json:"signed_in"`
	SessionID string     `json:"session_id,omitempty"`
}
