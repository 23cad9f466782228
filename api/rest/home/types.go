package home

import homepage "github.com/Muneerali199/website-builder/internal/home"

type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

type SidebarResponse struct {
	Items []homepage.SidebarItem `json:"items"`
}
