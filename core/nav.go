package core

import (
	"context"
	"fmt"
)

// NavItem is one entry in the primary navigation.
type NavItem struct {
	Label  string
	URL    string
	Active bool
}

// buildNav assembles the primary navigation from the classification list.
// The Classic classification is showroom-only and stays out of the nav.
func buildNav(ctx context.Context, cache *ClassificationCache, activeClassificationID int64) ([]NavItem, error) {
	classifications, err := cache.Classifications(ctx)
	if err != nil {
		return nil, err
	}

	nav := []NavItem{{Label: "Home", URL: "/", Active: activeClassificationID == 0}}
	for _, c := range classifications {
		if c.Name == "Classic" {
			continue
		}
		nav = append(nav, NavItem{
			Label:  c.Name,
			URL:    fmt.Sprintf("/inv/type/%d", c.ID),
			Active: c.ID == activeClassificationID,
		})
	}
	return nav, nil
}
