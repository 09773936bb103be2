package core

import (
	"context"
	"testing"
	"time"
)

func TestBuildNavExcludesClassic(t *testing.T) {
	inventory := newFakeInventoryRepo("Sport", "Classic", "SUV")
	cache := NewClassificationCache(nil, inventory, time.Minute)

	nav, err := buildNav(context.Background(), cache, 0)
	if err != nil {
		t.Fatalf("buildNav error: %v", err)
	}
	if len(nav) != 3 {
		t.Fatalf("expected Home plus two classifications, got %v", nav)
	}
	if nav[0].Label != "Home" || !nav[0].Active {
		t.Fatalf("Home must lead and be active with no selection: %v", nav[0])
	}
	for _, item := range nav {
		if item.Label == "Classic" {
			t.Fatalf("Classic must stay out of the nav")
		}
	}
}

func TestBuildNavMarksActiveClassification(t *testing.T) {
	inventory := newFakeInventoryRepo("Sport", "SUV")
	cache := NewClassificationCache(nil, inventory, time.Minute)

	nav, err := buildNav(context.Background(), cache, 2)
	if err != nil {
		t.Fatalf("buildNav error: %v", err)
	}
	if nav[0].Active {
		t.Fatalf("Home must not be active when a classification is selected")
	}
	if nav[2].Label != "SUV" || !nav[2].Active || nav[2].URL != "/inv/type/2" {
		t.Fatalf("unexpected active item: %+v", nav[2])
	}
}
