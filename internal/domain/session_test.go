package domain

import "testing"

func TestAddShopStepSequence(t *testing.T) {
	sess := NewSession(ActionAddShop)
	want := []Step{StepName, StepStreet, StepCity, StepState, StepZip, StepType}

	for i, step := range want {
		if sess.Step != step {
			t.Fatalf("Expected step %v at position %d, got %v", step, i, sess.Step)
		}
		if !ValidStep(sess.Action, sess.Step) {
			t.Errorf("Step %v should be valid for %v", sess.Step, sess.Action)
		}
		advanced := sess.Advance()
		if last := i == len(want)-1; advanced == last {
			t.Errorf("Advance at step %v returned %v", step, advanced)
		}
	}
}

func TestFindShopsStepSequence(t *testing.T) {
	sess := NewSession(ActionFindShops)
	want := []Step{StepZip, StepRadius, StepType}

	for i, step := range want {
		if sess.Step != step {
			t.Fatalf("Expected step %v at position %d, got %v", step, i, sess.Step)
		}
		advanced := sess.Advance()
		if last := i == len(want)-1; advanced == last {
			t.Errorf("Advance at step %v returned %v", step, advanced)
		}
	}
}

func TestValidStepRejectsForeignSteps(t *testing.T) {
	if ValidStep(ActionFindShops, StepStreet) {
		t.Error("StepStreet should not be valid for findshops")
	}
	if ValidStep(ActionAddShop, StepRadius) {
		t.Error("StepRadius should not be valid for addshop")
	}
}

func TestNewSessionStartsWithSentinelRadius(t *testing.T) {
	sess := NewSession(ActionFindShops)
	if sess.Query.RadiusMiles >= 0 {
		t.Errorf("Expected sentinel radius, got %f", sess.Query.RadiusMiles)
	}
}

func TestNormalizeShopType(t *testing.T) {
	if got := NormalizeShopType("  Tire Shop "); got != "tire shop" {
		t.Errorf("Expected %q, got %q", "tire shop", got)
	}
}

func TestShopDraftMaterializes(t *testing.T) {
	draft := ShopDraft{
		Name: "Joe's Tires", Street: "123 Main St", City: "San Francisco",
		State: "CA", Zip: "94105", Lat: 37.79, Lon: -122.40,
	}
	shop := draft.Shop("tire shop")
	if shop.Type != "tire shop" || shop.Name != draft.Name || shop.Lat != 37.79 {
		t.Errorf("Unexpected shop from draft: %+v", shop)
	}
	if shop.ID != "" {
		t.Errorf("Expected ID left for the store to generate, got %q", shop.ID)
	}
}
