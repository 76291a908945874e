package dispatch

import "testing"

var pip20 = Table{
	Name: "Pip20",
	Calls: []CallMeta{
		{Index: 0, Name: "transfer", Selector: &SelectorMeta{Kind: SelectorDefault, ReturnType: "Runtime::Currency"}},
		{Index: 1, Name: "approve", Selector: &SelectorMeta{Kind: SelectorNamed, Name: "RestrictedCurrency", ReturnType: "Runtime::Currency"}},
		{Index: 3, Name: "burn"},
	},
	Views: []ViewMeta{
		{Index: 0, Name: "balance"},
	},
}

func TestCallName(t *testing.T) {
	name, ok := pip20.CallName(3)
	if !ok || name != "burn" {
		t.Errorf("expected burn, got %q ok=%v", name, ok)
	}
	if _, ok := pip20.CallName(2); ok {
		t.Error("expected a miss for an unassigned index")
	}
}

func TestCallIndex(t *testing.T) {
	idx, ok := pip20.CallIndex("approve")
	if !ok || idx != 1 {
		t.Errorf("expected 1, got %d ok=%v", idx, ok)
	}
	if _, ok := pip20.CallIndex("mint"); ok {
		t.Error("expected a miss for an unknown name")
	}
}

func TestViewName(t *testing.T) {
	name, ok := pip20.ViewName(0)
	if !ok || name != "balance" {
		t.Errorf("expected balance, got %q ok=%v", name, ok)
	}
	if _, ok := pip20.ViewName(1); ok {
		t.Error("expected a miss for an unassigned view index")
	}
}
