package extract

import (
	"reflect"
	"testing"
)

func TestDedupeCollapsesSubstrings(t *testing.T) {
	candidates := []Candidate{
		{Name: "JOE'S COFFEE SHOP", Strategy: StrategyContext, Score: 29},
		{Name: "Joe's Coffee", Strategy: StrategyPositional, Score: 20}, // contained, case-insensitive
		{Name: "COFFEE", Strategy: StrategyPattern, Score: 12},          // contained
		{Name: "123 Main Street", Strategy: StrategyPositional, Score: 16},
	}

	got := names(dedupe(candidates))
	want := []string{"JOE'S COFFEE SHOP", "123 Main Street"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe = %v, want %v", got, want)
	}
}

func TestDedupeDropsSupersetOfAccepted(t *testing.T) {
	// A later candidate containing an accepted one is dropped too; the
	// earliest-generated representative wins.
	candidates := []Candidate{
		{Name: "Coffee", Score: 12},
		{Name: "Corner Coffee House", Score: 22},
	}
	got := names(dedupe(candidates))
	want := []string{"Coffee"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe = %v, want %v", got, want)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	candidates := []Candidate{
		{Name: "JOE'S COFFEE SHOP", Score: 29},
		{Name: "Joe's Coffee", Score: 20},
		{Name: "Open Daily", Score: 18},
		{Name: "123 Main Street", Score: 16},
	}

	once := dedupe(candidates)
	twice := dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe not idempotent: once=%v twice=%v", names(once), names(twice))
	}
}

func TestRankOrdersByScoreAndTruncates(t *testing.T) {
	candidates := []Candidate{
		{Name: "Third", Score: 10},
		{Name: "First", Score: 30},
		{Name: "Fourth", Score: 5},
		{Name: "Second", Score: 20},
	}

	got := names(rank(candidates))
	want := []string{"First", "Second", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rank = %v, want %v", got, want)
	}
}

func TestRankStableForTies(t *testing.T) {
	candidates := []Candidate{
		{Name: "Alpha", Score: 15},
		{Name: "Beta", Score: 15},
		{Name: "Gamma", Score: 15},
	}

	got := names(rank(candidates))
	want := []string{"Alpha", "Beta", "Gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rank tie order = %v, want %v", got, want)
	}
}

func TestRankLeavesInputUnmodified(t *testing.T) {
	candidates := []Candidate{
		{Name: "Low", Score: 1},
		{Name: "High", Score: 9},
	}
	rank(candidates)
	if candidates[0].Name != "Low" {
		t.Errorf("rank mutated its input: %v", names(candidates))
	}
}
