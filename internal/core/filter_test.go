package core

import (
	"reflect"
	"testing"
)

func TestFilterByCategory(t *testing.T) {
	entries := []Entry{
		{ID: "1", Description: "咖啡", Amount: Money{Cents: 450}, Category: CategoryFood},
		{ID: "2", Description: "地铁", Amount: Money{Cents: 300}, Category: CategoryTransport},
		{ID: "3", Description: "午饭", Amount: Money{Cents: 2200}, Category: CategoryFood},
	}

	// Empty filter matches everything, unchanged.
	if got := FilterByCategory(entries, ""); !reflect.DeepEqual(got, entries) {
		t.Fatalf("empty filter changed result: %v", got)
	}

	got := FilterByCategory(entries, CategoryFood)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected food subsequence: %v", got)
	}

	if got := FilterByCategory(entries, CategoryHousing); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}

	// Input is never mutated.
	want := []Entry{entries[0], entries[1], entries[2]}
	FilterByCategory(entries, CategoryTransport)
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("input mutated: %v", entries)
	}
}

func TestFilterByCategoryEmptyInput(t *testing.T) {
	if got := FilterByCategory(nil, CategoryFood); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
