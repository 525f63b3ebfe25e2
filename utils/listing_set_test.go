package utils

import "testing"

func TestListingSetNoDuplicates(t *testing.T) {
	s := NewListingSet()

	if !s.Add("https://www.amazon.in/dp/1", "Boat Rockerz 450") {
		t.Error("first Add should return true")
	}
	if s.Add("https://www.amazon.in/dp/1", "Boat Rockerz 450") {
		t.Error("second Add of the same listing should return false")
	}
}

func TestListingSetSharedLinkDifferentTitles(t *testing.T) {
	s := NewListingSet()
	page := "https://www.zeptonow.com/search?q=milk"

	if !s.Add(page, "Amul Taaza") || !s.Add(page, "Mother Dairy") {
		t.Error("cards sharing the page URL but with different titles are distinct")
	}
	if s.Add(page, "Amul Taaza") {
		t.Error("repeat card on the shared URL should be rejected")
	}
}

func TestListingSetKeyIsNotConcatenated(t *testing.T) {
	s := NewListingSet()

	s.Add("https://blinkit.com/a", "b")
	if !s.Add("https://blinkit.com/", "ab") {
		t.Error("different link/title splits must not collide")
	}
}
