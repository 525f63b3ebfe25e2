package utils

// ListingKey identifies one offer within a single site's results. Some sites
// give every card the same link, so the title is part of the key.
type ListingKey struct {
	Link  string
	Title string
}

// ListingSet tracks the offers already extracted from a page. It is owned by
// one extraction and is not safe for concurrent use.
type ListingSet struct {
	seen map[ListingKey]struct{}
}

// NewListingSet creates an empty ListingSet.
func NewListingSet() *ListingSet {
	return &ListingSet{seen: make(map[ListingKey]struct{})}
}

// Add returns true if link+title was newly added, false if already present.
func (s *ListingSet) Add(link, title string) bool {
	key := ListingKey{Link: link, Title: title}
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}
