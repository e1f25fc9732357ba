package service

import (
	"sort"
	"sync"

	"github.com/andy/billfold/internal/config"
	"github.com/andy/billfold/internal/domain"
)

// ListState mirrors the server's invoice set for the signed-in user. The
// canonical slice is only changed by reconciling successful API responses;
// filter and sort are a derived projection and never touch it, so clearing
// the filter always restores the full list.
//
// The mutex covers concurrent access from TUI command goroutines.
type ListState struct {
	mu        sync.Mutex
	invoices  []*domain.Invoice
	threshold *float64
	policy    string
	sorted    bool
}

// NewListState creates an empty list with the given filter policy
func NewListState(filterPolicy string) *ListState {
	return &ListState{policy: filterPolicy}
}

// Replace swaps in a freshly fetched list
func (l *ListState) Replace(invoices []*domain.Invoice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invoices = append([]*domain.Invoice(nil), invoices...)
}

// Append adds a newly created record to the end of the canonical list
func (l *ListState) Append(invoice *domain.Invoice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invoices = append(l.invoices, invoice)
}

// ApplyUpdate replaces the record matching the update's identifier.
// Records with other identifiers are untouched. Returns false when no
// record matched.
func (l *ListState) ApplyUpdate(invoice *domain.Invoice) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, inv := range l.invoices {
		if inv.ID == invoice.ID {
			l.invoices[i] = invoice
			return true
		}
	}
	return false
}

// Remove drops the record with the given identifier. Returns false when
// no record matched.
func (l *ListState) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, inv := range l.invoices {
		if inv.ID == id {
			l.invoices = append(l.invoices[:i], l.invoices[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the canonical list (logout, account deletion)
func (l *ListState) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invoices = nil
	l.threshold = nil
	l.sorted = false
}

// Get returns the record with the given identifier, or nil
func (l *ListState) Get(id string) *domain.Invoice {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, inv := range l.invoices {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

// Len returns the canonical list length, ignoring any active filter
func (l *ListState) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.invoices)
}

// SetFilter sets the price threshold for the projection
func (l *ListState) SetFilter(threshold float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.threshold = &threshold
}

// ClearFilter removes the threshold; the full list becomes visible again
func (l *ListState) ClearFilter() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.threshold = nil
}

// Filtered reports whether a threshold is active
func (l *ListState) Filtered() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.threshold != nil
}

// SetSorted enables or disables description ordering in the projection
func (l *ListState) SetSorted(sorted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sorted = sorted
}

// Sorted reports whether description ordering is active
func (l *ListState) Sorted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sorted
}

// Visible computes the display projection: the canonical list narrowed by
// the threshold and ordered by case-sensitive description comparison when
// sorting is on. The result is a fresh slice; the canonical list is never
// reordered or truncated.
func (l *ListState) Visible() []*domain.Invoice {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Invoice, 0, len(l.invoices))
	for _, inv := range l.invoices {
		if l.threshold != nil && !l.matches(inv) {
			continue
		}
		out = append(out, inv)
	}

	if l.sorted {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Description < out[j].Description
		})
	}

	return out
}

func (l *ListState) matches(inv *domain.Invoice) bool {
	if l.policy == config.FilterPolicyLTE {
		return inv.Price <= *l.threshold
	}
	return inv.Price >= *l.threshold
}
