package domain

// BorrowStatus is the lifecycle state of a borrow record.
type BorrowStatus string

// Borrow statuses. Transitions between them are not restricted.
const (
	BorrowStatusBorrowed BorrowStatus = "borrowed"
	BorrowStatusReturned BorrowStatus = "returned"
)

// Valid reports whether s is a recognized status.
func (s BorrowStatus) Valid() bool {
	switch s {
	case BorrowStatusBorrowed, BorrowStatusReturned:
		return true
	default:
		return false
	}
}

// BorrowRecord links a user to a borrowed book. Timestamps are kept as the
// ISO-8601 strings the client supplied so they round-trip unchanged.
type BorrowRecord struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	BookID     string       `json:"bookId"`
	BorrowedAt string       `json:"borrowedAt"`
	DueDate    string       `json:"dueDate"`
	ReturnedAt *string      `json:"returnedAt"`
	Status     BorrowStatus `json:"status"`
}

// BorrowPatch carries the fields of a partial borrow update. ReturnedAt may be
// an explicit null, which clears the return timestamp.
type BorrowPatch struct {
	ReturnedAt Optional[string]       `json:"returnedAt"`
	DueDate    Optional[string]       `json:"dueDate"`
	Status     Optional[BorrowStatus] `json:"status"`
}

// Apply returns a copy of r with every present patch field overwritten.
// The returned record never shares the ReturnedAt pointer with r.
func (r BorrowRecord) Apply(p BorrowPatch) BorrowRecord {
	if r.ReturnedAt != nil {
		v := *r.ReturnedAt
		r.ReturnedAt = &v
	}
	if p.ReturnedAt.Set {
		r.ReturnedAt = p.ReturnedAt.Ptr()
	}
	if p.DueDate.Set {
		r.DueDate = p.DueDate.Value
	}
	if p.Status.Set {
		r.Status = p.Status.Value
	}
	return r
}

// Validate checks the invariants a stored borrow record must satisfy.
func (r BorrowRecord) Validate() error {
	if !r.Status.Valid() {
		return NewValidationError("status", "must be one of [borrowed, returned]", ErrInvalidBorrowStatus)
	}
	return nil
}
