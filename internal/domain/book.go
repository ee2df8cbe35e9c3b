package domain

// Book is a title held by the library and the number of copies on the shelf.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	CopiesAvailable int    `json:"copiesAvailable"`
}

// BookPatch carries the fields of a partial book update.
type BookPatch struct {
	Title           Optional[string] `json:"title"`
	Author          Optional[string] `json:"author"`
	CopiesAvailable Optional[int]    `json:"copiesAvailable"`
}

// Apply returns a copy of b with every present patch field overwritten.
func (b Book) Apply(p BookPatch) Book {
	if p.Title.Set {
		b.Title = p.Title.Value
	}
	if p.Author.Set {
		b.Author = p.Author.Value
	}
	if p.CopiesAvailable.Set {
		b.CopiesAvailable = p.CopiesAvailable.Value
	}
	return b
}

// Validate checks the invariants a stored book must satisfy.
func (b Book) Validate() error {
	if b.CopiesAvailable < 0 {
		return NewValidationError("copiesAvailable", "must be greater than or equal to 0", ErrInvalidCopies)
	}
	return nil
}
