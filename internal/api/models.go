package api

import "github.com/phrazzld/library-api/internal/domain"

// Request bodies. They are only decoded after the validation middleware has
// accepted the payload, so the rules live in internal/validation.
//
// Update bodies decode straight into the domain patch types, which remember
// which keys were present.

// CreateUserRequest defines the payload for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (req CreateUserRequest) toDomain() domain.User {
	return domain.User{Name: req.Name, Email: req.Email}
}

// CreateBookRequest defines the payload for POST /books.
type CreateBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	CopiesAvailable int    `json:"copiesAvailable"`
}

func (req CreateBookRequest) toDomain() domain.Book {
	return domain.Book{Title: req.Title, Author: req.Author, CopiesAvailable: req.CopiesAvailable}
}

// CreateBorrowRequest defines the payload for POST /borrows.
// BorrowedAt is optional and defaults to the time of the request.
type CreateBorrowRequest struct {
	UserID     string `json:"userId"`
	BookID     string `json:"bookId"`
	BorrowedAt string `json:"borrowedAt,omitempty"`
	DueDate    string `json:"dueDate"`
}

func (req CreateBorrowRequest) toDomain() domain.BorrowRecord {
	return domain.BorrowRecord{
		UserID:     req.UserID,
		BookID:     req.BookID,
		BorrowedAt: req.BorrowedAt,
		DueDate:    req.DueDate,
	}
}
