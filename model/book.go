// model/book.go
package model

// DateLayout is how calendar dates are stored (added_date, borrow_date,
// due_date, return_date).
const DateLayout = "2006-01-02"

// TimestampLayout is how account creation timestamps are stored.
const TimestampLayout = "2006-01-02 15:04:05"

type Book struct {
	ID        int64  `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Category  string `json:"category"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
	AddedDate string `json:"added_date"`
}
