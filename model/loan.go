// model/loan.go
package model

type LoanStatus string

const (
	LoanBorrowed LoanStatus = "borrowed"
	LoanReturned LoanStatus = "returned"
)

// Loan is a borrow transaction. BookTitle is a denormalized snapshot taken
// at borrow time; ReturnDate stays empty until the loan is returned. Fine is
// in whole currency units.
type Loan struct {
	ID         int64      `json:"transaction_id"`
	Username   string     `json:"username"`
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	BorrowDate string     `json:"borrow_date"`
	DueDate    string     `json:"due_date"`
	ReturnDate string     `json:"return_date"`
	Status     LoanStatus `json:"status"`
	Fine       int64      `json:"fine"`
}
