package models

// Expense represents one spending record.
//
// Category and UserID serialize as JSON null when unset; every other field
// is always present in API responses.
type Expense struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category *string `json:"category"`
	Date     string  `json:"date"`
	UserID   *string `json:"user_id"`
}
