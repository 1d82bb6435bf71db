package storage

import (
	"database/sql"
	"errors"
	"time"

	"spendbook/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no expense with the requested id exists.
var ErrNotFound = errors.New("expense not found")

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens the database file at path, creating it if absent.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn, now: time.Now}, nil
}

// Migrate creates the schema. It is idempotent and is called once at
// startup, never from request handling.
//
// AUTOINCREMENT keeps ids monotonic so they are never reused after a delete.
func (db *DB) Migrate() error {
	_, err := db.conn.Exec(`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT,
		date TEXT NOT NULL,
		user_id TEXT
	)`)
	return err
}

// CreateExpense inserts a new expense and returns it with its assigned id.
// An empty Date is filled with today's date from the store's clock.
func (db *DB) CreateExpense(e *models.Expense) (*models.Expense, error) {
	if e.Date == "" {
		e.Date = db.now().Format("2006-01-02")
	}

	result, err := db.conn.Exec(
		"INSERT INTO expenses (title, amount, category, date, user_id) VALUES (?, ?, ?, ?, ?)",
		e.Title, e.Amount, e.Category, e.Date, e.UserID,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetExpense(id)
}

// GetExpense retrieves a single expense by id.
func (db *DB) GetExpense(id int64) (*models.Expense, error) {
	row := db.conn.QueryRow(
		"SELECT id, title, amount, category, date, user_id FROM expenses WHERE id = ?",
		id,
	)

	var e models.Expense
	if err := row.Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListExpenses retrieves expenses ordered by date descending, newest id
// first among equal dates. A non-empty userID restricts the result to
// rows owned by that token; an empty userID returns every row.
func (db *DB) ListExpenses(userID string) ([]models.Expense, error) {
	query := "SELECT id, title, amount, category, date, user_id FROM expenses"
	var args []any
	if userID != "" {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.UserID); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// UpdateExpense persists every column of e, keyed by its id.
func (db *DB) UpdateExpense(e *models.Expense) error {
	result, err := db.conn.Exec(
		"UPDATE expenses SET title = ?, amount = ?, category = ?, date = ?, user_id = ? WHERE id = ?",
		e.Title, e.Amount, e.Category, e.Date, e.UserID, e.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense permanently.
func (db *DB) DeleteExpense(id int64) error {
	result, err := db.conn.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountExpenses returns the number of expense rows.
func (db *DB) CountExpenses() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
