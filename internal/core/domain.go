package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// MinDescriptionLen is the minimum number of characters a transaction
// description must have.
const MinDescriptionLen = 2

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Rupiah int64
	}

	// Transaction is a single recorded income or expense event.
	// Identity is the ID; edits replace the whole record.
	Transaction struct {
		ID          int64           `json:"id"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Date        Date            `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// Goal is a savings target. Saved may exceed Target; clamping is a
	// display concern only.
	Goal struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Target    Money     `json:"target"`
		Deadline  Date      `json:"deadline"`
		Category  string    `json:"category"`
		Saved     Money     `json:"saved"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrDescriptionTooShort = errors.New("description too short")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrEmptyCategory       = errors.New("empty category")
	ErrEmptyName           = errors.New("empty name")
)

// NewDate creates a Date from year, month, day. The time component is
// always midnight UTC so two dates on the same day compare equal.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date in ISO YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// SameMonth reports whether the date falls in the same calendar month and
// year as t.
func (d Date) SameMonth(t time.Time) bool {
	return d.Time.Year() == t.Year() && d.Time.Month() == t.Month()
}

// SameDay reports whether the date falls on the same calendar day as t.
func (d Date) SameDay(t time.Time) bool {
	return d.SameMonth(t) && d.Time.Day() == t.Day()
}

// String formats the date in ISO YYYY-MM-DD form.
func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// MarshalJSON encodes the date as a bare YYYY-MM-DD string so stored
// values survive a round trip unchanged.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (m Money) Validate() error {
	if m.Rupiah <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	desc := strings.TrimSpace(tx.Description)
	if len(desc) == 0 {
		return ErrEmptyDescription
	}
	if len(desc) < MinDescriptionLen {
		return ErrDescriptionTooShort
	}
	if err := tx.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if err := g.Deadline.Validate(); err != nil {
		return err
	}
	if g.Saved.Rupiah < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Completed reports whether the saved amount has reached the target.
func (g Goal) Completed() bool {
	return g.Saved.Rupiah >= g.Target.Rupiah
}
