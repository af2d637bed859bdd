package patient

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Patient maps to the patients table. CreatedBy is the owning identity: set
// once at creation, immutable, and never serialized. CreatedByUsername is
// denormalized read-only output joined from the users table.
type Patient struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	DateOfBirth       Date      `db:"date_of_birth" json:"date_of_birth"`
	Address           string    `db:"address" json:"address"`
	CreatedBy         uuid.UUID `db:"created_by" json:"-"`
	CreatedByUsername string    `db:"created_by_username" json:"created_by_username"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
