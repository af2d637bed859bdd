package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctors table. Doctors are shared clinical data: no
// ownership column, every authenticated identity may read and mutate them.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
