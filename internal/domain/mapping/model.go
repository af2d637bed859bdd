package mapping

import (
	"time"

	"github.com/google/uuid"
)

// Mapping is a join record asserting a patient is under a doctor's care.
// Mappings are immutable once created and globally visible to every
// authenticated identity; there is no ownership gate here.
// PatientName and DoctorName are denormalized read-only output.
type Mapping struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	DoctorName  string    `db:"doctor_name" json:"doctor_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
