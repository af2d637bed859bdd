package mapping

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrec/medrec/internal/platform/apperr"
	"github.com/medrec/medrec/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const mappingCols = `m.id, m.patient_id, m.doctor_id, p.name, d.name, m.created_at`

const mappingJoin = `FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		JOIN doctors d ON d.id = m.doctor_id`

func (r *repoPG) Create(ctx context.Context, m *Mapping) error {
	m.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_doctor_mappings (id, patient_id, doctor_id)
		VALUES ($1, $2, $3)
		RETURNING created_at,
			(SELECT name FROM patients WHERE id = $2),
			(SELECT name FROM doctors WHERE id = $3)`,
		m.ID, m.PatientID, m.DoctorID,
	).Scan(&m.CreatedAt, &m.PatientName, &m.DoctorName)
	return apperr.FromPG(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Mapping, error) {
	m := &Mapping{}
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT `+mappingCols+` `+mappingJoin+`
		WHERE m.id = $1`, id,
	).Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.PatientName, &m.DoctorName, &m.CreatedAt)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	return m, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Mapping, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient_doctor_mappings`).Scan(&total); err != nil {
		return nil, 0, apperr.FromPG(err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+mappingCols+` `+mappingJoin+`
		ORDER BY m.created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, apperr.FromPG(err)
	}
	defer rows.Close()

	var mappings []*Mapping
	for rows.Next() {
		m := &Mapping{}
		if err := rows.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.PatientName, &m.DoctorName, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return mappings, total, nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient_doctor_mappings WHERE id = $1`, id)
	if err != nil {
		return apperr.FromPG(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
