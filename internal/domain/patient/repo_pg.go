package patient

import (
	"context"
	"time"

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

const patientCols = `p.id, p.name, p.date_of_birth, p.address, p.created_by, u.username, p.created_at, p.updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (id, name, date_of_birth, address, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at,
			(SELECT username FROM users WHERE id = $5)`,
		p.ID, p.Name, p.DateOfBirth.Time, p.Address, p.CreatedBy,
	).Scan(&p.CreatedAt, &p.UpdatedAt, &p.CreatedByUsername)
	return apperr.FromPG(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p := &Patient{}
	var dob time.Time
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT `+patientCols+`
		FROM patients p JOIN users u ON u.id = p.created_by
		WHERE p.id = $1`, id,
	).Scan(&p.ID, &p.Name, &dob, &p.Address, &p.CreatedBy, &p.CreatedByUsername, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	p.DateOfBirth = Date{dob}
	return p, nil
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE created_by = $1`, ownerID,
	).Scan(&total); err != nil {
		return nil, 0, apperr.FromPG(err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+`
		FROM patients p JOIN users u ON u.id = p.created_by
		WHERE p.created_by = $1
		ORDER BY p.name LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, apperr.FromPG(err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p := &Patient{}
		var dob time.Time
		if err := rows.Scan(&p.ID, &p.Name, &dob, &p.Address, &p.CreatedBy, &p.CreatedByUsername, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		p.DateOfBirth = Date{dob}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE patients SET name = $2, date_of_birth = $3, address = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.DateOfBirth.Time, p.Address,
	).Scan(&p.UpdatedAt)
	return apperr.FromPG(err)
}

// Delete removes the patient's mappings before the patient row itself so that
// concurrent readers never observe an orphaned mapping.
func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		tx := db.TxFromContext(ctx)
		if _, err := tx.Exec(ctx, `DELETE FROM patient_doctor_mappings WHERE patient_id = $1`, id); err != nil {
			return apperr.FromPG(err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
		if err != nil {
			return apperr.FromPG(err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}
