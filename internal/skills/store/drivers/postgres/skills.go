package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
)

const skillColumns = `id, owner, description, target_date, done`

// advanceSkillSequence bumps the id sequence to $1 when $1 is past the
// last issued value. The sequence never moves backwards, so deleted ids
// are not reissued.
const advanceSkillSequence = `SELECT setval(seq, $1::bigint)
	FROM (SELECT pg_get_serial_sequence('skills', 'id')::regclass AS seq) AS s
	WHERE $1::bigint > COALESCE(pg_sequence_last_value(s.seq), 0)`

type skillsRepo struct {
	db DBTX
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row rowScanner) (domain.Skill, error) {
	var (
		s      domain.Skill
		target time.Time
	)
	if err := row.Scan(&s.ID, &s.Owner, &s.Description, &target, &s.Done); err != nil {
		return domain.Skill{}, err
	}
	s.TargetDate = domain.DateOf(target)
	return s, nil
}

func (r *skillsRepo) ListSkillsByOwner(ctx context.Context, owner string) ([]domain.Skill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE owner = $1 ORDER BY id`, owner)
	if err != nil {
		return nil, fmt.Errorf("postgres: list skills: %w", err)
	}
	defer rows.Close()

	out := []domain.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *skillsRepo) GetSkillByID(ctx context.Context, id int64) (domain.Skill, error) {
	s, err := scanSkill(r.db.QueryRowContext(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if err != nil {
		return domain.Skill{}, mapNotFound(err)
	}
	return s, nil
}

func (r *skillsRepo) CreateSkill(ctx context.Context, s domain.Skill) (domain.Skill, error) {
	return scanSkill(r.db.QueryRowContext(ctx,
		`INSERT INTO skills (owner, description, target_date, done)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+skillColumns,
		s.Owner, s.Description, s.TargetDate.Time(), s.Done))
}

func (r *skillsRepo) SaveSkill(ctx context.Context, s domain.Skill) (domain.Skill, error) {
	if s.IsNew() {
		return r.CreateSkill(ctx, s)
	}

	saved, err := scanSkill(r.db.QueryRowContext(ctx,
		`INSERT INTO skills (id, owner, description, target_date, done)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		     owner       = EXCLUDED.owner,
		     description = EXCLUDED.description,
		     target_date = EXCLUDED.target_date,
		     done        = EXCLUDED.done
		 RETURNING `+skillColumns,
		s.ID, s.Owner, s.Description, s.TargetDate.Time(), s.Done))
	if err != nil {
		return domain.Skill{}, fmt.Errorf("postgres: save skill: %w", err)
	}

	// an explicit id does not advance the sequence; only ever move it forward
	if _, err := r.db.ExecContext(ctx, advanceSkillSequence, s.ID); err != nil {
		return domain.Skill{}, fmt.Errorf("postgres: advance skills sequence: %w", err)
	}

	return saved, nil
}

func (r *skillsRepo) DeleteSkill(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	return err
}

func (r *skillsRepo) DeleteSkillByOwner(ctx context.Context, id int64, owner string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1 AND owner = $2`, id, owner)
	return err
}

func (r *skillsRepo) CountSkillsByOwner(ctx context.Context, owner string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM skills WHERE owner = $1`, owner).Scan(&n)
	return n, err
}
