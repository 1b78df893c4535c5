package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/store/drivers/sqlite/gen"
)

type skillsRepo struct {
	q *gen.Queries
}

func (r *skillsRepo) ListSkillsByOwner(ctx context.Context, owner string) ([]domain.Skill, error) {
	rows, err := r.q.ListSkillsByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Skill, 0, len(rows))
	for _, row := range rows {
		s, err := mapSkill(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *skillsRepo) GetSkillByID(ctx context.Context, id int64) (domain.Skill, error) {
	row, err := r.q.GetSkillByID(ctx, id)
	if err != nil {
		return domain.Skill{}, mapNotFound(err)
	}
	return mapSkill(row)
}

func (r *skillsRepo) CreateSkill(ctx context.Context, s domain.Skill) (domain.Skill, error) {
	row, err := r.q.CreateSkill(ctx, gen.CreateSkillParams{
		Owner:       s.Owner,
		Description: s.Description,
		TargetDate:  s.TargetDate.String(),
		Done:        s.Done,
	})
	if err != nil {
		return domain.Skill{}, err
	}
	return mapSkill(row)
}

func (r *skillsRepo) SaveSkill(ctx context.Context, s domain.Skill) (domain.Skill, error) {
	row, err := r.q.UpsertSkill(ctx, gen.UpsertSkillParams{
		ID:          sql.NullInt64{Int64: s.ID, Valid: s.ID != 0},
		Owner:       s.Owner,
		Description: s.Description,
		TargetDate:  s.TargetDate.String(),
		Done:        s.Done,
	})
	if err != nil {
		return domain.Skill{}, err
	}
	return mapSkill(row)
}

func (r *skillsRepo) DeleteSkill(ctx context.Context, id int64) error {
	return r.q.DeleteSkill(ctx, id)
}

func (r *skillsRepo) DeleteSkillByOwner(ctx context.Context, id int64, owner string) error {
	return r.q.DeleteSkillByOwner(ctx, gen.DeleteSkillByOwnerParams{ID: id, Owner: owner})
}

func (r *skillsRepo) CountSkillsByOwner(ctx context.Context, owner string) (int64, error) {
	return r.q.CountSkillsByOwner(ctx, owner)
}
