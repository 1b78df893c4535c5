package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/pkg/slogx"
)

var ErrSkillNotFound = errors.New("skill not found")

const (
	MinDescriptionLength = 5

	MsgDescriptionTooShort = "Enter at least 5 characters"
	MsgInvalidDate         = "Enter a valid date"
)

// Form field names shared with the HTTP layer.
const (
	FieldDescription = "description"
	FieldTargetDate  = "targetDate"
)

// ValidationError maps form fields to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid skill: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "".
func (e *ValidationError) Message(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

// ValidateSkill checks the user supplied fields of s. It returns nil when s
// may be stored.
func ValidateSkill(s domain.Skill) *ValidationError {
	fields := map[string]string{}

	if utf8.RuneCountInString(s.Description) < MinDescriptionLength {
		fields[FieldDescription] = MsgDescriptionTooShort
	}
	if s.TargetDate.IsZero() || domain.DateOf(s.TargetDate.Time()) != s.TargetDate {
		fields[FieldTargetDate] = MsgInvalidDate
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// SkillService implements the per-user skill operations. Every write sets
// the owner to the acting user, whatever the candidate carried.
type SkillService struct {
	Store store.Store

	// EnforceOwnership hides other users' records from Get, Update and
	// Delete. When false any signed-in user may edit or delete any id.
	EnforceOwnership bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *SkillService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns the user's skills ordered by id.
func (s *SkillService) List(ctx context.Context, user string) ([]domain.Skill, error) {
	skills, err := s.Store.Skills().ListSkillsByOwner(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	if skills == nil {
		skills = []domain.Skill{}
	}
	return skills, nil
}

// Count returns how many skills the user owns.
func (s *SkillService) Count(ctx context.Context, user string) (int64, error) {
	n, err := s.Store.Skills().CountSkillsByOwner(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("count skills: %w", err)
	}
	return n, nil
}

// NewForm returns the blank record shown on the create form: due one year
// from today and not done.
func (s *SkillService) NewForm(user string) domain.Skill {
	return domain.Skill{
		ID:         0,
		Owner:      user,
		TargetDate: domain.DateOf(s.now()).AddDate(1, 0, 0),
	}
}

// Create validates and stores candidate as a new record owned by user. On
// a validation failure candidate is returned untouched with a
// *ValidationError.
func (s *SkillService) Create(ctx context.Context, user string, candidate domain.Skill) (domain.Skill, error) {
	if verr := ValidateSkill(candidate); verr != nil {
		return candidate, verr
	}

	rec := candidate
	rec.ID = 0
	rec.Owner = user

	created, err := s.Store.Skills().CreateSkill(ctx, rec)
	if err != nil {
		return candidate, fmt.Errorf("create skill: %w", err)
	}

	slogx.FromContext(ctx).Info("skill created", slog.Int64("skill_id", created.ID))
	return created, nil
}

// Get loads the record with id for display in the edit form.
func (s *SkillService) Get(ctx context.Context, user string, id int64) (domain.Skill, error) {
	rec, err := s.Store.Skills().GetSkillByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Skill{}, ErrSkillNotFound
	}
	if err != nil {
		return domain.Skill{}, fmt.Errorf("get skill %d: %w", id, err)
	}

	if rec.Owner != user {
		if s.EnforceOwnership {
			return domain.Skill{}, ErrSkillNotFound
		}
		slogx.FromContext(ctx).Debug("reading another user's skill",
			slog.Int64("skill_id", id),
			slog.String("owner", rec.Owner),
		)
	}
	return rec, nil
}

// Update validates candidate and saves it by id, replacing every column.
// Concurrent updates of the same id are last write wins.
func (s *SkillService) Update(ctx context.Context, user string, candidate domain.Skill) (domain.Skill, error) {
	if verr := ValidateSkill(candidate); verr != nil {
		return candidate, verr
	}

	rec := candidate
	rec.Owner = user

	var saved domain.Skill
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if !rec.IsNew() {
			if err := s.checkOwner(ctx, tx, user, rec.ID); err != nil {
				return err
			}
		}

		var err error
		saved, err = tx.Skills().SaveSkill(ctx, rec)
		return err
	})
	if errors.Is(err, ErrSkillNotFound) {
		return candidate, err
	}
	if err != nil {
		return candidate, fmt.Errorf("update skill %d: %w", candidate.ID, err)
	}

	slogx.FromContext(ctx).Info("skill saved", slog.Int64("skill_id", saved.ID))
	return saved, nil
}

// Delete removes the record with id. Unknown ids are ignored.
func (s *SkillService) Delete(ctx context.Context, user string, id int64) error {
	var err error
	if s.EnforceOwnership {
		err = s.Store.Skills().DeleteSkillByOwner(ctx, id, user)
	} else {
		if rec, gerr := s.Store.Skills().GetSkillByID(ctx, id); gerr == nil && rec.Owner != user {
			slogx.FromContext(ctx).Debug("deleting another user's skill",
				slog.Int64("skill_id", id),
				slog.String("owner", rec.Owner),
			)
		}
		err = s.Store.Skills().DeleteSkill(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("delete skill %d: %w", id, err)
	}

	slogx.FromContext(ctx).Info("skill deleted", slog.Int64("skill_id", id))
	return nil
}

// checkOwner fails with ErrSkillNotFound when ownership is enforced and the
// existing row with id belongs to someone else. Missing rows pass: saving
// creates them.
func (s *SkillService) checkOwner(ctx context.Context, tx store.Tx, user string, id int64) error {
	existing, err := tx.Skills().GetSkillByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if existing.Owner == user {
		return nil
	}
	if s.EnforceOwnership {
		return ErrSkillNotFound
	}
	slogx.FromContext(ctx).Debug("overwriting another user's skill",
		slog.Int64("skill_id", id),
		slog.String("owner", existing.Owner),
	)
	return nil
}
