package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a transaction can hand out
// the same repositories bound to the open transaction.
type Store interface {
	Skills() Skills
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction scoped Store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Skills interface {
	// ListSkillsByOwner returns the owner's skills ordered by id.
	ListSkillsByOwner(ctx context.Context, owner string) ([]domain.Skill, error)

	// GetSkillByID returns ErrNotFound when no row has this id.
	GetSkillByID(ctx context.Context, id int64) (domain.Skill, error)

	// CreateSkill inserts s ignoring s.ID and returns the stored row.
	CreateSkill(ctx context.Context, s domain.Skill) (domain.Skill, error)

	// SaveSkill inserts when s.ID is 0, otherwise inserts or fully replaces
	// the row with that id.
	SaveSkill(ctx context.Context, s domain.Skill) (domain.Skill, error)

	// DeleteSkill removes the row with id. Missing ids are not an error.
	DeleteSkill(ctx context.Context, id int64) error

	// DeleteSkillByOwner removes the row only when it belongs to owner.
	DeleteSkillByOwner(ctx context.Context, id int64, owner string) error

	CountSkillsByOwner(ctx context.Context, owner string) (int64, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByID returns ErrNotFound for unknown ids.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions expired at or before now and
	// reports how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
