package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/internal/skills/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens the database at dsn. ":memory:" gives a private in-memory
// database, mostly for tests.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer, and every connection to ":memory:"
	// would otherwise see its own empty database
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if !strings.Contains(dsn, ":memory:") {
		if _, err := db.ExecContext(context.Background(), `PRAGMA journal_mode = WAL;`); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx runs fn in a transaction; any error from fn rolls it back.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Skills() store.Skills     { return &skillsRepo{q: s.q} }
func (s *Store) Sessions() store.Sessions { return &sessionsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapSkill(row gen.Skill) (domain.Skill, error) {
	target, err := domain.ParseDate(row.TargetDate)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("sqlite: skill %d: %w", row.ID, err)
	}
	return domain.Skill{
		ID:          row.ID,
		Owner:       row.Owner,
		Description: row.Description,
		TargetDate:  target,
		Done:        row.Done,
	}, nil
}

func mapSession(row gen.Session) domain.Session {
	return domain.Session{
		ID:        row.ID,
		Username:  row.Username,
		UserAgent: row.UserAgent,
		IPAddress: row.IpAddress,
		CreatedAt: time.Unix(row.CreatedAt, 0).UTC(),
		ExpiresAt: time.Unix(row.ExpiresAt, 0).UTC(),
	}
}
