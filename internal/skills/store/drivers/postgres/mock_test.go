package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/internal/skills/store/drivers/postgres"
	"github.com/stretchr/testify/require"
)

var skillCols = []string{"id", "owner", "description", "target_date", "done"}

func newMockStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	s := postgres.NewStoreFromDB(db)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = s.Close()
	})
	return s, mock
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMockListSkillsByOwner(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^SELECT id, owner, description, target_date, done FROM skills WHERE owner = \$1 ORDER BY id$`).
		WithArgs("Lia").
		WillReturnRows(sqlmock.NewRows(skillCols).
			AddRow(int64(1), "Lia", "Learn Go", day(2026, 1, 1), false).
			AddRow(int64(4), "Lia", "Learn SQL", day(2026, 3, 15), true))

	got, err := s.Skills().ListSkillsByOwner(context.Background(), "Lia")
	require.NoError(t, err)
	require.Equal(t, []domain.Skill{
		{ID: 1, Owner: "Lia", Description: "Learn Go", TargetDate: domain.Date{Year: 2026, Month: 1, Day: 1}},
		{ID: 4, Owner: "Lia", Description: "Learn SQL", TargetDate: domain.Date{Year: 2026, Month: 3, Day: 15}, Done: true},
	}, got)
}

func TestMockListSkillsEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM skills WHERE owner = \$1`).
		WithArgs("Leo").
		WillReturnRows(sqlmock.NewRows(skillCols))

	got, err := s.Skills().ListSkillsByOwner(context.Background(), "Leo")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestMockGetSkillNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM skills WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(skillCols))

	_, err := s.Skills().GetSkillByID(context.Background(), 99)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMockSaveSkillNewInserts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^INSERT INTO skills \(owner, description, target_date, done\)\s+VALUES \(\$1, \$2, \$3, \$4\)\s+RETURNING`).
		WithArgs("Leo", "Learn Rust", sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows(skillCols).AddRow(int64(7), "Leo", "Learn Rust", day(2026, 7, 1), false))

	saved, err := s.Skills().SaveSkill(context.Background(), domain.Skill{
		Owner:       "Leo",
		Description: "Learn Rust",
		TargetDate:  domain.Date{Year: 2026, Month: 7, Day: 1},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), saved.ID)
}

func TestMockSaveSkillUpsertAdvancesSequenceForward(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^INSERT INTO skills \(id, owner, description, target_date, done\).*ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs(int64(42), "Lia", "Learn Go well", sqlmock.AnyArg(), true).
		WillReturnRows(sqlmock.NewRows(skillCols).AddRow(int64(42), "Lia", "Learn Go well", day(2026, 6, 30), true))
	mock.ExpectExec(`(?s)^SELECT setval\(seq, \$1::bigint\).*WHERE \$1::bigint > COALESCE\(pg_sequence_last_value\(s\.seq\), 0\)$`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := s.Skills().SaveSkill(context.Background(), domain.Skill{
		ID:          42,
		Owner:       "Lia",
		Description: "Learn Go well",
		TargetDate:  domain.Date{Year: 2026, Month: 6, Day: 30},
		Done:        true,
	})
	require.NoError(t, err)
	require.Equal(t, domain.Skill{
		ID:          42,
		Owner:       "Lia",
		Description: "Learn Go well",
		TargetDate:  domain.Date{Year: 2026, Month: 6, Day: 30},
		Done:        true,
	}, saved)
}

func TestMockSaveSkillError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`ON CONFLICT \(id\)`).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Skills().SaveSkill(context.Background(), domain.Skill{ID: 3, Owner: "Lia", Description: "Learn Go"})
	require.ErrorContains(t, err, "postgres: save skill: connection reset")
}

func TestMockDeleteExpiredSessions(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at <= \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.Sessions().DeleteExpiredSessions(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestMockWithTxRollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM skills WHERE id = \$1 AND owner = \$2`).
		WithArgs(int64(5), "Leo").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		if err := tx.Skills().DeleteSkillByOwner(context.Background(), 5, "Leo"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestMockWithTxCommits(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM skills WHERE id = \$1$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		return tx.Skills().DeleteSkill(context.Background(), 5)
	})
	require.NoError(t, err)
}
