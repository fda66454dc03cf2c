package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mind-engage/sheetquiz/internal/quiz"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, id string) (quiz.State, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM quiz_sessions WHERE id=$1`, id)
	var sjson string
	if err := row.Scan(&sjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.State{}, ErrNotFound
		}
		return quiz.State{}, err
	}
	var st quiz.State
	if err := json.Unmarshal([]byte(sjson), &st); err != nil {
		return quiz.State{}, err
	}
	return st, nil
}

func (s *SQLStore) Put(ctx context.Context, id string, st quiz.State) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quiz_sessions (id,phase,state_json,updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET phase=EXCLUDED.phase, state_json=EXCLUDED.state_json, updated_at=EXCLUDED.updated_at`,
		id, st.Phase.String(), string(buf), time.Now().Unix())
	return err
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM quiz_sessions WHERE id=$1`, id)
	return err
}

// PurgeBefore drops snapshots not touched since cutoff and reports how many
// were removed.
func (s *SQLStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quiz_sessions WHERE updated_at < $1`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
