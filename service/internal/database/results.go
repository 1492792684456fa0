// Package database persists finished-round results.
package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats aggregates stored results.
type Stats struct {
	Games       int
	Ties        int
	WinsBySeat  map[int]int
	KnockerWins int // rounds won by the player who knocked
	AvgTurns    float64
}

// ResultStore records round outcomes and answers summary queries.
type ResultStore interface {
	InsertResult(ctx context.Context, r models.GameResult) error
	Recent(ctx context.Context, limit int) ([]models.GameResult, error)
	Stats(ctx context.Context) (Stats, error)
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS round_results (
	id           UUID PRIMARY KEY,
	game_id      UUID NOT NULL,
	played_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	seats        TEXT[] NOT NULL,
	scores       INT[] NOT NULL,
	winner_index SMALLINT,
	knocked_by   SMALLINT,
	turns        INT NOT NULL,
	fingerprint  BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_round_results_played_at ON round_results(played_at DESC);
`

// PostgresStore is a ResultStore backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects and ensures the results table exists. An empty
// databaseURL returns (nil, nil): no persistence.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create results table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the pool.
func (s *PostgresStore) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// nullableIndex maps the -1 "none" convention onto SQL NULL.
func nullableIndex(i int) *int16 {
	if i < 0 {
		return nil
	}
	v := int16(i)
	return &v
}

func fromNullable(v *int16) int {
	if v == nil {
		return -1
	}
	return int(*v)
}

// InsertResult stores one round. A zero ID is replaced with a fresh one.
func (s *PostgresStore) InsertResult(ctx context.Context, r models.GameResult) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	scores := make([]int32, len(r.Scores))
	for i, v := range r.Scores {
		scores[i] = int32(v)
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO round_results (id, game_id, seats, scores, winner_index, knocked_by, turns, fingerprint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.GameID, r.Seats, scores, nullableIndex(r.WinnerIndex), nullableIndex(r.KnockedBy), r.Turns, int64(r.Fingerprint))
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Recent returns up to limit results, newest first. A negative limit returns
// every result.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]models.GameResult, error) {
	var lim *int
	if limit >= 0 {
		lim = &limit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, game_id, seats, scores, winner_index, knocked_by, turns, fingerprint
		FROM round_results
		ORDER BY played_at DESC
		LIMIT $1`, lim)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []models.GameResult
	for rows.Next() {
		var (
			r         models.GameResult
			scores    []int32
			winner    *int16
			knockedBy *int16
			fp        int64
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seats, &scores, &winner, &knockedBy, &r.Turns, &fp); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Scores = make([]int, len(scores))
		for i, v := range scores {
			r.Scores[i] = int(v)
		}
		r.WinnerIndex = fromNullable(winner)
		r.KnockedBy = fromNullable(knockedBy)
		r.Fingerprint = uint64(fp)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats summarizes every stored round.
func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	st := Stats{WinsBySeat: make(map[int]int)}
	var avg *float64
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE winner_index IS NULL),
		       count(*) FILTER (WHERE winner_index IS NOT NULL AND winner_index = knocked_by),
		       avg(turns)::float8
		FROM round_results`).Scan(&st.Games, &st.Ties, &st.KnockerWins, &avg)
	if err != nil {
		return st, fmt.Errorf("query stats: %w", err)
	}
	if avg != nil {
		st.AvgTurns = *avg
	}

	rows, err := s.pool.Query(ctx, `
		SELECT winner_index, count(*) FROM round_results
		WHERE winner_index IS NOT NULL
		GROUP BY winner_index`)
	if err != nil {
		return st, fmt.Errorf("query wins: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var seat int16
		var n int
		if err := rows.Scan(&seat, &n); err != nil {
			return st, fmt.Errorf("scan wins: %w", err)
		}
		st.WinsBySeat[int(seat)] = n
	}
	return st, rows.Err()
}

// MemoryStore is an in-process ResultStore. Results are kept in insertion
// order.
type MemoryStore struct {
	mu      sync.Mutex
	results []models.GameResult
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) InsertResult(_ context.Context, r models.GameResult) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.Seats = append([]string(nil), r.Seats...)
	r.Scores = append([]int(nil), r.Scores...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]models.GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.results)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]models.GameResult, 0, n)
	for i := len(s.results) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.results[i])
	}
	return out, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{WinsBySeat: make(map[int]int)}
	turns := 0
	for _, r := range s.results {
		st.Games++
		turns += r.Turns
		if r.Tied() {
			st.Ties++
			continue
		}
		st.WinsBySeat[r.WinnerIndex]++
		if r.WinnerIndex == r.KnockedBy {
			st.KnockerWins++
		}
	}
	if st.Games > 0 {
		st.AvgTurns = float64(turns) / float64(st.Games)
	}
	return st, nil
}

var (
	_ ResultStore = (*PostgresStore)(nil)
	_ ResultStore = (*MemoryStore)(nil)
)
