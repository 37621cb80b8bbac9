package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/cjbarker/trivia-app/internal/domain"
	"github.com/cjbarker/trivia-app/internal/parser"
)

// SetLoader loads markdown question sets from Postgres and parses them.
type SetLoader struct {
	pool *pgxpool.Pool
}

func NewSetLoader(pool *pgxpool.Pool) *SetLoader {
	return &SetLoader{pool: pool}
}

func (l *SetLoader) LoadSet(ctx context.Context, setID string) (domain.QuestionSet, error) {
	var markdown string
	err := l.pool.QueryRow(ctx, `SELECT markdown FROM question_sets WHERE id=$1`, setID).Scan(&markdown)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionSet{}, domain.ErrQuestionSetNotFound
	}
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load question set: %w", err)
	}
	return domain.QuestionSet{ID: setID, Questions: parser.Parse(markdown)}, nil
}
