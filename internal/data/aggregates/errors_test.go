package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

func TestMapErrorNil(t *testing.T) {
	if got := MapError("op", nil); got != nil {
		t.Fatalf("nil should map to nil, got %v", got)
	}
}

func TestMapErrorPassesThroughTypedErrors(t *testing.T) {
	orig := domainagg.NewError(domainagg.CodeNotFound, "op", "plan not found", nil)
	if got := MapError("other", orig); got != orig {
		t.Fatalf("typed error should pass through unchanged")
	}
}

func TestMapErrorSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want domainagg.ErrorCode
	}{
		{ValidationError("bad input"), domainagg.CodeValidation},
		{InvariantError("version must increase"), domainagg.CodeInvariantViolation},
		{ConflictError("token stale"), domainagg.CodeConflict},
		{RetryableError("deadlock"), domainagg.CodeRetryable},
		{gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{context.Canceled, domainagg.CodeRetryable},
		{context.DeadlineExceeded, domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		mapped := MapError("op", tc.err)
		if !domainagg.IsCode(mapped, tc.want) {
			t.Fatalf("%v: want=%s got=%s", tc.err, tc.want, domainagg.CodeOf(mapped))
		}
	}
}

func TestMapErrorPostgresCodes(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     domainagg.ErrorCode
	}{
		{"23505", domainagg.CodeConflict},
		{"23503", domainagg.CodePreconditionFailed},
		{"40001", domainagg.CodeRetryable},
		{"40P01", domainagg.CodeRetryable},
		{"55P03", domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		mapped := MapError("op", &pgconn.PgError{Code: tc.sqlstate})
		if !domainagg.IsCode(mapped, tc.want) {
			t.Fatalf("sqlstate %s: want=%s got=%s", tc.sqlstate, tc.want, domainagg.CodeOf(mapped))
		}
	}
}

func TestMapErrorMessageHeuristics(t *testing.T) {
	cases := []struct {
		msg  string
		want domainagg.ErrorCode
	}{
		{"duplicate key value violates unique constraint", domainagg.CodeConflict},
		{"UNIQUE constraint failed: plan.name_key", domainagg.CodeConflict},
		{"deadlock detected", domainagg.CodeRetryable},
		{"statement timeout", domainagg.CodeRetryable},
		{"disk exploded", domainagg.CodeInternal},
	}
	for _, tc := range cases {
		mapped := MapError("op", errors.New(tc.msg))
		if !domainagg.IsCode(mapped, tc.want) {
			t.Fatalf("%q: want=%s got=%s", tc.msg, tc.want, domainagg.CodeOf(mapped))
		}
	}
}
