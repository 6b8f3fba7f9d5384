package aggregates

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
)

// TokenSkewTolerance absorbs serialization round-trips that truncate
// timestamp precision. A caller token within this window of the row's
// updated_at still passes the freshness check.
const TokenSkewTolerance = 1000 * time.Millisecond

// TokenGuard provides optimistic-concurrency helpers keyed on a row's
// updated_at timestamp token.
type TokenGuard struct {
	db *gorm.DB
}

func NewTokenGuard(db *gorm.DB) TokenGuard {
	return TokenGuard{db: db}
}

func (g TokenGuard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx), nil
	}
	if g.db != nil {
		return g.db.WithContext(dbc.Ctx), nil
	}
	return nil, ValidationError("missing db transaction context")
}

// UpdateByToken updates a row only when id+updated_at still match the value
// read earlier in the same transaction. The updates map must set a new
// updated_at so a successful write advances the token.
func (g TokenGuard) UpdateByToken(dbc dbctx.Context, table string, id uuid.UUID, currentToken time.Time, updates map[string]any) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	if table == "" || id == uuid.Nil {
		return false, ValidationError("table and id are required for UpdateByToken")
	}
	res := db.Table(table).
		Where("id = ? AND updated_at = ?", id, currentToken).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RequireCASSuccess converts a failed compare-and-set into a typed conflict error.
func RequireCASSuccess(ok bool, message string) error {
	if ok {
		return nil
	}
	return ConflictError(strings.TrimSpace(message))
}

// RequireTokenFresh validates a caller-supplied concurrency token against the
// row's current updated_at. A nil expected token skips the check entirely;
// otherwise the two must agree within TokenSkewTolerance.
func RequireTokenFresh(entity string, current time.Time, expected *time.Time) error {
	if expected == nil {
		return nil
	}
	diff := current.Sub(*expected)
	if diff < 0 {
		diff = -diff
	}
	if diff <= TokenSkewTolerance {
		return nil
	}
	return ConflictError(fmt.Sprintf("%s was modified by another request", strings.TrimSpace(entity)))
}
