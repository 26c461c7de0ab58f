package aggregates

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

// CASGuard applies compare-and-set updates keyed on a row's current status.
type CASGuard struct {
	db *gorm.DB
}

func NewCASGuard(db *gorm.DB) CASGuard {
	return CASGuard{db: db}
}

func (g CASGuard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx == nil && g.db == nil {
		return nil, apperr.InvalidInput("missing db transaction context")
	}
	return dbc.DB(g.db), nil
}

// UpdateByStatus updates a row only when its status is one of allowedStatuses.
// The boolean reports whether the guard matched.
func (g CASGuard) UpdateByStatus(dbc dbctx.Context, table string, id int64, allowedStatuses []string, updates map[string]any) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	if table == "" || id <= 0 {
		return false, apperr.InvalidInput("table and id are required for UpdateByStatus")
	}
	if len(allowedStatuses) == 0 {
		return false, apperr.InvalidInput("allowedStatuses must not be empty")
	}
	res := db.Table(table).
		Where("id = ? AND status IN ?", id, allowedStatuses).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RequireCASSuccess converts a failed compare-and-set into a conflict.
func RequireCASSuccess(ok bool, message string) error {
	if ok {
		return nil
	}
	return apperr.Conflict(strings.TrimSpace(message))
}

// RequireStatusAllowed validates current status against allowed values.
func RequireStatusAllowed(current string, allowed ...string) error {
	current = strings.TrimSpace(current)
	if len(allowed) == 0 {
		return apperr.InvalidInput("allowed statuses cannot be empty")
	}
	for _, s := range allowed {
		if strings.EqualFold(current, strings.TrimSpace(s)) {
			return nil
		}
	}
	return apperr.Newf(apperr.KindConflict, "status transition from %s not allowed", current)
}
