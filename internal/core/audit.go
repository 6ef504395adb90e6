package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog records administrative actions for the Audit Log page.
type AuditLog interface {
	Record(ctx context.Context, actor Actor, action, detail string) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
}

type auditLog struct {
	pool *pgxpool.Pool
}

// NewAuditLog constructs an AuditLog backed by the audit_log table.
func NewAuditLog(pool *pgxpool.Pool) AuditLog {
	return &auditLog{pool: pool}
}

func (a *auditLog) Record(ctx context.Context, actor Actor, action, detail string) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO audit_log (user_id, action, detail) VALUES ($1, $2, $3)`,
		actor.UserID, action, detail)
	if err != nil {
		return fmt.Errorf("record audit %s: %w", action, err)
	}
	return nil
}

func (a *auditLog) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.pool.Query(ctx, `
		SELECT l.id, l.user_id, COALESCE(u.username, ''), l.action, l.detail, l.created_at
		FROM audit_log l
		LEFT JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
