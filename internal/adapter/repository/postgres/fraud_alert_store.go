package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

// fraudAlertStore implements domain.FraudAlertStore on postgres. The
// transaction snapshot is stored as JSON alongside the structured columns;
// rows are append-only.
type fraudAlertStore struct {
	db *DB
}

// NewFraudAlertStore creates a new postgres-backed fraud alert store
func NewFraudAlertStore(db *DB) domain.FraudAlertStore {
	return &fraudAlertStore{db: db}
}

// AppendAlert records a triggered alert
func (r *fraudAlertStore) AppendAlert(ctx context.Context, alert *domain.FraudAlert) error {
	snapshot, err := json.Marshal(alert.Transaction)
	if err != nil {
		return fmt.Errorf("failed to encode transaction snapshot: %w", err)
	}

	query := `
		INSERT INTO fraud_alerts (id, transaction_id, rule_triggered, transaction_snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query,
		alert.ID,
		alert.Transaction.ID,
		alert.RuleTriggered,
		snapshot,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fraud alert: %w", err)
	}
	return nil
}

// Alerts retrieves all recorded alerts in insertion order
func (r *fraudAlertStore) Alerts(ctx context.Context) ([]*domain.FraudAlert, error) {
	query := `
		SELECT id, rule_triggered, transaction_snapshot, created_at
		FROM fraud_alerts
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fraud alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.FraudAlert
	for rows.Next() {
		var alert domain.FraudAlert
		var snapshot []byte

		if err := rows.Scan(&alert.ID, &alert.RuleTriggered, &snapshot, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fraud alert: %w", err)
		}
		if err := json.Unmarshal(snapshot, &alert.Transaction); err != nil {
			return nil, fmt.Errorf("failed to decode transaction snapshot: %w", err)
		}
		alerts = append(alerts, &alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fraud alerts: %w", err)
	}
	return alerts, nil
}
