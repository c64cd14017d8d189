package sqlite

import (
	"context"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/idx"
)

type openHoursRepo struct {
	db dbtx
}

const openHoursColumns = `id, org_id, day, open_from, open_to, closed, created_at, updated_at`

func scanOpenHours(scan func(dest ...any) error) (domain.OpenHours, error) {
	var oh domain.OpenHours
	var id, orgID string
	err := scan(&id, &orgID, &oh.Day, &oh.OpenFrom, &oh.OpenTo, &oh.Closed, &oh.CreatedAt, &oh.UpdatedAt)
	if err != nil {
		return domain.OpenHours{}, mapNotFound(err)
	}
	if oh.ID, err = idx.Parse(id); err != nil {
		return domain.OpenHours{}, err
	}
	if oh.OrgID, err = idx.Parse(orgID); err != nil {
		return domain.OpenHours{}, err
	}
	return oh, nil
}

func (r *openHoursRepo) CreateOpenHours(ctx context.Context, oh domain.OpenHours) error {
	now := time.Now().UTC()
	if oh.CreatedAt.IsZero() {
		oh.CreatedAt = now
	}
	if oh.UpdatedAt.IsZero() {
		oh.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO open_hours (id, org_id, day, open_from, open_to, closed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		oh.ID.String(), oh.OrgID.String(), string(oh.Day), oh.OpenFrom, oh.OpenTo, oh.Closed, oh.CreatedAt, oh.UpdatedAt)
	return mapConflict(err)
}

func (r *openHoursRepo) GetOpenHours(ctx context.Context, orgID idx.ID, day domain.Weekday) (domain.OpenHours, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+openHoursColumns+` FROM open_hours WHERE org_id = ? AND day = ?`,
		orgID.String(), string(day))
	return scanOpenHours(row.Scan)
}

func (r *openHoursRepo) ListOpenHours(ctx context.Context, orgID idx.ID) ([]domain.OpenHours, error) {
	// Order by schedule position, not by the day name's alphabet.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+openHoursColumns+` FROM open_hours WHERE org_id = ?
		 ORDER BY CASE day
			WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3
			WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6
			WHEN 'sunday' THEN 7 END`,
		orgID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hours []domain.OpenHours
	for rows.Next() {
		oh, err := scanOpenHours(rows.Scan)
		if err != nil {
			return nil, err
		}
		hours = append(hours, oh)
	}
	return hours, rows.Err()
}

func (r *openHoursRepo) UpdateOpenHours(ctx context.Context, oh domain.OpenHours) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE open_hours SET open_from = ?, open_to = ?, closed = ?, updated_at = ?
		 WHERE org_id = ? AND day = ?`,
		oh.OpenFrom, oh.OpenTo, oh.Closed, time.Now().UTC(),
		oh.OrgID.String(), string(oh.Day))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
