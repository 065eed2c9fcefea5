package queries

import (
	"context"
	"database/sql"
	"math"
	"time"

	"production/internal/core/domain/model/mixorder"

	"gorm.io/gorm"
)

// GetMixOrderStatisticsQueryHandler computes statistics in the database with
// two aggregate statements over the mix_orders table.
type GetMixOrderStatisticsQueryHandler struct {
	db *gorm.DB
}

func NewGetMixOrderStatisticsQueryHandler(db *gorm.DB) GetMixOrderStatisticsQueryHandler {
	return GetMixOrderStatisticsQueryHandler{db: db}
}

func (h GetMixOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetMixOrderStatisticsQuery,
) (MixOrderStatistics, error) {
	if err := query.Validate(); err != nil {
		return MixOrderStatistics{}, err
	}

	where, args := statisticsScope(query)
	stats := MixOrderStatistics{CountsByStatus: make(map[string]int64)}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(target_qty_kg), 0)
		FROM mix_orders
		WHERE `+where+`
		GROUP BY status
	`, args...).Rows()
	if err != nil {
		return MixOrderStatistics{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		var mass float64
		if err := rows.Scan(&status, &count, &mass); err != nil {
			return MixOrderStatistics{}, err
		}
		stats.CountsByStatus[status] = count
		stats.Total += count
		stats.TotalTargetQtyKg += mass
	}
	if err := rows.Err(); err != nil {
		return MixOrderStatistics{}, err
	}

	var avgSeconds sql.NullFloat64
	var completed int64
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			AVG(EXTRACT(EPOCH FROM (last_step_ended_at - first_step_at))),
			COUNT(*)
		FROM mix_orders
		WHERE `+where+`
			AND status = ?
			AND first_step_at IS NOT NULL
			AND last_step_ended_at IS NOT NULL
	`, append(args, mixorder.Completed.String())...).Row().Scan(&avgSeconds, &completed)
	if err != nil {
		return MixOrderStatistics{}, err
	}
	if avgSeconds.Valid {
		stats.AverageCompletedDuration = time.Duration(math.Round(avgSeconds.Float64)) * time.Second
	}
	stats.CompletedWithDuration = completed

	return stats, nil
}

func statisticsScope(query GetMixOrderStatisticsQuery) (string, []any) {
	where := "tenant_id = ?"
	args := []any{query.TenantID().Bytes()}
	if from := query.From(); from != nil {
		where += " AND planned_at >= ?"
		args = append(args, *from)
	}
	if to := query.To(); to != nil {
		where += " AND planned_at < ?"
		args = append(args, *to)
	}
	return where, args
}
