package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPriceRuleRepository implements the ports RuleRepositoryFacade interface
// using pgxpool. Time-of-day bounds are stored as minutes since midnight and
// day-of-week sets as integer arrays (0 = Sunday), matching time.Weekday.
type PgxPriceRuleRepository struct {
	db *pgxpool.Pool
}

// NewPriceRuleRepository creates a new PgxPriceRuleRepository.
func NewPriceRuleRepository(db *pgxpool.Pool) *PgxPriceRuleRepository {
	return &PgxPriceRuleRepository{db: db}
}

// SaveRule inserts a new scheduled price rule.
func (r *PgxPriceRuleRepository) SaveRule(ctx context.Context, rule domain.ScheduledPriceRule) error {
	query := `
		INSERT INTO scheduled_price_rules (
			rule_id, product_id, price_type, amount, percentage, currency,
			valid_from, valid_until, time_from_minutes, time_until_minutes, days_of_week,
			priority, active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.Exec(ctx, query,
		rule.RuleID, rule.ProductID, rule.PriceType, rule.Amount, rule.Percentage, rule.Currency,
		rule.Window.ValidFrom, rule.Window.ValidUntil,
		minutesOf(rule.Window.TimeFrom), minutesOf(rule.Window.TimeUntil), weekdaysToInts(rule.Window.DaysOfWeek),
		rule.Priority, rule.Active,
		rule.CreatedAt, rule.CreatedBy, rule.LastUpdatedAt, rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting scheduled price rule: %w", err)
	}
	return nil
}

// ListRulesForProduct retrieves every rule attached to the product. Ordering
// mirrors the resolver's precedence so listings read in evaluation order,
// though the resolver sorts again on its own.
func (r *PgxPriceRuleRepository) ListRulesForProduct(ctx context.Context, productID string) ([]domain.ScheduledPriceRule, error) {
	query := `
		SELECT rule_id, product_id, price_type, amount, percentage, currency,
			valid_from, valid_until, time_from_minutes, time_until_minutes, days_of_week,
			priority, active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM scheduled_price_rules
		WHERE product_id = $1
		ORDER BY priority DESC, rule_id ASC
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("error listing scheduled price rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.ScheduledPriceRule
	for rows.Next() {
		var (
			rule     domain.ScheduledPriceRule
			fromMin  *int32
			untilMin *int32
			weekdays []int32
		)
		if err := rows.Scan(
			&rule.RuleID, &rule.ProductID, &rule.PriceType, &rule.Amount, &rule.Percentage, &rule.Currency,
			&rule.Window.ValidFrom, &rule.Window.ValidUntil, &fromMin, &untilMin, &weekdays,
			&rule.Priority, &rule.Active,
			&rule.CreatedAt, &rule.CreatedBy, &rule.LastUpdatedAt, &rule.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning scheduled price rule: %w", err)
		}
		rule.Window.TimeFrom = timeOfDayFromMinutes(fromMin)
		rule.Window.TimeUntil = timeOfDayFromMinutes(untilMin)
		rule.Window.DaysOfWeek = intsToWeekdays(weekdays)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading scheduled price rules: %w", err)
	}
	return rules, nil
}

func minutesOf(t *domain.TimeOfDay) *int32 {
	if t == nil {
		return nil
	}
	m := int32(t.Hour*60 + t.Minute)
	return &m
}

func timeOfDayFromMinutes(m *int32) *domain.TimeOfDay {
	if m == nil {
		return nil
	}
	return &domain.TimeOfDay{Hour: int(*m) / 60, Minute: int(*m) % 60}
}

func weekdaysToInts(days []time.Weekday) []int32 {
	if len(days) == 0 {
		return nil
	}
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func intsToWeekdays(days []int32) []time.Weekday {
	if len(days) == 0 {
		return nil
	}
	out := make([]time.Weekday, len(days))
	for i, d := range days {
		out[i] = time.Weekday(d)
	}
	return out
}
