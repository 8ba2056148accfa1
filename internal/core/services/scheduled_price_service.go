package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	portsrepo "github.com/sahelpos/pricing_app/internal/core/ports/repositories"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/utils/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduledPriceService resolves a product's effective price in its native
// currency by selecting the winning active rule and applying its adjustment
// to the stored base price.
type ScheduledPriceService struct {
	BaseService
	productRepo portsrepo.ProductReader
	ruleRepo    portsrepo.ScheduledPriceRuleRepositoryFacade
}

// NewScheduledPriceService creates a new ScheduledPriceService.
func NewScheduledPriceService(productRepo portsrepo.ProductReader, ruleRepo portsrepo.ScheduledPriceRuleRepositoryFacade) *ScheduledPriceService {
	return &ScheduledPriceService{productRepo: productRepo, ruleRepo: ruleRepo}
}

// ResolveScheduledPrice returns the product's price at the instant: the base
// price when no rule is valid, otherwise the base adjusted by the winning
// rule. Identical inputs always yield identical output; there is no hidden
// state.
//
// The winner is chosen by priority descending, then validity-window
// specificity descending (a more constrained window beats a broader one),
// then rule ID ascending as the final deterministic tie-break.
func (s *ScheduledPriceService) ResolveScheduledPrice(ctx context.Context, productID string, at time.Time) (domain.Money, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	base := product.BasePriceMoney()

	rules, err := s.ruleRepo.ListRulesForProduct(ctx, productID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to list price rules for %s: %w", productID, err)
	}

	valid := rules[:0:0]
	for _, rule := range rules {
		if rule.IsValidAt(at) {
			valid = append(valid, rule)
		}
	}
	if len(valid) == 0 {
		return base, nil
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Priority != valid[j].Priority {
			return valid[i].Priority > valid[j].Priority
		}
		si, sj := valid[i].Window.Specificity(), valid[j].Window.Specificity()
		if si != sj {
			return si > sj
		}
		return valid[i].RuleID < valid[j].RuleID
	})
	winner := valid[0]

	adjusted, warn := pricing.ApplyAdjustment(base.Amount, winner.PriceType, winner.Amount, winner.Percentage)
	if warn != nil {
		// Misconfigured rules degrade to the base price rather than
		// failing the sale; surface the data-quality problem in logs.
		s.LogWarn(ctx, "price rule misconfigured, using base price",
			slog.String("rule_id", winner.RuleID),
			slog.String("product_id", productID),
			slog.String("detail", warn.Error()))
	}
	return domain.NewMoney(adjusted, base.Currency), nil
}

// CreateRule validates and persists a new scheduled price rule.
func (s *ScheduledPriceService) CreateRule(ctx context.Context, req dto.CreatePriceRuleRequest, creatorUserID string) (*domain.ScheduledPriceRule, error) {
	product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: product '%s' not found", apperrors.ErrValidation, req.ProductID)
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if currency != product.Currency {
		return nil, fmt.Errorf("%w: rule currency %s does not match product currency %s",
			apperrors.ErrValidation, currency, product.Currency)
	}

	priceType := domain.PriceType(req.PriceType)
	switch priceType {
	case domain.PriceTypeFixed:
		if req.Amount == nil {
			return nil, fmt.Errorf("%w: FIXED rule requires an amount", apperrors.ErrValidation)
		}
	case domain.PriceTypeDiscount, domain.PriceTypeMarkup:
		if req.Amount == nil && req.Percentage == nil {
			return nil, fmt.Errorf("%w: %s rule requires an amount or a percentage", apperrors.ErrValidation, priceType)
		}
	default:
		return nil, fmt.Errorf("%w: unknown price type '%s'", apperrors.ErrValidation, req.PriceType)
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	if req.Percentage != nil && (req.Percentage.IsNegative() || req.Percentage.GreaterThan(decimal.NewFromInt(100))) {
		return nil, fmt.Errorf("%w: percentage must be between 0 and 100", apperrors.ErrValidation)
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return nil, fmt.Errorf("%w: validUntil cannot precede validFrom", apperrors.ErrValidation)
	}

	timeFrom, err := parseTimeOfDay(req.TimeFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timeFrom: %s", apperrors.ErrValidation, err.Error())
	}
	timeUntil, err := parseTimeOfDay(req.TimeUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timeUntil: %s", apperrors.ErrValidation, err.Error())
	}

	days := make([]time.Weekday, 0, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}

	now := time.Now()
	rule := domain.ScheduledPriceRule{
		RuleID:     uuid.NewString(),
		ProductID:  req.ProductID,
		PriceType:  priceType,
		Amount:     req.Amount,
		Percentage: req.Percentage,
		Currency:   currency,
		Window: domain.ValidityWindow{
			ValidFrom:  req.ValidFrom,
			ValidUntil: req.ValidUntil,
			TimeFrom:   timeFrom,
			TimeUntil:  timeUntil,
			DaysOfWeek: days,
		},
		Priority: req.Priority,
		Active:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "failed to save price rule", slog.String("product_id", req.ProductID))
		return nil, fmt.Errorf("failed to create price rule: %w", err)
	}
	return &rule, nil
}

// ListRulesForProduct retrieves every rule targeting the product.
func (s *ScheduledPriceService) ListRulesForProduct(ctx context.Context, productID string) ([]domain.ScheduledPriceRule, error) {
	rules, err := s.ruleRepo.ListRulesForProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list price rules: %w", err)
	}
	return rules, nil
}

// parseTimeOfDay parses an optional "HH:mm" wall-clock string.
func parseTimeOfDay(s *string) (*domain.TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	parts := strings.SplitN(*s, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected HH:mm, got '%s'", *s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("invalid hour in '%s'", *s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid minute in '%s'", *s)
	}
	return &domain.TimeOfDay{Hour: hour, Minute: minute}, nil
}
