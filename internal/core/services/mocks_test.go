package services_test

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// --- Mock PriceRuleRepository ---

type MockPriceRuleRepository struct {
	mock.Mock
}

func (m *MockPriceRuleRepository) ListRulesForProduct(ctx context.Context, productID string) ([]domain.ScheduledPriceRule, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledPriceRule), args.Error(1)
}

func (m *MockPriceRuleRepository) SaveRule(ctx context.Context, rule domain.ScheduledPriceRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) ListRatesForCurrency(ctx context.Context, currency domain.Currency) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID string, expiry *time.Time, updatedBy string) error {
	args := m.Called(ctx, rateID, expiry, updatedBy)
	return args.Error(0)
}

// --- Mock PromotionRepository ---

type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) ListPromotionsFor(ctx context.Context, productID, categoryID string) ([]domain.Promotion, error) {
	args := m.Called(ctx, productID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) SavePromotion(ctx context.Context, promo domain.Promotion) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromotionRepository) TryReservePromotionUsage(ctx context.Context, promotionID string) (bool, error) {
	args := m.Called(ctx, promotionID)
	return args.Bool(0), args.Error(1)
}

// --- Mock BundleRepository ---

type MockBundleRepository struct {
	mock.Mock
}

func (m *MockBundleRepository) FindBundleByID(ctx context.Context, bundleID string, day time.Time) (*domain.ProductBundle, error) {
	args := m.Called(ctx, bundleID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductBundle), args.Error(1)
}

func (m *MockBundleRepository) SaveBundle(ctx context.Context, bundle domain.ProductBundle) error {
	args := m.Called(ctx, bundle)
	return args.Error(0)
}

func (m *MockBundleRepository) TryReserveBundleSale(ctx context.Context, bundleID string, day time.Time) (bool, error) {
	args := m.Called(ctx, bundleID, day)
	return args.Bool(0), args.Error(1)
}
