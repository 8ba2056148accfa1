package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PromotionResolver ---

type MockPromotionResolver struct {
	mock.Mock
}

func (m *MockPromotionResolver) ResolvePromotionalPrice(ctx context.Context, productID, categoryID string, amount domain.Money, at time.Time) (domain.Money, []domain.AppliedPromotion, error) {
	args := m.Called(ctx, productID, categoryID, amount, at)
	var applied []domain.AppliedPromotion
	if args.Get(1) != nil {
		applied = args.Get(1).([]domain.AppliedPromotion)
	}
	return args.Get(0).(domain.Money), applied, args.Error(2)
}

// --- Mock BundleResolver ---

type MockBundleResolver struct {
	mock.Mock
}

func (m *MockBundleResolver) ResolveBundlePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error) {
	args := m.Called(ctx, bundleID, currency, at)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBundleResolver) CalculateSeparatePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error) {
	args := m.Called(ctx, bundleID, currency, at)
	return args.Get(0).(domain.Money), args.Error(1)
}

type PricingServiceTestSuite struct {
	suite.Suite
	mockScheduled   *MockScheduledPriceResolver
	mockPromotions  *MockPromotionResolver
	mockRates       *MockExchangeRateResolver
	mockBundles     *MockBundleResolver
	mockProductRepo *MockProductRepository
	service         portssvc.PricingSvcFacade
	at              time.Time
}

func (suite *PricingServiceTestSuite) SetupTest() {
	suite.mockScheduled = new(MockScheduledPriceResolver)
	suite.mockPromotions = new(MockPromotionResolver)
	suite.mockRates = new(MockExchangeRateResolver)
	suite.mockBundles = new(MockBundleResolver)
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewPricingService(
		suite.mockScheduled, suite.mockPromotions, suite.mockRates, suite.mockBundles, suite.mockProductRepo,
	)
	suite.at = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
}

func xof(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), domain.CurrencyXOF)
}

func (suite *PricingServiceTestSuite) TestResolveProductPrice_ConvertsScheduledPrice() {
	native := domain.NewMoney(decimal.NewFromInt(10), domain.CurrencyEUR)
	suite.mockScheduled.On("ResolveScheduledPrice", mock.Anything, "prod-1", suite.at).Return(native, nil).Once()
	suite.mockRates.On("Convert", mock.Anything, native, domain.CurrencyXOF, suite.at).Return(xof("6559.57"), nil).Once()

	price, err := suite.service.ResolveProductPrice(context.Background(), "prod-1", domain.CurrencyXOF, suite.at)

	suite.Require().NoError(err)
	suite.Equal("6559.57", price.Amount.String())
}

func (suite *PricingServiceTestSuite) TestResolveCartLinePrice_FoldsPromotionsIn() {
	product := &domain.Product{ProductID: "prod-1", CategoryID: "cat-9", BasePrice: decimal.NewFromInt(1000), Currency: domain.CurrencyXOF}
	suite.mockProductRepo.On("FindProductByID", mock.Anything, "prod-1").Return(product, nil).Once()
	suite.mockScheduled.On("ResolveScheduledPrice", mock.Anything, "prod-1", suite.at).Return(xof("1000"), nil).Once()
	suite.mockRates.On("Convert", mock.Anything, xof("1000"), domain.CurrencyXOF, suite.at).Return(xof("1000"), nil).Once()

	applied := []domain.AppliedPromotion{{PromotionID: "promo-1", Discount: decimal.NewFromInt(100)}}
	suite.mockPromotions.On("ResolvePromotionalPrice", mock.Anything, "prod-1", "cat-9", xof("1000"), suite.at).
		Return(xof("900"), applied, nil).Once()

	price, got, err := suite.service.ResolveCartLinePrice(context.Background(), "prod-1", domain.CurrencyXOF, suite.at)

	suite.Require().NoError(err)
	suite.Equal("900", price.Amount.String())
	suite.Require().Len(got, 1)
	suite.Equal("promo-1", got[0].PromotionID)
}

func (suite *PricingServiceTestSuite) TestBundleSavings() {
	suite.mockBundles.On("CalculateSeparatePrice", mock.Anything, "bundle-1", domain.CurrencyXOF, suite.at).
		Return(xof("1000"), nil).Once()
	suite.mockBundles.On("ResolveBundlePrice", mock.Anything, "bundle-1", domain.CurrencyXOF, suite.at).
		Return(xof("900"), nil).Once()

	savings, err := suite.service.BundleSavings(context.Background(), "bundle-1", domain.CurrencyXOF, suite.at)

	suite.Require().NoError(err)
	suite.Equal("100", savings.Amount.String())
}

func TestPricingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
