package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/core/services"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ScheduledPriceResolver ---

type MockScheduledPriceResolver struct {
	mock.Mock
}

func (m *MockScheduledPriceResolver) ResolveScheduledPrice(ctx context.Context, productID string, at time.Time) (domain.Money, error) {
	args := m.Called(ctx, productID, at)
	return args.Get(0).(domain.Money), args.Error(1)
}

// --- Mock ExchangeRateResolver ---

type MockExchangeRateResolver struct {
	mock.Mock
}

func (m *MockExchangeRateResolver) ResolveRate(ctx context.Context, currency domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currency, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateResolver) Convert(ctx context.Context, amount domain.Money, to domain.Currency, asOf time.Time) (domain.Money, error) {
	args := m.Called(ctx, amount, to, asOf)
	return args.Get(0).(domain.Money), args.Error(1)
}

type BundleServiceTestSuite struct {
	suite.Suite
	mockBundleRepo  *MockBundleRepository
	mockProductRepo *MockProductRepository
	mockScheduled   *MockScheduledPriceResolver
	mockRates       *MockExchangeRateResolver
	service         portssvc.BundleSvcFacade
	at              time.Time
}

func (suite *BundleServiceTestSuite) SetupTest() {
	suite.mockBundleRepo = new(MockBundleRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockScheduled = new(MockScheduledPriceResolver)
	suite.mockRates = new(MockExchangeRateResolver)
	suite.service = services.NewBundleService(suite.mockBundleRepo, suite.mockProductRepo, suite.mockScheduled, suite.mockRates)
	suite.at = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
}

// breakfastBundle is three products at 500, 300 and 200 XOF with a 10%
// bundle discount.
func (suite *BundleServiceTestSuite) breakfastBundle() *domain.ProductBundle {
	return &domain.ProductBundle{
		BundleID:           "bundle-1",
		Name:               "Petit déjeuner",
		Active:             true,
		DiscountPercentage: decimal.NewFromInt(10),
		Items: []domain.BundleItem{
			{BundleItemID: "item-1", ProductID: "prod-a", Quantity: 1},
			{BundleItemID: "item-2", ProductID: "prod-b", Quantity: 1},
			{BundleItemID: "item-3", ProductID: "prod-c", Quantity: 1},
		},
	}
}

func (suite *BundleServiceTestSuite) expectItemPrices() {
	prices := map[string]string{"prod-a": "500", "prod-b": "300", "prod-c": "200"}
	for productID, amount := range prices {
		m := domain.NewMoney(decimal.RequireFromString(amount), domain.CurrencyXOF)
		suite.mockScheduled.On("ResolveScheduledPrice", mock.Anything, productID, suite.at).Return(m, nil)
		suite.mockRates.On("Convert", mock.Anything, m, domain.CurrencyXOF, suite.at).Return(m, nil)
	}
}

func (suite *BundleServiceTestSuite) TestResolveBundlePrice_DiscountedSumOfParts() {
	suite.mockBundleRepo.On("FindBundleByID", mock.Anything, "bundle-1", suite.at).
		Return(suite.breakfastBundle(), nil).Once()
	suite.expectItemPrices()

	price, err := suite.service.ResolveBundlePrice(context.Background(), "bundle-1", domain.CurrencyXOF, suite.at)

	suite.Require().NoError(err)
	suite.Equal("900", price.Amount.String(), "500+300+200 minus 10 percent")
}

func (suite *BundleServiceTestSuite) TestResolveBundlePrice_ExplicitPriceWins() {
	bundle := suite.breakfastBundle()
	bundle.ExplicitPrices = map[domain.Currency]decimal.Decimal{
		domain.CurrencyXOF: decimal.NewFromInt(850),
	}
	suite.mockBundleRepo.On("FindBundleByID", mock.Anything, "bundle-1", suite.at).
		Return(bundle, nil).Once()

	price, err := suite.service.ResolveBundlePrice(context.Background(), "bundle-1", domain.CurrencyXOF, suite.at)

	suite.Require().NoError(err)
	suite.Equal("850", price.Amount.String())
	suite.mockScheduled.AssertNotCalled(suite.T(), "ResolveScheduledPrice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BundleServiceTestSuite) TestResolveBundlePrice_QuantityMultiplies() {
	bundle := suite.breakfastBundle()
	bundle.DiscountPercentage = decimal.Zero
	bundle.Items = []domain.BundleItem{
		{BundleItemID: "item-1", ProductID: "prod-a", Quantity: 3},
	}
	suite.mockBundleRepo.On("FindBundleByID", mock.Anything, "bundle-1", suite.at).
		Return(bundle, nil).Once()
	suite.expectItemPrices()

	price, err := suite.service.ResolveBundlePrice(context.Background(), "bundle-1", domain.CurrencyXOF, suite.at)

	suite.Require().NoError(err)
	suite.Equal("1500", price.Amount.String())
}

func (suite *BundleServiceTestSuite) TestResolveBundlePrice_DailyLimitReached() {
	bundle := suite.breakfastBundle()
	bundle.DailyLimit = 50
	bundle.TodaySoldCount = 50
	suite.mockBundleRepo.On("FindBundleByID", mock.Anything, "bundle-1", suite.at).
		Return(bundle, nil).Once()

	_, err := suite.service.ResolveBundlePrice(context.Background(), "bundle-1", domain.CurrencyXOF, suite.at)

	suite.Require().Error(err)
	unavailable, ok := apperrors.AsBundleUnavailable(err)
	suite.Require().True(ok)
	suite.Equal(string(domain.ReasonDailyLimitReached), unavailable.Reason)
}

func (suite *BundleServiceTestSuite) TestResolveBundlePrice_InactiveBundle() {
	bundle := suite.breakfastBundle()
	bundle.Active = false
	suite.mockBundleRepo.On("FindBundleByID", mock.Anything, "bundle-1", suite.at).
		Return(bundle, nil).Once()

	_, err := suite.service.ResolveBundlePrice(context.Background(), "bundle-1", domain.CurrencyXOF, suite.at)

	unavailable, ok := apperrors.AsBundleUnavailable(err)
	suite.Require().True(ok)
	suite.Equal(string(domain.ReasonInactive), unavailable.Reason)
}

func (suite *BundleServiceTestSuite) TestCalculateSeparatePrice_IgnoresAvailability() {
	bundle := suite.breakfastBundle()
	bundle.Active = false // unavailable, but separate pricing still works
	suite.mockBundleRepo.On("FindBundleByID", mock.Anything, "bundle-1", suite.at).
		Return(bundle, nil).Once()
	suite.expectItemPrices()

	separate, err := suite.service.CalculateSeparatePrice(context.Background(), "bundle-1", domain.CurrencyXOF, suite.at)

	suite.Require().NoError(err)
	suite.Equal("1000", separate.Amount.String())
}

func (suite *BundleServiceTestSuite) TestReserveBundleSale() {
	suite.mockBundleRepo.On("TryReserveBundleSale", mock.Anything, "bundle-1", suite.at).Return(true, nil).Once()
	suite.mockBundleRepo.On("TryReserveBundleSale", mock.Anything, "bundle-2", suite.at).Return(false, nil).Once()

	ok, err := suite.service.ReserveBundleSale(context.Background(), "bundle-1", suite.at)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.service.ReserveBundleSale(context.Background(), "bundle-2", suite.at)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *BundleServiceTestSuite) TestCreateBundle_Validations() {
	ctx := context.Background()

	_, err := suite.service.CreateBundle(ctx, dto.CreateBundleRequest{
		Name:               "bad discount",
		Items:              []dto.CreateBundleItemRequest{{ProductID: "prod-a", Quantity: 1}},
		DiscountPercentage: decimal.NewFromInt(100),
	}, "admin")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateBundle(ctx, dto.CreateBundleRequest{
		Name:      "half a time window",
		Items:     []dto.CreateBundleItemRequest{{ProductID: "prod-a", Quantity: 1}},
		StartTime: "08:00",
	}, "admin")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.mockProductRepo.On("FindProductByID", mock.Anything, "ghost").
		Return(nil, apperrors.NewNotFoundError("product ghost")).Once()
	_, err = suite.service.CreateBundle(ctx, dto.CreateBundleRequest{
		Name:  "unknown product",
		Items: []dto.CreateBundleItemRequest{{ProductID: "ghost", Quantity: 1}},
	}, "admin")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.mockBundleRepo.AssertNotCalled(suite.T(), "SaveBundle", mock.Anything, mock.Anything)
}

func (suite *BundleServiceTestSuite) TestCreateBundle_Success() {
	ctx := context.Background()
	product := &domain.Product{ProductID: "prod-a", BasePrice: decimal.NewFromInt(500), Currency: domain.CurrencyXOF, Active: true}
	suite.mockProductRepo.On("FindProductByID", mock.Anything, "prod-a").Return(product, nil).Once()
	suite.mockBundleRepo.On("SaveBundle", mock.Anything, mock.AnythingOfType("domain.ProductBundle")).Return(nil).Once()

	bundle, err := suite.service.CreateBundle(ctx, dto.CreateBundleRequest{
		Name:               "Petit déjeuner",
		Items:              []dto.CreateBundleItemRequest{{ProductID: "prod-a", Quantity: 2}},
		DiscountPercentage: decimal.NewFromInt(10),
		StartTime:          "06:00",
		EndTime:            "10:30",
		DailyLimit:         50,
	}, "admin")

	suite.Require().NoError(err)
	suite.Require().NotNil(bundle)
	suite.NotEmpty(bundle.BundleID)
	suite.True(bundle.Active)
	suite.Require().Len(bundle.Items, 1)
	suite.NotEmpty(bundle.Items[0].BundleItemID)
	suite.mockBundleRepo.AssertExpectations(suite.T())
}

func TestBundleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BundleServiceTestSuite))
}
