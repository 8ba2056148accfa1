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

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type ScheduledPriceServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	mockRuleRepo    *MockPriceRuleRepository
	service         portssvc.ScheduledPriceSvcFacade
}

func (suite *ScheduledPriceServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockRuleRepo = new(MockPriceRuleRepository)
	suite.service = services.NewScheduledPriceService(suite.mockProductRepo, suite.mockRuleRepo)
}

func (suite *ScheduledPriceServiceTestSuite) product(price string) *domain.Product {
	return &domain.Product{
		ProductID: "prod-1",
		Name:      "Thé vert",
		BasePrice: decimal.RequireFromString(price),
		Currency:  domain.CurrencyXOF,
		Active:    true,
	}
}

func (suite *ScheduledPriceServiceTestSuite) TestResolve_NoRulesReturnsBase() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("ListRulesForProduct", ctx, "prod-1").Return([]domain.ScheduledPriceRule{}, nil).Once()

	price, err := suite.service.ResolveScheduledPrice(ctx, "prod-1", at)

	suite.Require().NoError(err)
	suite.Equal("1000", price.Amount.String())
	suite.Equal(domain.CurrencyXOF, price.Currency)
}

func (suite *ScheduledPriceServiceTestSuite) TestResolve_TenPercentDiscount() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	rules := []domain.ScheduledPriceRule{{
		RuleID:     "rule-1",
		ProductID:  "prod-1",
		PriceType:  domain.PriceTypeDiscount,
		Percentage: decimalPtr("10"),
		Currency:   domain.CurrencyXOF,
		Active:     true,
	}}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("ListRulesForProduct", ctx, "prod-1").Return(rules, nil).Once()

	price, err := suite.service.ResolveScheduledPrice(ctx, "prod-1", at)

	suite.Require().NoError(err)
	suite.Equal("900", price.Amount.String())
}

func (suite *ScheduledPriceServiceTestSuite) TestResolve_HigherPriorityWins() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	rules := []domain.ScheduledPriceRule{
		{
			RuleID:     "rule-low",
			PriceType:  domain.PriceTypeDiscount,
			Percentage: decimalPtr("10"),
			Priority:   1,
			Active:     true,
		},
		{
			RuleID:    "rule-high",
			PriceType: domain.PriceTypeFixed,
			Amount:    decimalPtr("750"),
			Priority:  5,
			Active:    true,
		},
	}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("ListRulesForProduct", ctx, "prod-1").Return(rules, nil).Once()

	price, err := suite.service.ResolveScheduledPrice(ctx, "prod-1", at)

	suite.Require().NoError(err)
	suite.Equal("750", price.Amount.String())
}

func (suite *ScheduledPriceServiceTestSuite) TestResolve_SpecificityBreaksPriorityTie() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) // a Wednesday

	broad := domain.ScheduledPriceRule{
		RuleID:     "rule-broad",
		PriceType:  domain.PriceTypeDiscount,
		Percentage: decimalPtr("5"),
		Priority:   3,
		Active:     true,
	}
	narrow := domain.ScheduledPriceRule{
		RuleID:     "rule-narrow",
		PriceType:  domain.PriceTypeDiscount,
		Percentage: decimalPtr("20"),
		Priority:   3,
		Active:     true,
		Window: domain.ValidityWindow{
			DaysOfWeek: []time.Weekday{time.Wednesday},
		},
	}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("ListRulesForProduct", ctx, "prod-1").
		Return([]domain.ScheduledPriceRule{broad, narrow}, nil).Once()

	price, err := suite.service.ResolveScheduledPrice(ctx, "prod-1", at)

	suite.Require().NoError(err)
	suite.Equal("800", price.Amount.String(), "the more constrained window must win the tie")
}

func (suite *ScheduledPriceServiceTestSuite) TestResolve_RuleIDBreaksFullTie() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	a := domain.ScheduledPriceRule{
		RuleID:     "rule-a",
		PriceType:  domain.PriceTypeDiscount,
		Percentage: decimalPtr("10"),
		Priority:   3,
		Active:     true,
	}
	b := domain.ScheduledPriceRule{
		RuleID:     "rule-b",
		PriceType:  domain.PriceTypeDiscount,
		Percentage: decimalPtr("30"),
		Priority:   3,
		Active:     true,
	}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("ListRulesForProduct", ctx, "prod-1").
		Return([]domain.ScheduledPriceRule{b, a}, nil).Once()

	price, err := suite.service.ResolveScheduledPrice(ctx, "prod-1", at)

	suite.Require().NoError(err)
	suite.Equal("900", price.Amount.String(), "lowest rule ID must win a full tie")
}

func (suite *ScheduledPriceServiceTestSuite) TestResolve_ExpiredAndInactiveRulesIgnored() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	past := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rules := []domain.ScheduledPriceRule{
		{
			RuleID:     "rule-expired",
			PriceType:  domain.PriceTypeDiscount,
			Percentage: decimalPtr("50"),
			Active:     true,
			Window:     domain.ValidityWindow{ValidUntil: &past},
		},
		{
			RuleID:     "rule-inactive",
			PriceType:  domain.PriceTypeDiscount,
			Percentage: decimalPtr("50"),
			Active:     false,
		},
	}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("ListRulesForProduct", ctx, "prod-1").Return(rules, nil).Once()

	price, err := suite.service.ResolveScheduledPrice(ctx, "prod-1", at)

	suite.Require().NoError(err)
	suite.Equal("1000", price.Amount.String())
}

func (suite *ScheduledPriceServiceTestSuite) TestResolve_MisconfiguredRuleFallsBackToBase() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	rules := []domain.ScheduledPriceRule{{
		RuleID:    "rule-broken",
		PriceType: domain.PriceTypeDiscount, // neither amount nor percentage
		Active:    true,
	}}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("ListRulesForProduct", ctx, "prod-1").Return(rules, nil).Once()

	price, err := suite.service.ResolveScheduledPrice(ctx, "prod-1", at)

	suite.Require().NoError(err, "a misconfigured rule must not fail the sale")
	suite.Equal("1000", price.Amount.String())
}

func (suite *ScheduledPriceServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	timeFrom := "08:00"
	timeUntil := "11:30"
	req := dto.CreatePriceRuleRequest{
		ProductID:  "prod-1",
		PriceType:  "DISCOUNT",
		Percentage: decimalPtr("15"),
		Currency:   "XOF",
		TimeFrom:   &timeFrom,
		TimeUntil:  &timeUntil,
		DaysOfWeek: []int{1, 2, 3, 4, 5},
		Priority:   2,
	}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()
	suite.mockRuleRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.ScheduledPriceRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Require().NotNil(rule)
	suite.NotEmpty(rule.RuleID)
	suite.True(rule.Active)
	suite.Equal(&domain.TimeOfDay{Hour: 8, Minute: 0}, rule.Window.TimeFrom)
	suite.Equal(&domain.TimeOfDay{Hour: 11, Minute: 30}, rule.Window.TimeUntil)
	suite.Len(rule.Window.DaysOfWeek, 5)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *ScheduledPriceServiceTestSuite) TestCreateRule_CurrencyMustMatchProduct() {
	ctx := context.Background()
	req := dto.CreatePriceRuleRequest{
		ProductID:  "prod-1",
		PriceType:  "DISCOUNT",
		Percentage: decimalPtr("15"),
		Currency:   "EUR",
	}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()

	_, err := suite.service.CreateRule(ctx, req, "admin")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *ScheduledPriceServiceTestSuite) TestCreateRule_FixedRequiresAmount() {
	ctx := context.Background()
	req := dto.CreatePriceRuleRequest{
		ProductID: "prod-1",
		PriceType: "FIXED",
		Currency:  "XOF",
	}

	suite.mockProductRepo.On("FindProductByID", ctx, "prod-1").Return(suite.product("1000"), nil).Once()

	_, err := suite.service.CreateRule(ctx, req, "admin")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestScheduledPriceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduledPriceServiceTestSuite))
}
