package domain

import "github.com/shopspring/decimal"

// Product carries the catalog fields the pricing engine needs: the stored
// base price in the product's native currency and the category used for
// promotion applicability. The rest of the product record lives with the
// back-office catalog, outside this module.
type Product struct {
	ProductID  string          `json:"productID"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryID,omitempty"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	Currency   Currency        `json:"currency"`
	Active     bool            `json:"active"`
	AuditFields
}

// BasePriceMoney returns the stored base price as Money in the product's
// native currency.
func (p *Product) BasePriceMoney() Money {
	return NewMoney(p.BasePrice, p.Currency)
}
