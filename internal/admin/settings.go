package admin

import (
	"github.com/shopspring/decimal"

	"github.com/baabuu/storefront-web/pkg/enums"
)

// SettingsView is the read-only store configuration shown in the console.
type SettingsView struct {
	SiteName              string          `json:"site_name"`
	SiteDescription       string          `json:"site_description"`
	ContactEmail          string          `json:"contact_email,omitempty"`
	Currency              string          `json:"currency"`
	TaxRate               decimal.Decimal `json:"tax_rate"`
	ShippingCost          decimal.Decimal `json:"shipping_cost"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
	APIBaseURL            string          `json:"api_base_url"`
	MediaBaseURL          string          `json:"media_base_url"`
	LowStockThreshold     int             `json:"low_stock_threshold"`
	AdminPageSize         int             `json:"admin_page_size"`
	StorefrontPageSize    int             `json:"storefront_page_size"`
}

func (s *service) Settings() SettingsView {
	store := s.cfg.Store
	origin := s.cfg.App.PublicOrigin
	return SettingsView{
		SiteName:              store.SiteName,
		SiteDescription:       store.SiteDescription,
		ContactEmail:          store.ContactEmail,
		Currency:              store.Currency,
		TaxRate:               decimal.NewFromFloat(store.TaxRate),
		ShippingCost:          decimal.NewFromFloat(store.ShippingCost),
		FreeShippingThreshold: decimal.NewFromFloat(store.FreeShippingThreshold),
		APIBaseURL:            s.cfg.Backend.APIBase(origin),
		MediaBaseURL:          s.cfg.Backend.MediaBase(origin),
		LowStockThreshold:     enums.LowStockThreshold,
		AdminPageSize:         s.cfg.Catalog.AdminPageSize,
		StorefrontPageSize:    s.cfg.Catalog.StorefrontPageSize,
	}
}
