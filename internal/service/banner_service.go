package service

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/shipping"
)

type bannerService struct {
	cfg      config.BannerConfig
	shipping shipping.Calculator
}

// NewBannerService creates the promotional banner service
func NewBannerService(cfg config.BannerConfig, calc shipping.Calculator) *bannerService {
	return &bannerService{cfg: cfg, shipping: calc}
}

// Banner returns the configured banner with the shipping nudge for subtotal
func (s *bannerService) Banner(subtotal decimal.Decimal) Banner {
	return Banner{
		Enabled:         s.cfg.Enabled,
		Title:           s.cfg.Title,
		Subtitle:        s.cfg.Subtitle,
		ImageURL:        s.cfg.ImageURL,
		Link:            s.cfg.Link,
		ShippingMessage: s.shipping.Message(subtotal),
		FreeThreshold:   s.shipping.FreeThreshold,
	}
}
