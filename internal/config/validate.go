package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone database for hosts without zoneinfo

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Billing.validate(); err != nil {
		return fmt.Errorf("billing: %w", err)
	}

	if strings.TrimSpace(c.Storage.Root) == "" {
		return fmt.Errorf("storage.root must not be empty")
	}

	if c.Renderer.Timeout <= 0 {
		return fmt.Errorf("renderer.timeout must be > 0 (got %s)", c.Renderer.Timeout)
	}

	if _, err := time.LoadLocation(c.FollowUp.Timezone); err != nil {
		return fmt.Errorf("followup.timezone: %w", err)
	}

	if _, err := cron.ParseStandard(c.FollowUp.SweepSchedule); err != nil {
		return fmt.Errorf("followup.sweep_schedule %q: %w", c.FollowUp.SweepSchedule, err)
	}

	return nil
}

func (b BillingConfig) validate() error {
	rate, err := decimal.NewFromString(strings.TrimSpace(b.TaxRateRaw))
	if err != nil {
		return fmt.Errorf("tax_rate %q: %w", b.TaxRateRaw, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax_rate must be between 0 and 1 (got %s)", rate)
	}
	if strings.TrimSpace(b.DefaultCurrency) == "" {
		return fmt.Errorf("default_currency must not be empty")
	}
	return nil
}
