package service

import (
	"database/sql"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
)

const fallbackActivityLevel = "sedentary"

// DefaultActivity resolves the clinic's configured default activity level to
// the multiplier applied on top of BMR. The setting accepts a level name
// ("moderate") or a raw factor ("1.55"); a raw factor that matches no tier
// is used as given and displayed unlabeled. Unset or unusable values fall
// back to sedentary so an energy estimate never overstates.
func DefaultActivity(db *sql.DB) (float64, string) {
	fallback, _ := metrics.ActivityFactor(fallbackActivityLevel)

	value, ok, err := GetConfig(db, ConfigDefaultActivityLevel)
	if err != nil || !ok {
		return fallback, fallbackActivityLevel
	}
	value = normalizeName(value)
	if factor, ok := metrics.ActivityFactor(value); ok {
		return factor, value
	}
	if factor := metrics.ParseDecimal(value); factor > 0 {
		return factor, metrics.ActivityLabel(factor)
	}
	return fallback, fallbackActivityLevel
}
