package config

import "time"

// GameConfig holds the collectible spawn and pickup tuning
type GameConfig struct {
	// Interval between spawn waves
	SpawnInterval time.Duration `mapstructure:"spawn_interval"`

	// Number of sprites and energy pools spawned per wave
	CountPerKind int `mapstructure:"count_per_kind" validate:"min=1"`

	// Spawn scatter around the player, in degrees of lat/lng
	JitterDeg float64 `mapstructure:"jitter_deg" validate:"gt=0"`

	// Pickup radius around the player, in meters
	ConsumeRadiusM float64 `mapstructure:"consume_radius_m" validate:"gt=0"`

	// Inclusive bounds for random energy pool power
	MinPoolPower int `mapstructure:"min_pool_power" validate:"min=1"`
	MaxPoolPower int `mapstructure:"max_pool_power" validate:"min=1"`
}

// TradingConfig holds trade settlement behavior
type TradingConfig struct {
	// When set, confirming a trade also moves the two items between the
	// inventories. When unset, confirmation only clears the bookkeeping
	// and players exchange items in person.
	SwapOnConfirm bool `mapstructure:"swap_on_confirm"`
}
