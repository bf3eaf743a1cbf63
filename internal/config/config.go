// README: Config loader with env defaults for HTTP, tolls, tracking and optional backends.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"tollsim/internal/modules/payment"
	"tollsim/internal/modules/pricing"
	"tollsim/internal/modules/toll"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type TollConfig struct {
	RadiusKm float64
	Tariff   pricing.Tariff
}

type TrackingConfig struct {
	Interval  time.Duration
	NumPoints int
	Vehicles  int
	Seed      uint64
}

type PaymentConfig struct {
	DenyProbability  float64
	DelayProbability float64
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Toll     TollConfig
	Tracking TrackingConfig
	Payment  PaymentConfig
	Booths   []toll.Booth
	LogLevel slog.Level
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TOLLSIM_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("TOLLSIM_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TOLLSIM_REDIS_ADDR")
	cfg.Toll.RadiusKm = envOrDefaultFloat("TOLLSIM_TOLL_RADIUS_KM", 5)
	cfg.Toll.Tariff.Min = int64(envOrDefaultInt("TOLLSIM_TOLL_MIN", int(pricing.DefaultTariff.Min)))
	cfg.Toll.Tariff.Max = int64(envOrDefaultInt("TOLLSIM_TOLL_MAX", int(pricing.DefaultTariff.Max)))
	cfg.Tracking.Interval = envOrDefaultDuration("TOLLSIM_TRACK_INTERVAL", time.Second)
	cfg.Tracking.NumPoints = envOrDefaultInt("TOLLSIM_NUM_POINTS", 10)
	cfg.Tracking.Vehicles = envOrDefaultInt("TOLLSIM_VEHICLES", 3)
	cfg.Tracking.Seed = uint64(envOrDefaultInt("TOLLSIM_SEED", 0))
	cfg.Payment.DenyProbability = envOrDefaultFloat("TOLLSIM_DENY_PROBABILITY", payment.DefaultDenyProbability)
	cfg.Payment.DelayProbability = envOrDefaultFloat("TOLLSIM_DELAY_PROBABILITY", payment.DefaultDelayProbability)

	booths, err := ParseBooths(os.Getenv("TOLLSIM_BOOTHS"))
	if err != nil {
		return Config{}, err
	}
	cfg.Booths = append(toll.DefaultBooths(), booths...)

	if err := cfg.LogLevel.UnmarshalText([]byte(envOrDefault("TOLLSIM_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("%w: TOLLSIM_LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Toll.RadiusKm <= 0 {
		errs = append(errs, errors.New("toll radius must be positive"))
	}
	if err := c.Toll.Tariff.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Tracking.Interval <= 0 {
		errs = append(errs, errors.New("track interval must be positive"))
	}
	if c.Tracking.NumPoints < 1 {
		errs = append(errs, errors.New("number of path points must be at least 1"))
	}
	if c.Tracking.Vehicles < 1 {
		errs = append(errs, errors.New("vehicle count must be a positive integer"))
	}
	if !validProb(c.Payment.DenyProbability) || !validProb(c.Payment.DelayProbability) {
		errs = append(errs, errors.New("payment probabilities must be within [0, 1]"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseBooths reads "Name:lat:lng" entries separated by semicolons.
func ParseBooths(raw string) ([]toll.Booth, error) {
	var booths []toll.Booth
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: booth entry %q must look like Name:lat:lng", ErrInvalidConfig, entry)
		}
		b, err := toll.ParseBooth(parts[0], parts[1], parts[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		booths = append(booths, b)
	}
	return booths, nil
}

func validProb(p float64) bool {
	return p >= 0 && p <= 1
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// bare numbers are milliseconds
		if ms, err := strconv.Atoi(v); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}
