package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Admin    AdminConfig    `yaml:"admin"`
	Site     SiteConfig     `yaml:"site"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address     string `yaml:"address"`
	SwaggerDir  string `yaml:"swagger_dir"`
	LandingPath string `yaml:"landing_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	BookingTopic string   `yaml:"booking_topic"`
	GroupID      string   `yaml:"group_id"`
}

type BookingConfig struct {
	// FetchDelayMillis simulates backend latency for the in-memory flight source.
	FetchDelayMillis      int    `yaml:"fetch_delay_ms"`
	FlightsCacheTTL       int    `yaml:"flights_cache_ttl_seconds"`
	SessionIdleMinutes    int    `yaml:"session_idle_minutes"`
	SessionSweepSeconds   int    `yaml:"session_sweep_seconds"`
	HandoffTTLMinutes     int    `yaml:"handoff_ttl_minutes"`
	ReferencePrefix       string `yaml:"reference_prefix"`
	MaxPassengers         int    `yaml:"max_passengers"`
	DefaultPassengerCount int    `yaml:"default_passenger_count"`
}

type AdminConfig struct {
	Email           string `yaml:"email"`
	Password        string `yaml:"password"`
	SessionTTLHours int    `yaml:"session_ttl_hours"`
	FlightIDPrefix  string `yaml:"flight_id_prefix"`
	BookingIDPrefix string `yaml:"booking_id_prefix"`
}

// SiteConfig carries the copy and sample data that used to differ between
// duplicated pages.
type SiteConfig struct {
	Name           string   `yaml:"name"`
	Tagline        string   `yaml:"tagline"`
	CurrencySymbol string   `yaml:"currency_symbol"`
	SeedPath       string   `yaml:"seed_path"`
	PopularRoutes  []string `yaml:"popular_routes"`
}

type WorkerConfig struct {
	EmailFrom string `yaml:"email_from"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.LandingPath == "" {
		c.HTTP.LandingPath = "/"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Booking.FlightsCacheTTL == 0 {
		c.Booking.FlightsCacheTTL = 60
	}
	if c.Booking.SessionIdleMinutes == 0 {
		c.Booking.SessionIdleMinutes = 30
	}
	if c.Booking.SessionSweepSeconds == 0 {
		c.Booking.SessionSweepSeconds = 60
	}
	if c.Booking.HandoffTTLMinutes == 0 {
		c.Booking.HandoffTTLMinutes = 15
	}
	if c.Booking.ReferencePrefix == "" {
		c.Booking.ReferencePrefix = "SJ"
	}
	if c.Booking.MaxPassengers == 0 {
		c.Booking.MaxPassengers = 9
	}
	if c.Booking.DefaultPassengerCount == 0 {
		c.Booking.DefaultPassengerCount = 1
	}
	if c.Admin.SessionTTLHours == 0 {
		c.Admin.SessionTTLHours = 8
	}
	if c.Admin.FlightIDPrefix == "" {
		c.Admin.FlightIDPrefix = "FL"
	}
	if c.Admin.BookingIDPrefix == "" {
		c.Admin.BookingIDPrefix = "B-"
	}
	if c.Site.Name == "" {
		c.Site.Name = "SkyJourney"
	}
	if c.Site.CurrencySymbol == "" {
		c.Site.CurrencySymbol = "$"
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = "booking.submitted"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "skyjourney-worker"
	}
	if c.Worker.EmailFrom == "" {
		c.Worker.EmailFrom = "bookings@skyjourney.com"
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Booking.FetchDelayMillis < 0 {
		errs = append(errs, errors.New("booking.fetch_delay_ms must not be negative"))
	}
	if c.Booking.MaxPassengers < 1 {
		errs = append(errs, fmt.Errorf("booking.max_passengers must be positive, got %d", c.Booking.MaxPassengers))
	}
	if c.Booking.DefaultPassengerCount < 1 {
		errs = append(errs, fmt.Errorf("booking.default_passenger_count must be positive, got %d", c.Booking.DefaultPassengerCount))
	}
	if c.Booking.DefaultPassengerCount > c.Booking.MaxPassengers {
		errs = append(errs, errors.New("booking.default_passenger_count exceeds booking.max_passengers"))
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		errs = append(errs, errors.New("admin.email and admin.password are required"))
	}
	return errors.Join(errs...)
}

// ResolvePath picks the config file: the flag value, then CONFIG_PATH, then
// config.yaml in the working directory.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "config.yaml"
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
