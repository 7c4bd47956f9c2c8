package config

import (
	"errors"
	"fmt"
	"os"

	"randevu/internal/models"
	"randevu/internal/schedule"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Business   BusinessConfig   `yaml:"business"`
	Google     GoogleConfig     `yaml:"google"`
	Redis      RedisConfig      `yaml:"redis"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Services   []models.Service `yaml:"services"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	BaseURL        string   `yaml:"base_url"`
	AdminURL       string   `yaml:"admin_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

// BusinessConfig holds the shop's fixed scheduling parameters.
type BusinessConfig struct {
	OpenTime      string `yaml:"open_time"`
	CloseTime     string `yaml:"close_time"`
	SlotStepMin   int    `yaml:"slot_step_min"`
	ClosedWeekday string `yaml:"closed_weekday"`
	Timezone      string `yaml:"timezone"`
	UTCOffset     int    `yaml:"utc_offset_hours"`
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CalendarID   string `yaml:"calendar_id"`
	TokenFile    string `yaml:"token_file"`
	TokenKey     string `yaml:"token_key"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment variables referenced from the YAML may
	// come from the real environment instead.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
		return errors.New("google client_id and client_secret are required")
	}
	if c.Server.BaseURL == "" {
		return errors.New("server base_url is required")
	}

	open, err := schedule.ParseHHMM(c.Business.OpenTime)
	if err != nil {
		return fmt.Errorf("business open_time: %w", err)
	}
	closeMin, err := schedule.ParseHHMM(c.Business.CloseTime)
	if err != nil {
		return fmt.Errorf("business close_time: %w", err)
	}
	if open >= closeMin {
		return errors.New("business open_time must be before close_time")
	}
	if c.Business.SlotStepMin < 1 {
		return errors.New("business slot_step_min must be positive")
	}
	if _, err := c.Business.ClosedDay(); err != nil {
		return err
	}

	return ValidateServices(c.Services)
}

func ValidateServices(services []models.Service) error {
	if len(services) == 0 {
		return errors.New("at least one service is required")
	}
	keys := make(map[string]bool, len(services))
	for _, s := range services {
		if s.Key == "" {
			return fmt.Errorf("service %q has empty key", s.Title)
		}
		if keys[s.Key] {
			return fmt.Errorf("duplicate service key found: %s", s.Key)
		}
		if s.DurationMin < 1 {
			return fmt.Errorf("service %q has invalid duration %d", s.Key, s.DurationMin)
		}
		keys[s.Key] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 5
	}
	if c.Business.OpenTime == "" {
		c.Business.OpenTime = "10:00"
	}
	if c.Business.CloseTime == "" {
		c.Business.CloseTime = "21:00"
	}
	if c.Business.SlotStepMin == 0 {
		c.Business.SlotStepMin = 15
	}
	if c.Business.ClosedWeekday == "" {
		c.Business.ClosedWeekday = "Sunday"
	}
	if c.Business.Timezone == "" {
		c.Business.Timezone = "Europe/Istanbul"
		c.Business.UTCOffset = 3
	}
	if c.Google.CalendarID == "" {
		c.Google.CalendarID = "primary"
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = "data/google-token.json"
	}
	if c.Google.TokenKey == "" {
		c.Google.TokenKey = "google:token"
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
}

var weekdays = map[string]int{
	"Sunday":    0,
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
}

// ClosedDay resolves the configured closed weekday name (0 = Sunday).
func (b BusinessConfig) ClosedDay() (int, error) {
	day, ok := weekdays[b.ClosedWeekday]
	if !ok {
		return 0, fmt.Errorf("unknown closed_weekday %q", b.ClosedWeekday)
	}
	return day, nil
}

// Window builds the schedule window from the validated business config.
func (b BusinessConfig) Window() schedule.Window {
	open, _ := schedule.ParseHHMM(b.OpenTime)
	closeMin, _ := schedule.ParseHHMM(b.CloseTime)
	return schedule.Window{Open: open, Close: closeMin, Step: b.SlotStepMin}
}
