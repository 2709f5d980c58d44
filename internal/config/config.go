package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

var (
	// ErrNoResources возвращается, когда в конфигурации нет ни одного фотографа
	ErrNoResources = errors.New("config: at least one resource must be configured")

	// ErrInvalidTimezone возвращается при некорректной таймзоне бизнеса
	ErrInvalidTimezone = errors.New("config: invalid business timezone")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Calendar CalendarConfig `toml:"calendar"`
	Maps     MapsConfig     `toml:"maps"`
	Business BusinessConfig `toml:"business"`

	// Resources упорядоченный список фотографов; первый с primary=true
	// (или просто первый) назначается приоритетным
	Resources []ResourceConfig `toml:"resources"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig настройки клиента внешнего календаря
type CalendarConfig struct {
	// Mode выбирает реализацию клиента: "live" или "fake".
	// Выбор делается один раз при старте процесса.
	Mode    string `toml:"mode"`
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"` // секунды
}

// MapsConfig настройки клиента геокодинга и маршрутов
type MapsConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды

	// RouteCacheTTLMinutes время жизни записи в кэше времени в пути
	RouteCacheTTLMinutes int `toml:"route_cache_ttl_minutes"`

	// HomeBaseLat/Lng координаты студии - точка отправления для оценки
	// времени в пути
	HomeBaseLat float64 `toml:"home_base_lat"`
	HomeBaseLng float64 `toml:"home_base_lng"`

	// Fallbacks таблица известных адресов для подстановки координат,
	// когда геокодинг не смог разобрать адрес
	Fallbacks []GeocodeFallback `toml:"fallbacks"`
}

// GeocodeFallback координаты для адреса, который геокодер не разбирает
type GeocodeFallback struct {
	Substring string  `toml:"substring"`
	Lat       float64 `toml:"lat"`
	Lng       float64 `toml:"lng"`
}

// BusinessConfig бизнес-политики записи
type BusinessConfig struct {
	// Timezone фиксированная локальная таймзона бизнеса,
	// например "America/New_York"
	Timezone string `toml:"timezone"`

	// CutoffHour час локального времени, после которого недоступна
	// запись на завтра
	CutoffHour int `toml:"cutoff_hour"`

	// SlotStepMinutes шаг сетки слотов
	SlotStepMinutes int `toml:"slot_step_minutes"`

	// TrafficAwareRecalc пересчитывать ли travel-буфер с учетом трафика
	// для каждого кандидата слота
	TrafficAwareRecalc bool `toml:"traffic_aware_recalc"`

	// GapBufferBasis момент времени для второй оценки travel-буфера при
	// проверке зазора с соседним событием: "slot" или "adjacent_event"
	GapBufferBasis string `toml:"gap_buffer_basis"`
}

// ResourceConfig фотограф
type ResourceConfig struct {
	Email   string `toml:"email"`
	Name    string `toml:"name"`
	Primary bool   `toml:"primary"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "photo-booking-service"
	}
	if c.Calendar.Mode == "" {
		c.Calendar.Mode = "live"
	}
	if c.Calendar.Timeout == 0 {
		c.Calendar.Timeout = 10
	}
	if c.Maps.Timeout == 0 {
		c.Maps.Timeout = 10
	}
	if c.Maps.RouteCacheTTLMinutes == 0 {
		c.Maps.RouteCacheTTLMinutes = 30
	}
	if c.Business.Timezone == "" {
		c.Business.Timezone = "America/New_York"
	}
	if c.Business.CutoffHour == 0 {
		c.Business.CutoffHour = 17
	}
	if c.Business.SlotStepMinutes == 0 {
		c.Business.SlotStepMinutes = 30
	}
	if c.Business.GapBufferBasis == "" {
		c.Business.GapBufferBasis = "slot"
	}
}

func (c *Config) validate() error {
	if len(c.Resources) == 0 {
		return ErrNoResources
	}
	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, c.Business.Timezone, err)
	}
	if c.Calendar.Mode != "live" && c.Calendar.Mode != "fake" {
		return fmt.Errorf("config: calendar mode must be \"live\" or \"fake\", got %q", c.Calendar.Mode)
	}
	if c.Business.GapBufferBasis != "slot" && c.Business.GapBufferBasis != "adjacent_event" {
		return fmt.Errorf("config: gap_buffer_basis must be \"slot\" or \"adjacent_event\", got %q", c.Business.GapBufferBasis)
	}
	return nil
}

// Location возвращает загруженную таймзону бизнеса.
// Вызывается после validate, поэтому ошибка невозможна.
func (c *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(c.Business.Timezone)
	return loc
}

// DomainResources конвертирует конфигурацию фотографов в доменную модель.
// Если primary не отмечен ни у кого, приоритетным становится первый.
func (c *Config) DomainResources() []domain.Resource {
	resources := make([]domain.Resource, len(c.Resources))
	hasPrimary := false
	for i, r := range c.Resources {
		resources[i] = domain.Resource{
			ID:        r.Email,
			Name:      r.Name,
			IsPrimary: r.Primary,
		}
		if r.Primary {
			hasPrimary = true
		}
	}
	if !hasPrimary && len(resources) > 0 {
		resources[0].IsPrimary = true
	}
	return resources
}
