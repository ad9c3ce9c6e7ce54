package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/trsv-dev/users-service/internal/errs"
)

// DefaultPath Путь к файлу конфигурации по умолчанию.
const DefaultPath = "config.yaml"

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config Конфигурация сервиса. После загрузки не изменяется.
type Config struct {
	Host       string `yaml:"HOST"`
	Port       int    `yaml:"PORT"`
	Debug      bool   `yaml:"DEBUG"`
	DBHost     string `yaml:"DBHOST"`
	DBPort     int    `yaml:"DBPORT"`
	DBName     string `yaml:"DBNAME"`
	DBUser     string `yaml:"DBUSER"`
	DBPassword string `yaml:"DBPASSWORD"`

	Storage         string        `yaml:"STORAGE"`
	LogDir          string        `yaml:"LOGDIR"`
	LogLevel        string        `yaml:"LOGLEVEL"`
	CORSOrigins     []string      `yaml:"CORSORIGINS"`
	JWTSecret       string        `yaml:"JWTSECRET"`
	ShutdownTimeout time.Duration `yaml:"SHUTDOWNTIMEOUT"`
}

// Default Конфигурация со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Host:            "127.0.0.1",
		Port:            8080,
		DBHost:          "localhost",
		DBPort:          5432,
		Storage:         StoragePostgres,
		LogDir:          "logs",
		LogLevel:        "debug",
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: 7 * time.Second,
	}
}

// Load Загружает конфигурацию из YAML-файла, затем применяет переопределения
// из переменных окружения с такими же именами и проверяет результат.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewErrInvalidConfig(path, "не удалось прочитать файл конфигурации", err)
	}

	if err = cfg.decode(data); err != nil {
		return nil, err
	}

	if err = cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Разбор YAML поверх значений по умолчанию. Неизвестные ключи считаются ошибкой.
func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errs.NewErrInvalidConfig("yaml", "неверный формат файла конфигурации", err)
	}

	return nil
}

// Переопределение значений из переменных окружения.
func (c *Config) applyEnv() error {
	strVars := map[string]*string{
		"HOST":       &c.Host,
		"DBHOST":     &c.DBHost,
		"DBNAME":     &c.DBName,
		"DBUSER":     &c.DBUser,
		"DBPASSWORD": &c.DBPassword,
		"STORAGE":    &c.Storage,
		"LOGDIR":     &c.LogDir,
		"LOGLEVEL":   &c.LogLevel,
		"JWTSECRET":  &c.JWTSecret,
	}

	for key, dst := range strVars {
		if value, ok := os.LookupEnv(key); ok {
			*dst = value
		}
	}

	intVars := map[string]*int{
		"PORT":   &c.Port,
		"DBPORT": &c.DBPort,
	}

	for key, dst := range intVars {
		if value, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return errs.NewErrInvalidConfig(key, "ожидается целое число", err)
			}
			*dst = n
		}
	}

	if value, ok := os.LookupEnv("DEBUG"); ok {
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return errs.NewErrInvalidConfig("DEBUG", "ожидается true или false", err)
		}
		c.Debug = debug
	}

	if value, ok := os.LookupEnv("CORSORIGINS"); ok {
		c.CORSOrigins = splitList(value)
	}

	if value, ok := os.LookupEnv("SHUTDOWNTIMEOUT"); ok {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return errs.NewErrInvalidConfig("SHUTDOWNTIMEOUT", "ожидается длительность (например, 7s)", err)
		}
		c.ShutdownTimeout = timeout
	}

	return nil
}

// Validate Проверка обязательных настроек.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errs.NewErrInvalidConfig("HOST", "не задан адрес", nil)
	}

	if c.Port < 1 || c.Port > 65535 {
		return errs.NewErrInvalidConfig("PORT", "вне диапазона 1..65535", nil)
	}

	if c.ShutdownTimeout <= 0 {
		return errs.NewErrInvalidConfig("SHUTDOWNTIMEOUT", "должен быть больше нуля", nil)
	}

	switch c.Storage {
	case StorageMemory:
		return nil
	case StoragePostgres:
	default:
		return errs.NewErrInvalidConfig("STORAGE", fmt.Sprintf("неизвестное хранилище %q", c.Storage), nil)
	}

	required := []struct {
		key   string
		value string
	}{
		{"DBHOST", c.DBHost},
		{"DBNAME", c.DBName},
		{"DBUSER", c.DBUser},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errs.NewErrInvalidConfig(r.key, "обязательная настройка не задана", nil)
		}
	}

	if c.DBPort < 1 || c.DBPort > 65535 {
		return errs.NewErrInvalidConfig("DBPORT", "вне диапазона 1..65535", nil)
	}

	return nil
}

// RunAddress Адрес, на котором слушает HTTP-сервер.
func (c *Config) RunAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DatabaseURI Строка подключения к PostgreSQL, собранная из DB-настроек.
func (c *Config) DatabaseURI() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

// EffectiveLogLevel Уровень логирования с учётом флага DEBUG.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}

	return c.LogLevel
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}

	return result
}
