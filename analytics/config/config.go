package config

import (
	"time"
)

// AnalyticsConfig содержит конфигурацию пайплайна агрегации замеров
type AnalyticsConfig struct {
	// Конфигурация для подключения к БД замеров (исходной)
	SourceConfig DatabaseConfig `json:"source_config"`

	// Конфигурация для подключения к аналитической БД (целевой)
	AnalyticsConfig DatabaseConfig `json:"analytics_config"`

	// Интервал запуска агрегации
	RunInterval time.Duration `json:"run_interval"`

	// Максимальное количество замеров, обрабатываемых за один запуск
	BatchSize int `json:"batch_size"`

	// Порог перегрева в градусах Цельсия
	OverheatThreshold float64 `json:"overheat_threshold"`

	// Включение/отключение логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultSourceConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "Vjnbkmlf40782",
		DBName:   "tempdb",
	}

	DefaultAnalyticsDBConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "Vjnbkmlf40782",
		DBName:   "temp_analytics",
	}

	DefaultAnalyticsConfig = AnalyticsConfig{
		SourceConfig:          DefaultSourceConfig,
		AnalyticsConfig:       DefaultAnalyticsDBConfig,
		RunInterval:           1 * time.Hour,
		BatchSize:             10000,
		OverheatThreshold:     85.0,
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию пайплайна агрегации
func GetConfig() AnalyticsConfig {
	return DefaultAnalyticsConfig
}
