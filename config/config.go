package config

import (
	"time"
)

// MonitorConfig содержит конфигурацию сервиса мониторинга температуры
type MonitorConfig struct {
	// Интервал между замерами температуры
	SampleInterval time.Duration `json:"sample_interval"`

	// Единица измерения для отображения: c, f или k
	Unit string `json:"unit"`

	// Путь к CSV-файлу журнала замеров
	LogFile string `json:"log_file"`

	// Максимальный размер CSV-файла в байтах до ротации
	LogMaxSize int64 `json:"log_max_size"`

	// Максимальное количество ротированных файлов
	LogMaxFiles int `json:"log_max_files"`

	// Адрес HTTP-сервера
	HTTPAddr string `json:"http_addr"`

	// Конфигурация подключения к базе данных
	DBConfig DatabaseConfig `json:"db_config"`

	// Размер кольцевой истории замеров в памяти (для средней температуры)
	HistorySize int `json:"history_size"`
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
	DefaultDBConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "Vjnbkmlf40782",
		DBName:   "tempdb",
	}

	DefaultMonitorConfig = MonitorConfig{
		SampleInterval: 3 * time.Second,
		Unit:           "c",
		LogFile:        "logs/log.csv",
		LogMaxSize:     2097152,
		LogMaxFiles:    5,
		HTTPAddr:       ":8080",
		DBConfig:       DefaultDBConfig,
		HistorySize:    100,
	}
)

// GetConfig возвращает конфигурацию сервиса мониторинга
func GetConfig() MonitorConfig {
	return DefaultMonitorConfig
}
