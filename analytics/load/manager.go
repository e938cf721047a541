package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_tempmon/analytics/models"
	"github.com/LilVoxy/coursework_tempmon/analytics/utils"
)

// LoadManager отвечает за управление процессом загрузки фактов в аналитическую БД
type LoadManager struct {
	db     *sql.DB
	logger *utils.AnalyticsLogger
	loader Loader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.AnalyticsLogger) *LoadManager {
	return &LoadManager{
		db:     db,
		logger: logger,
		loader: NewOLAPLoader(db, logger),
	}
}

// EnsureFactTables создает таблицы фактов, если они еще не существуют
func (m *LoadManager) EnsureFactTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS temp_analytics.hourly_temp_facts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			date DATE NOT NULL,
			hour_of_day TINYINT NOT NULL,
			min_temp DOUBLE NOT NULL,
			max_temp DOUBLE NOT NULL,
			avg_temp DOUBLE NOT NULL,
			samples INT NOT NULL DEFAULT 0,
			overheat_samples INT NOT NULL DEFAULT 0,
			UNIQUE KEY uniq_date_hour (date, hour_of_day)
		)`,
		`CREATE TABLE IF NOT EXISTS temp_analytics.daily_temp_facts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			date DATE NOT NULL,
			min_temp DOUBLE NOT NULL,
			max_temp DOUBLE NOT NULL,
			avg_temp DOUBLE NOT NULL,
			samples INT NOT NULL DEFAULT 0,
			overheat_samples INT NOT NULL DEFAULT 0,
			UNIQUE KEY uniq_date (date)
		)`,
	}

	for _, query := range queries {
		if _, err := m.db.Exec(query); err != nil {
			return fmt.Errorf("ошибка при создании таблицы фактов: %w", err)
		}
	}

	return nil
}

// Load выполняет фазу загрузки данных
// Принимает обработанные данные из фазы Transform
func (m *LoadManager) Load(transformedData *models.TransformedData) error {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных)")

	// 1. Загружаем почасовые температурные факты
	if len(transformedData.HourlyFacts) > 0 {
		m.logger.Info("Загрузка почасовых фактов...")
		if err := m.loader.LoadHourlyFacts(transformedData.HourlyFacts); err != nil {
			m.logger.Error("Ошибка при загрузке почасовых фактов: %v", err)
			return fmt.Errorf("ошибка при загрузке почасовых фактов: %w", err)
		}
	}

	// 2. Загружаем суточные температурные факты
	if len(transformedData.DailyFacts) > 0 {
		m.logger.Info("Загрузка суточных фактов...")
		if err := m.loader.LoadDailyFacts(transformedData.DailyFacts); err != nil {
			m.logger.Error("Ошибка при загрузке суточных фактов: %v", err)
			return fmt.Errorf("ошибка при загрузке суточных фактов: %w", err)
		}
	}

	duration := time.Since(startTime)
	m.logger.Info("Фаза Load завершена. Длительность: %v", duration)

	return nil
}
