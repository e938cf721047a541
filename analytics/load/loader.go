package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_tempmon/analytics/models"
	"github.com/LilVoxy/coursework_tempmon/analytics/utils"
)

// Loader интерфейс для загрузки агрегированных фактов в аналитическую БД
type Loader interface {
	// LoadHourlyFacts загружает почасовые температурные факты
	LoadHourlyFacts(facts []models.HourlyTempFact) error

	// LoadDailyFacts загружает суточные температурные факты
	LoadDailyFacts(facts []models.DailyTempFact) error
}

// OLAPLoader реализация Loader для аналитической базы данных
type OLAPLoader struct {
	db     *sql.DB
	logger *utils.AnalyticsLogger
}

// NewOLAPLoader создает новый экземпляр OLAPLoader
func NewOLAPLoader(db *sql.DB, logger *utils.AnalyticsLogger) *OLAPLoader {
	return &OLAPLoader{
		db:     db,
		logger: logger,
	}
}

// LoadHourlyFacts загружает почасовые температурные факты в аналитическую БД
func (l *OLAPLoader) LoadHourlyFacts(facts []models.HourlyTempFact) error {
	if len(facts) == 0 {
		l.logger.Debug("Нет почасовых фактов для загрузки")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки почасовых температурных фактов (всего: %d)", len(facts))

	// Подготавливаем запрос для вставки/обновления почасовых фактов
	stmt, err := l.db.Prepare(`
		INSERT INTO temp_analytics.hourly_temp_facts (
			date, hour_of_day, min_temp, max_temp, avg_temp, samples, overheat_samples
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		min_temp = LEAST(min_temp, VALUES(min_temp)),
		max_temp = GREATEST(max_temp, VALUES(max_temp)),
		avg_temp = (avg_temp * samples + VALUES(avg_temp) * VALUES(samples)) / (samples + VALUES(samples)),
		overheat_samples = overheat_samples + VALUES(overheat_samples),
		samples = samples + VALUES(samples)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	// Начинаем транзакцию
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Подготавливаем запрос в транзакции
	txStmt := tx.Stmt(stmt)
	defer txStmt.Close()

	processed := 0
	errors := 0

	// Обрабатываем каждый почасовой факт
	for _, fact := range facts {
		_, err := txStmt.Exec(
			fact.Date,
			fact.HourOfDay,
			fact.MinTemp,
			fact.MaxTemp,
			fact.AvgTemp,
			fact.Samples,
			fact.OverheatSamples,
		)

		if err != nil {
			l.logger.Error("Ошибка при обновлении hourly_temp_facts для даты %s, часа %d: %v",
				fact.Date, fact.HourOfDay, err)
			errors++
			continue
		}

		processed++
	}

	// Если были ошибки, откатываем транзакцию
	if errors > 0 {
		tx.Rollback()
		return fmt.Errorf("произошло %d ошибок при загрузке почасовых фактов", errors)
	}

	// Фиксируем транзакцию
	err = tx.Commit()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка почасовых фактов завершена. Загружено записей: %d. Длительность: %v", processed, duration)

	return nil
}

// LoadDailyFacts загружает суточные температурные факты в аналитическую БД
func (l *OLAPLoader) LoadDailyFacts(facts []models.DailyTempFact) error {
	if len(facts) == 0 {
		l.logger.Debug("Нет суточных фактов для загрузки")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки суточных температурных фактов (всего: %d)", len(facts))

	// Подготавливаем запрос для вставки/обновления суточных фактов
	stmt, err := l.db.Prepare(`
		INSERT INTO temp_analytics.daily_temp_facts (
			date, min_temp, max_temp, avg_temp, samples, overheat_samples
		)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		min_temp = LEAST(min_temp, VALUES(min_temp)),
		max_temp = GREATEST(max_temp, VALUES(max_temp)),
		avg_temp = (avg_temp * samples + VALUES(avg_temp) * VALUES(samples)) / (samples + VALUES(samples)),
		overheat_samples = overheat_samples + VALUES(overheat_samples),
		samples = samples + VALUES(samples)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	// Начинаем транзакцию
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Подготавливаем запрос в транзакции
	txStmt := tx.Stmt(stmt)
	defer txStmt.Close()

	processed := 0
	errors := 0

	// Обрабатываем каждый суточный факт
	for _, fact := range facts {
		_, err := txStmt.Exec(
			fact.Date,
			fact.MinTemp,
			fact.MaxTemp,
			fact.AvgTemp,
			fact.Samples,
			fact.OverheatSamples,
		)

		if err != nil {
			l.logger.Error("Ошибка при обновлении daily_temp_facts для даты %s: %v", fact.Date, err)
			errors++
			continue
		}

		processed++
	}

	// Если были ошибки, откатываем транзакцию
	if errors > 0 {
		tx.Rollback()
		return fmt.Errorf("произошло %d ошибок при загрузке суточных фактов", errors)
	}

	// Фиксируем транзакцию
	err = tx.Commit()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка суточных фактов завершена. Загружено записей: %d. Длительность: %v", processed, duration)

	return nil
}
