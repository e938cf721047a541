// database/reading_repository.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLReadingRepository реализация ReadingRepository для MySQL
type MySQLReadingRepository struct {
	db *sql.DB
}

// NewMySQLReadingRepository создает новый репозиторий замеров
func NewMySQLReadingRepository(db *sql.DB) *MySQLReadingRepository {
	return &MySQLReadingRepository{
		db: db,
	}
}

// SaveReading сохраняет один замер температуры
func (r *MySQLReadingRepository) SaveReading(takenAt time.Time, core int, label string, temperature float64) (int, error) {
	result, err := r.db.Exec(
		"INSERT INTO cpu_readings (taken_at, core, label, temperature) VALUES (?, ?, ?, ?)",
		takenAt, core, label, temperature,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка при сохранении замера: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID замера: %w", err)
	}

	return int(id), nil
}

// SaveCoreReadings сохраняет замеры всех ядер одной транзакцией
func (r *MySQLReadingRepository) SaveCoreReadings(takenAt time.Time, readings []Reading) error {
	if len(readings) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO cpu_readings (taken_at, core, label, temperature) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось подготовить запрос: %w", err)
	}
	defer stmt.Close()

	for _, reading := range readings {
		if _, err := stmt.Exec(takenAt, reading.Core, reading.Label, reading.Temperature); err != nil {
			tx.Rollback()
			return fmt.Errorf("не удалось сохранить замер ядра %d: %w", reading.Core, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}

	return nil
}

// GetLatestReading возвращает последний сохраненный замер общей температуры
func (r *MySQLReadingRepository) GetLatestReading() (*Reading, error) {
	var reading Reading
	err := r.db.QueryRow(`
		SELECT id, taken_at, core, label, temperature
		FROM cpu_readings
		WHERE core = 0
		ORDER BY taken_at DESC, id DESC
		LIMIT 1
	`).Scan(&reading.ID, &reading.TakenAt, &reading.Core, &reading.Label, &reading.Temperature)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("ошибка при получении последнего замера: %w", err)
	}

	return &reading, nil
}

// GetReadingsRange возвращает замеры за указанный период
func (r *MySQLReadingRepository) GetReadingsRange(from, to time.Time, limit int) ([]Reading, error) {
	rows, err := r.db.Query(`
		SELECT id, taken_at, core, label, temperature
		FROM cpu_readings
		WHERE taken_at BETWEEN ? AND ?
		ORDER BY taken_at ASC, id ASC
		LIMIT ?
	`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе замеров: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// GetReadingsAfter возвращает замеры с ID больше указанного.
// Используется пайплайном агрегации для инкрементальной выборки.
func (r *MySQLReadingRepository) GetReadingsAfter(lastID int, limit int) ([]Reading, error) {
	rows, err := r.db.Query(`
		SELECT id, taken_at, core, label, temperature
		FROM cpu_readings
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?
	`, lastID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе новых замеров: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// scanReadings читает замеры из результата запроса
func scanReadings(rows *sql.Rows) ([]Reading, error) {
	var readings []Reading
	for rows.Next() {
		var reading Reading
		if err := rows.Scan(
			&reading.ID, &reading.TakenAt, &reading.Core,
			&reading.Label, &reading.Temperature); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании замера: %w", err)
		}
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по замерам: %w", err)
	}

	return readings, nil
}
