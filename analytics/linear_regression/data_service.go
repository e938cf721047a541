package linear_regression

import (
	"database/sql"
	"fmt"
	"time"
)

// DataService выбирает суточные средние температуры из аналитической БД
type DataService struct {
	db *sql.DB
}

// NewDataService создает новый сервис выборки данных для тренда
func NewDataService(db *sql.DB) *DataService {
	return &DataService{
		db: db,
	}
}

// GetDailyTempData получает средние суточные температуры за указанный период
func (s *DataService) GetDailyTempData(daysBack int) ([]DataPoint, error) {
	// Сначала определим последнюю доступную дату в таблице
	lastDateQuery := `
	SELECT
		MAX(date)
	FROM
		temp_analytics.daily_temp_facts;`

	var lastDate time.Time
	err := s.db.QueryRow(lastDateQuery).Scan(&lastDate)
	if err != nil {
		return nil, fmt.Errorf("ошибка при определении последней даты: %w", err)
	}

	// Получаем данные из таблицы daily_temp_facts
	// для указанного периода времени относительно последней даты
	query := `
	SELECT
		date,
		avg_temp
	FROM
		temp_analytics.daily_temp_facts
	WHERE
		date >= DATE_SUB(?, INTERVAL ? DAY)
		AND date <= ?
	ORDER BY
		date;`

	rows, err := s.db.Query(query, lastDate, daysBack, lastDate)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выполнении запроса к аналитической БД: %w", err)
	}
	defer rows.Close()

	var dataPoints []DataPoint
	var baseDate time.Time
	var firstPoint bool = true

	for rows.Next() {
		var date time.Time
		var avgTemp float64

		if err := rows.Scan(&date, &avgTemp); err != nil {
			return nil, fmt.Errorf("ошибка при чтении данных: %w", err)
		}

		if firstPoint {
			baseDate = date
			firstPoint = false
		}

		// Рассчитываем X как количество дней от начала периода
		days := date.Sub(baseDate).Hours() / 24

		dataPoints = append(dataPoints, DataPoint{
			X:    days,
			Y:    avgTemp,
			Date: date,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по результатам: %w", err)
	}

	if len(dataPoints) == 0 {
		return nil, fmt.Errorf("не найдены данные о суточной температуре за последние %d дней от %v", daysBack, lastDate)
	}

	return dataPoints, nil
}
