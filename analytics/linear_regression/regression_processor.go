package linear_regression

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_tempmon/analytics/utils"
)

// Прогнозы старше этого срока считаются устаревшими и удаляются
const predictionRetentionDays = 90

// Config настройки построения температурного тренда
type Config struct {
	// Сколько дней суточных средних берется для анализа
	AnalysisPeriodDays int
	// Горизонт прогноза в днях
	ForecastDays int
	// Уровень доверия для интервалов прогноза (0.90, 0.95, 0.99)
	ConfidenceLevel float64
	// Минимальное r², при котором модель считается значимой
	MinR2Threshold float64
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() Config {
	return Config{
		AnalysisPeriodDays: 30,
		ForecastDays:       14,
		ConfidenceLevel:    0.95,
		MinR2Threshold:     0.30,
	}
}

// RegressionProcessor строит тренд температуры CPU по суточным средним
// и сохраняет прогнозы в аналитическую БД
type RegressionProcessor struct {
	dataService *DataService
	repository  *MySQLPredictionRepository
	logger      *utils.AnalyticsLogger
	config      Config
}

// NewRegressionProcessor создает новый процессор температурного тренда
func NewRegressionProcessor(
	dataService *DataService,
	repository *MySQLPredictionRepository,
	logger *utils.AnalyticsLogger,
	config Config,
) *RegressionProcessor {
	return &RegressionProcessor{
		dataService: dataService,
		repository:  repository,
		logger:      logger,
		config:      config,
	}
}

// Process строит модель по суточным средним температурам, генерирует
// прогнозы и сохраняет их вместе с параметрами модели
func (p *RegressionProcessor) Process() error {
	startTime := time.Now()
	p.logger.Info("Запуск прогнозирования температуры CPU")

	if err := p.repository.EnsureTableExists(); err != nil {
		return fmt.Errorf("ошибка при проверке/создании таблицы прогнозов: %w", err)
	}

	model, err := p.buildModel()
	if err != nil {
		return err
	}

	if err := p.persistForecasts(model); err != nil {
		return err
	}

	p.logger.Info("Прогнозирование температуры завершено за %v", time.Since(startTime))
	return nil
}

// buildModel выбирает суточные средние и строит по ним линейный тренд
func (p *RegressionProcessor) buildModel() (*RegressionResult, error) {
	p.logger.Info("Выборка суточных средних температур за последние %d дней", p.config.AnalysisPeriodDays)
	dataPoints, err := p.dataService.GetDailyTempData(p.config.AnalysisPeriodDays)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке суточных средних: %w", err)
	}
	p.logger.Info("Получено %d дней наблюдений", len(dataPoints))

	model, err := LinearRegression(dataPoints)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении температурного тренда: %w", err)
	}

	p.logger.Info("Тренд: %s (a=%.3f градусов/день, b=%.3f, R=%.3f, R²=%.3f), период с %s по %s",
		model.TrendDirection(), model.A, model.B, model.R, model.R2,
		model.PeriodStart.Format("2006-01-02"),
		model.PeriodEnd.Format("2006-01-02"))

	// Слабая модель не блокирует прогноз, но фиксируется в логе
	if model.R2 < p.config.MinR2Threshold {
		p.logger.Info("Низкое качество модели (R²=%.3f < %.3f), прогноз все равно будет построен",
			model.R2, p.config.MinR2Threshold)
	}

	return model, nil
}

// persistForecasts генерирует прогнозы по модели и сохраняет их,
// попутно удаляя устаревшие записи
func (p *RegressionProcessor) persistForecasts(model *RegressionResult) error {
	p.logger.Info("Генерация прогнозов на %d дней вперед от %s",
		p.config.ForecastDays, model.PeriodEnd.Format("2006-01-02"))
	forecasts := GenerateForecasts(model, p.config.ForecastDays, p.config.ConfidenceLevel)

	if err := p.repository.SaveMultiplePredictions(*model, forecasts); err != nil {
		return fmt.Errorf("ошибка при сохранении прогнозов: %w", err)
	}
	p.logger.Info("Сохранено %d прогнозов", len(forecasts))

	// Чистка устаревших прогнозов некритична, ошибка только логируется
	deleteOlderThan := time.Now().AddDate(0, 0, -predictionRetentionDays)
	if err := p.repository.DeleteOldPredictions(deleteOlderThan); err != nil {
		p.logger.Info("Не удалось удалить устаревшие прогнозы: %v", err)
	}

	return nil
}

// RunAsPartOfAggregation строит прогноз как завершающий шаг конвейера агрегации
func RunAsPartOfAggregation(olapDB *sql.DB, logger *utils.AnalyticsLogger) error {
	return RunWithCustomConfig(olapDB, logger, DefaultConfig())
}

// RunWithCustomConfig строит прогноз с указанными настройками
func RunWithCustomConfig(olapDB *sql.DB, logger *utils.AnalyticsLogger, config Config) error {
	dataService := NewDataService(olapDB)
	repository := NewMySQLPredictionRepository(olapDB)
	processor := NewRegressionProcessor(dataService, repository, logger, config)

	return processor.Process()
}
