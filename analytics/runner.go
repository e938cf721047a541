package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/coursework_tempmon/analytics/config"
	"github.com/LilVoxy/coursework_tempmon/analytics/extractors"
	"github.com/LilVoxy/coursework_tempmon/analytics/linear_regression"
	"github.com/LilVoxy/coursework_tempmon/analytics/load"
	"github.com/LilVoxy/coursework_tempmon/analytics/models"
	"github.com/LilVoxy/coursework_tempmon/analytics/transform"
	"github.com/LilVoxy/coursework_tempmon/analytics/utils"
	"github.com/go-co-op/gocron"
)

type AnalyticsRunner struct {
	config        config.AnalyticsConfig
	dbConnections *config.DBConnections
	logger        *utils.AnalyticsLogger
	extractor     *extractors.Extractor
	transformer   *transform.Transformer
	loadManager   *load.LoadManager
	runLogRepo    *models.MySQLRunLogRepository
}

// NewAnalyticsRunner создает новый экземпляр AnalyticsRunner
func NewAnalyticsRunner() (*AnalyticsRunner, error) {
	// Получаем конфигурацию
	analyticsConfig := config.GetConfig()

	// Инициализируем логгер
	logger := utils.NewAnalyticsLogger(analyticsConfig.EnableDetailedLogging)
	logger.Info("Инициализация Analytics Runner")

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(analyticsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Инициализируем репозиторий журнала запусков
	runLogRepo := models.NewMySQLRunLogRepository(connections.AnalyticsDB)

	// Создаем таблицу журнала, если она еще не существует
	if err := runLogRepo.CreateRunLogTable(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблицы журнала агрегации: %w", err)
	}

	// Создаем экстрактор
	extractor := extractors.NewExtractor(connections.SourceDB, logger, analyticsConfig.BatchSize)

	// Создаем трансформатор
	transformer := transform.NewTransformer(logger, analyticsConfig.OverheatThreshold)

	// Создаем загрузчик
	loadManager := load.NewLoadManager(connections.AnalyticsDB, logger)

	// Создаем таблицы фактов, если они еще не существуют
	if err := loadManager.EnsureFactTables(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблиц фактов: %w", err)
	}

	return &AnalyticsRunner{
		config:        analyticsConfig,
		dbConnections: connections,
		logger:        logger,
		extractor:     extractor,
		transformer:   transformer,
		loadManager:   loadManager,
		runLogRepo:    runLogRepo,
	}, nil
}

// Close закрывает соединения с базами данных
func (r *AnalyticsRunner) Close() {
	r.logger.Info("Завершение работы Analytics Runner")
	config.CloseDatabases(r.dbConnections)
}

// ExecuteAggregation выполняет полный цикл агрегации замеров температуры
func (r *AnalyticsRunner) ExecuteAggregation() error {
	r.logger.Info("Запуск процесса агрегации")
	startTime := time.Now()

	// Создаем запись в журнале запусков
	logID, err := r.runLogRepo.CreateLogEntry(startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале агрегации: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале агрегации: %w", err)
	}

	// Инициализируем лог запуска агрегации
	runLog := &models.AggregationRunLog{
		ID:        logID,
		StartTime: startTime,
		Status:    "in_progress",
	}

	// Получаем метаданные последнего успешного запуска
	lastRun, err := r.runLogRepo.GetLastSuccessfulRun()
	if err != nil {
		r.logger.Error("Не удалось получить информацию о последнем успешном запуске: %v. Будут обработаны все замеры.", err)
		// Продолжаем выполнение, но обрабатываем все данные
	}

	var lastProcessedReadingID int
	if lastRun != nil {
		lastProcessedReadingID = lastRun.LastProcessedReadingID
		r.logger.Info("Последний успешный запуск: %v, ID последнего замера: %d", lastRun.EndTime, lastProcessedReadingID)
	}

	// 1. Фаза извлечения данных (Extract)
	extractedData, err := r.extractor.Extract(lastProcessedReadingID)
	if err != nil {
		errMsg := fmt.Sprintf("Ошибка в фазе Extract: %v", err)
		r.logger.Error("%s", errMsg)
		r.updateRunLogFailure(runLog, errMsg)
		return fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	// Если нет новых данных, завершаем процесс
	if len(extractedData.Readings) == 0 {
		r.logger.Info("Нет новых замеров для обработки")
		r.updateRunLogSuccess(runLog, 0, 0, 0, lastProcessedReadingID)
		return nil
	}

	// Определяем ID последнего обработанного замера
	maxReadingID := lastProcessedReadingID
	for _, reading := range extractedData.Readings {
		if reading.ID > maxReadingID {
			maxReadingID = reading.ID
		}
	}

	// 2. Фаза трансформации данных (Transform)
	transformedData, err := r.transformer.Transform(extractedData)
	if err != nil {
		errMsg := fmt.Sprintf("Ошибка в фазе Transform: %v", err)
		r.logger.Error("%s", errMsg)
		r.updateRunLogFailure(runLog, errMsg)
		return fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	// 3. Фаза загрузки данных (Load)
	err = r.loadManager.Load(transformedData)
	if err != nil {
		errMsg := fmt.Sprintf("Ошибка в фазе Load: %v", err)
		r.logger.Error("%s", errMsg)
		r.updateRunLogFailure(runLog, errMsg)
		return fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	// 4. Запускаем линейную регрессию для прогнозирования тренда температуры
	r.logger.Info("Запуск линейной регрессии для прогнозирования тренда температуры")
	if err := r.runLinearRegression(); err != nil {
		r.logger.Error("Ошибка при выполнении линейной регрессии: %v", err)
		// Не прерываем агрегацию из-за ошибки в линейной регрессии
		// Это некритичный компонент
	}

	// Обновляем запись в журнале с информацией об успешном выполнении
	r.updateRunLogSuccess(runLog,
		len(extractedData.Readings),
		len(transformedData.HourlyFacts),
		len(transformedData.DailyFacts),
		maxReadingID)

	r.logger.Info("Процесс агрегации успешно завершен. Длительность: %v", time.Since(startTime))
	return nil
}

// updateRunLogSuccess обновляет запись в журнале при успешном завершении
func (r *AnalyticsRunner) updateRunLogSuccess(runLog *models.AggregationRunLog, readingsProcessed, hourlyFactsLoaded, dailyFactsLoaded, lastReadingID int) {
	runLog.EndTime = time.Now()
	runLog.Status = "success"
	runLog.ReadingsProcessed = readingsProcessed
	runLog.HourlyFactsLoaded = hourlyFactsLoaded
	runLog.DailyFactsLoaded = dailyFactsLoaded
	runLog.LastProcessedReadingID = lastReadingID

	if err := r.runLogRepo.UpdateLogEntrySuccess(
		runLog.ID,
		runLog.EndTime,
		runLog.ReadingsProcessed,
		runLog.HourlyFactsLoaded,
		runLog.DailyFactsLoaded,
		runLog.LastProcessedReadingID); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале агрегации: %v", err)
	}
}

// updateRunLogFailure обновляет запись в журнале при ошибке
func (r *AnalyticsRunner) updateRunLogFailure(runLog *models.AggregationRunLog, errorMessage string) {
	runLog.EndTime = time.Now()
	runLog.Status = "failed"
	runLog.ErrorMessage = errorMessage

	if err := r.runLogRepo.UpdateLogEntryFailure(
		runLog.ID,
		runLog.EndTime,
		runLog.ErrorMessage); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале агрегации: %v", err)
	}
}

// StartScheduler запускает планировщик для регулярного выполнения агрегации
func (r *AnalyticsRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика агрегации с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск процесса агрегации")
		if err := r.ExecuteAggregation(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированной агрегации: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик агрегации остановлен")
}

// RunOnce запускает процесс агрегации один раз
func RunOnce() {
	runner, err := NewAnalyticsRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Analytics Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.ExecuteAggregation(); err != nil {
		log.Fatalf("Ошибка при выполнении агрегации: %v", err)
	}
}

// RunScheduled запускает процесс агрегации по расписанию
func RunScheduled() {
	// Создаем контекст, который будет отменен при получении сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настраиваем обработку сигналов завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	// Запускаем горутину для обработки сигналов
	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем Analytics Runner...")
		cancel()
	}()

	runner, err := NewAnalyticsRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Analytics Runner: %v", err)
	}
	defer runner.Close()

	// Запускаем планировщик
	runner.StartScheduler(ctx)
}

// runLinearRegression запускает процесс линейной регрессии
func (r *AnalyticsRunner) runLinearRegression() error {
	// Используем стандартную конфигурацию
	config := linear_regression.DefaultConfig()

	// Запускаем линейную регрессию с использованием аналитической базы данных
	return linear_regression.RunWithCustomConfig(r.dbConnections.AnalyticsDB, r.logger, config)
}

// runLinearRegressionWithParams запускает процесс линейной регрессии с пользовательскими параметрами
func (r *AnalyticsRunner) runLinearRegressionWithParams(days, forecast int, confidence, minR2 float64) error {
	// Создаем конфигурацию с пользовательскими параметрами
	config := linear_regression.Config{
		AnalysisPeriodDays: days,
		ForecastDays:       forecast,
		ConfidenceLevel:    confidence,
		MinR2Threshold:     minR2,
	}

	r.logger.Info("Запуск линейной регрессии с параметрами: дней=%d, прогноз=%d дней, доверие=%.2f, минR²=%.2f",
		days, forecast, confidence, minR2)

	// Запускаем линейную регрессию с пользовательской конфигурацией
	return linear_regression.RunWithCustomConfig(r.dbConnections.AnalyticsDB, r.logger, config)
}

// RunLinearRegression запускает только линейную регрессию с пользовательскими параметрами
func RunLinearRegression(days, forecast int, confidence, minR2 float64) {
	log.Println("Запуск утилиты линейной регрессии")

	// Создаем Analytics Runner
	runner, err := NewAnalyticsRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Analytics Runner: %v", err)
	}
	defer runner.Close()

	// Запускаем только линейную регрессию
	if err := runner.runLinearRegressionWithParams(days, forecast, confidence, minR2); err != nil {
		log.Fatalf("Ошибка при выполнении линейной регрессии: %v", err)
	}

	log.Println("Линейная регрессия успешно завершена")
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "scheduled", "Режим работы: scheduled, once или lr")
	daysPtr := flag.Int("days", 30, "Количество дней для анализа (только для режима lr)")
	forecastPtr := flag.Int("forecast", 14, "Количество дней для прогноза (только для режима lr)")
	confidencePtr := flag.Float64("confidence", 0.95, "Уровень доверия (только для режима lr)")
	minR2Ptr := flag.Float64("min-r2", 0.30, "Минимальный порог для R² (только для режима lr)")

	flag.Parse()

	log.Println("Запуск Analytics Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce()
	case "scheduled":
		RunScheduled()
	case "lr":
		RunLinearRegression(*daysPtr, *forecastPtr, *confidencePtr, *minR2Ptr)
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: scheduled, once, lr")
		os.Exit(1)
	}

	log.Println("Analytics Runner завершил работу")
}
