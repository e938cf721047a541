package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// AnalyticsLogger представляет логгер для пайплайна агрегации
type AnalyticsLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
}

// NewAnalyticsLogger создает новый экземпляр логгера для агрегации
func NewAnalyticsLogger(verbose bool) *AnalyticsLogger {
	// Создаем или открываем лог-файл для записи
	currentTime := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("analytics_log_%s.log", currentTime)

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Не удалось открыть или создать файл лога: %v", err)
	}

	// Инициализируем логгеры для разных уровней
	infoLogger := log.New(file, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(file, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &AnalyticsLogger{
		infoLogger:  infoLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		isVerbose:   verbose,
	}
}

// Info логирует информационное сообщение
func (l *AnalyticsLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("INFO:", msg)
}

// Error логирует сообщение об ошибке
func (l *AnalyticsLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("ERROR:", msg)
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *AnalyticsLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("DEBUG:", msg)
}

// LogRunStart логирует начало запуска агрегации
func (l *AnalyticsLogger) LogRunStart() {
	l.Info("Начало выполнения агрегации замеров")
}

// LogRunComplete логирует завершение запуска агрегации
func (l *AnalyticsLogger) LogRunComplete(startTime time.Time, readings, hourlyFacts, dailyFacts int) {
	duration := time.Since(startTime)
	l.Info("Агрегация завершена. Длительность: %v", duration)
	l.Info("Обработано: %d замеров, %d почасовых фактов, %d суточных фактов", readings, hourlyFacts, dailyFacts)
}
