// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_tempmon/config"
	"github.com/LilVoxy/coursework_tempmon/csvlog"
	"github.com/LilVoxy/coursework_tempmon/database"
	"github.com/LilVoxy/coursework_tempmon/monitor"
	"github.com/LilVoxy/coursework_tempmon/routes"
	"github.com/LilVoxy/coursework_tempmon/sensors"
	"github.com/LilVoxy/coursework_tempmon/websocket"
)

func main() {
	// Параметры командной строки
	intervalPtr := flag.Int("interval", 3, "Интервал между замерами температуры в секундах")
	unitPtr := flag.String("unit", "c", "Единица измерения: c, f или k")
	fahrenheitPtr := flag.Bool("fahrenheit", false, "Показывать температуру в Фаренгейтах (синоним -unit f)")
	logfilePtr := flag.String("logfile", "logs/log.csv", "Путь к CSV-файлу журнала замеров")
	filesizePtr := flag.Int64("filesize", 2097152, "Максимальный размер файла журнала в байтах")
	filesPtr := flag.Int("files", 5, "Максимальное количество файлов журнала")
	addrPtr := flag.String("addr", ":8080", "Адрес HTTP-сервера")

	flag.Parse()

	fmt.Println("Запуск монитора температуры CPU...")

	// Собираем конфигурацию из флагов
	cfg := config.GetConfig()
	cfg.SampleInterval = time.Duration(*intervalPtr) * time.Second
	cfg.Unit = *unitPtr
	if *fahrenheitPtr {
		cfg.Unit = "f"
	}
	cfg.LogFile = *logfilePtr
	cfg.LogMaxSize = *filesizePtr
	cfg.LogMaxFiles = *filesPtr
	cfg.HTTPAddr = *addrPtr

	if err := sensors.CheckUnit(cfg.Unit); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Инициализация CSV-журнала замеров
	csvLogger, err := csvlog.NewCsvLogger(cfg.LogFile, cfg.LogMaxSize, cfg.LogMaxFiles)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть CSV-журнал: %v", err)
	}
	defer csvLogger.Close()

	// Инициализация базы данных
	db, err := database.InitDB(cfg.DBConfig)
	if err != nil {
		log.Fatalf("❌ Не удалось инициализировать базу данных: %v", err)
	}
	defer db.Close()

	// Создаем менеджер WebSocket для живой ленты замеров
	wsManager := websocket.NewManager()

	// Запускаем менеджер WebSocket
	go wsManager.Run()

	// Выбираем источник температуры и создаем Runner мониторинга
	reader := sensors.NewReader()
	readingRepo := database.NewMySQLReadingRepository(db)
	runner := monitor.NewRunner(cfg, reader, csvLogger, readingRepo, wsManager)

	// Создаем маршрутизатор и регистрируем обработчики
	router := mux.NewRouter()
	routes.SetupRoutes(router, db, wsManager, runner, csvLogger, cfg)

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Контекст мониторинга отменяется при получении сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stop
		log.Println("⚠️ Получен сигнал завершения, останавливаем мониторинг...")
		cancel()
	}()

	// Запускаем мониторинг (блокируется до отмены контекста)
	if err := runner.Start(ctx); err != nil {
		log.Printf("❌ Ошибка мониторинга: %v", err)
	}

	// Останавливаем HTTP-сервер
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки сервера: %v", err)
	}

	// Закрываем соединение с базой данных
	if err := db.Close(); err != nil {
		log.Printf("❌ Ошибка закрытия соединения с БД: %v", err)
	} else {
		log.Println("✅ Соединение с БД закрыто")
	}

	// Выводим итоговую статистику журнала
	if entries, err := csvLogger.GetLogs(); err == nil {
		log.Printf("📊 Всего записей в журнале: %d", len(entries))
	}

	fmt.Println("\nDone.")
	log.Println("👋 Монитор температуры остановлен")
}
