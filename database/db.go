// database/db.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/LilVoxy/coursework_tempmon/config"
)

// InitDB устанавливает соединение с базой данных замеров
func InitDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	// Формируем строку подключения
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	// Устанавливаем соединение с базой данных
	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		log.Printf("❌ Ошибка подключения к БД: %v", err)
		return nil, err
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Printf("❌ Ошибка проверки соединения с БД: %v", err)
		return nil, err
	}

	// Устанавливаем параметры пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Успешное подключение к базе данных")

	// Проверяем существование необходимых таблиц
	if err := createTablesIfNotExist(db); err != nil {
		log.Printf("❌ Ошибка создания таблиц: %v", err)
		return nil, err
	}

	return db, nil
}

// Создание необходимых таблиц, если они не существуют
func createTablesIfNotExist(db *sql.DB) error {
	// SQL для создания таблицы замеров температуры
	createReadingsTable := `
	CREATE TABLE IF NOT EXISTS cpu_readings (
		id INT AUTO_INCREMENT PRIMARY KEY,
		taken_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		core INT NOT NULL DEFAULT 0,
		label VARCHAR(64) NOT NULL DEFAULT '',
		temperature DOUBLE NOT NULL,
		INDEX idx_taken_at (taken_at),
		INDEX idx_core (core, taken_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// Выполняем создание таблиц
	if _, err := db.Exec(createReadingsTable); err != nil {
		return fmt.Errorf("ошибка создания таблицы cpu_readings: %v", err)
	}

	log.Println("✅ Структура базы данных проверена и актуализирована")
	return nil
}
