package config

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DBConnections содержит подключения к базам данных
type DBConnections struct {
	SourceDB    *sql.DB
	AnalyticsDB *sql.DB
}

// connect открывает и проверяет одно подключение
func connect(cfg DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// ConnectDatabases устанавливает подключения к БД замеров и аналитической БД
func ConnectDatabases(config AnalyticsConfig) (*DBConnections, error) {
	var connections DBConnections
	var err error

	// Подключение к базе данных замеров (исходная)
	connections.SourceDB, err = connect(config.SourceConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных замеров: %w", err)
	}

	// Подключение к аналитической базе данных (целевая)
	connections.AnalyticsDB, err = connect(config.AnalyticsConfig)
	if err != nil {
		connections.SourceDB.Close()
		return nil, fmt.Errorf("ошибка подключения к аналитической базе данных: %w", err)
	}

	log.Println("Успешное подключение к базам данных замеров и аналитики")
	return &connections, nil
}

// CloseDatabases закрывает подключения к базам данных
func CloseDatabases(connections *DBConnections) {
	if connections.SourceDB != nil {
		if err := connections.SourceDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с базой данных замеров: %v", err)
		}
	}

	if connections.AnalyticsDB != nil {
		if err := connections.AnalyticsDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с аналитической базой данных: %v", err)
		}
	}

	log.Println("Соединения с базами данных закрыты")
}
