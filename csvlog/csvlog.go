// csvlog/csvlog.go
package csvlog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Уровни записей журнала замеров
const (
	LevelCPUTemperature = "CPUTemperature"
	LevelEvent          = "Event"
	LevelError          = "ERROR"
)

// Заголовок CSV-журнала
var header = []string{"date", "level", "time", "temp"}

// Расширение сжатых ротированных файлов
const rotatedExt = ".sz"

// Entry представляет одну запись CSV-журнала
type Entry struct {
	Date    string `json:"date"`
	Level   string `json:"level"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// TemperaturePoint представляет точку замера температуры из журнала
type TemperaturePoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
}

// CsvLogger пишет замеры температуры и события в CSV-файл
// с ротацией по размеру и сжатием ротированных файлов
type CsvLogger struct {
	mu       sync.Mutex
	path     string
	maxSize  int64
	maxFiles int
	file     *os.File
	size     int64
}

// NewCsvLogger создает журнал по указанному пути.
// Каталог журнала создается при необходимости, в новый файл пишется заголовок.
func NewCsvLogger(path string, maxSize int64, maxFiles int) (*CsvLogger, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("максимальный размер файла должен быть положительным, получено: %d", maxSize)
	}
	if maxFiles < 1 {
		return nil, fmt.Errorf("количество файлов должно быть не меньше 1, получено: %d", maxFiles)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("ошибка при создании каталога журнала: %w", err)
	}

	logger := &CsvLogger{
		path:     path,
		maxSize:  maxSize,
		maxFiles: maxFiles,
	}

	if err := logger.openFile(); err != nil {
		return nil, err
	}

	return logger, nil
}

// openFile открывает текущий файл журнала, дописывая заголовок в пустой файл
func (l *CsvLogger) openFile() error {
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("ошибка при открытии файла журнала: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("ошибка при получении размера файла журнала: %w", err)
	}

	l.file = file
	l.size = info.Size()

	if l.size == 0 {
		return l.writeRow(header)
	}
	return nil
}

// writeRow пишет одну CSV-строку и обновляет размер файла
func (l *CsvLogger) writeRow(row []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("ошибка при формировании CSV-строки: %w", err)
	}
	w.Flush()

	n, err := l.file.Write(buf.Bytes())
	l.size += int64(n)
	if err != nil {
		return fmt.Errorf("ошибка при записи в файл журнала: %w", err)
	}
	return nil
}

// log пишет запись с указанным уровнем, ротируя файл при превышении размера
func (l *CsvLogger) log(level, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size >= l.maxSize {
		if err := l.rotate(); err != nil {
			return err
		}
	}

	now := time.Now()
	row := []string{
		now.Format("2006-01-02"),
		level,
		now.Format("15:04:05"),
		message,
	}
	return l.writeRow(row)
}

// CPUTemperature пишет замер температуры
func (l *CsvLogger) CPUTemperature(temp float64) error {
	return l.log(LevelCPUTemperature, strconv.FormatFloat(temp, 'f', 2, 64))
}

// Event пишет событие мониторинга
func (l *CsvLogger) Event(message string) error {
	return l.log(LevelEvent, message)
}

// Error пишет сообщение об ошибке
func (l *CsvLogger) Error(message string) error {
	return l.log(LevelError, message)
}

// rotatedPath возвращает путь ротированного файла с номером n
func (l *CsvLogger) rotatedPath(n int) string {
	return fmt.Sprintf("%s.%d%s", l.path, n, rotatedExt)
}

// rotate сжимает текущий файл в path.1.sz, сдвигая более старые файлы.
// Хранится maxFiles сжатых файлов плюс текущий, самый старый удаляется.
func (l *CsvLogger) rotate() error {
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("ошибка при закрытии файла журнала: %w", err)
	}

	// Удаляем самый старый файл и сдвигаем остальные
	os.Remove(l.rotatedPath(l.maxFiles))
	for i := l.maxFiles - 1; i >= 1; i-- {
		src := l.rotatedPath(i)
		if _, err := os.Stat(src); err == nil {
			if err := os.Rename(src, l.rotatedPath(i+1)); err != nil {
				return fmt.Errorf("ошибка при сдвиге ротированного файла %s: %w", src, err)
			}
		}
	}

	// Сжимаем текущий файл
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("ошибка при чтении файла журнала для ротации: %w", err)
	}
	if err := os.WriteFile(l.rotatedPath(1), CompressLog(data), 0666); err != nil {
		return fmt.Errorf("ошибка при записи ротированного файла: %w", err)
	}
	if err := os.Remove(l.path); err != nil {
		return fmt.Errorf("ошибка при удалении старого файла журнала: %w", err)
	}

	return l.openFile()
}

// Close закрывает файл журнала
func (l *CsvLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// parseEntries разбирает CSV-содержимое в записи, пропуская заголовок
func parseEntries(data []byte) ([]Entry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе CSV-журнала: %w", err)
	}

	var entries []Entry
	for _, rec := range records {
		if len(rec) < 4 || rec[0] == "date" {
			continue
		}
		entries = append(entries, Entry{
			Date:    rec[0],
			Level:   rec[1],
			Time:    rec[2],
			Message: rec[3],
		})
	}
	return entries, nil
}

// GetLogs возвращает все записи журнала от старых к новым,
// включая сжатые ротированные файлы
func (l *CsvLogger) GetLogs() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []Entry

	// Ротированные файлы читаем от самого старого к самому новому
	for i := l.maxFiles; i >= 1; i-- {
		compressed, err := os.ReadFile(l.rotatedPath(i))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("ошибка при чтении ротированного файла: %w", err)
		}

		data, err := DecompressLog(compressed)
		if err != nil {
			return nil, fmt.Errorf("ошибка при распаковке ротированного файла: %w", err)
		}

		parsed, err := parseEntries(data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, parsed...)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении файла журнала: %w", err)
	}

	parsed, err := parseEntries(data)
	if err != nil {
		return nil, err
	}
	entries = append(entries, parsed...)

	return entries, nil
}

// TemperaturePoints возвращает точки замеров температуры из журнала
func (l *CsvLogger) TemperaturePoints() ([]TemperaturePoint, error) {
	entries, err := l.GetLogs()
	if err != nil {
		return nil, err
	}

	var points []TemperaturePoint
	for _, entry := range entries {
		if entry.Level != LevelCPUTemperature {
			continue
		}

		ts, err := time.ParseInLocation("2006-01-02 15:04:05", entry.Date+" "+entry.Time, time.Local)
		if err != nil {
			continue
		}

		temp, err := strconv.ParseFloat(entry.Message, 64)
		if err != nil {
			continue
		}

		points = append(points, TemperaturePoint{
			Timestamp:   ts,
			Temperature: temp,
		})
	}
	return points, nil
}
