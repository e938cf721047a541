// sensors/reader.go
package sensors

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Путь к файлу температуры по умолчанию (миллиградусы Цельсия)
const DefaultThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

// CoreTemperature представляет замер температуры одного ядра
type CoreTemperature struct {
	Core    int     `json:"core"`
	Label   string  `json:"label"`
	Celsius float64 `json:"celsius"`
}

// TemperatureReader определяет интерфейс источника температуры CPU.
// Разные платформы предоставляют свои реализации.
type TemperatureReader interface {
	// GetCurrentTemperature возвращает общую температуру CPU в Цельсиях
	GetCurrentTemperature() (float64, error)

	// GetCoreTemperatures возвращает температуры по ядрам в Цельсиях
	GetCoreTemperatures() ([]CoreTemperature, error)
}

// Префиксы сенсоров, относящихся к CPU
var cpuSensorPrefixes = []string{
	"coretemp",
	"k10temp",
	"cpu_thermal",
	"cpu-thermal",
	"acpitz",
}

// SensorsReader читает температуру через аппаратные сенсоры (gopsutil)
type SensorsReader struct{}

// NewSensorsReader создает новый SensorsReader
func NewSensorsReader() *SensorsReader {
	return &SensorsReader{}
}

func isCPUSensor(key string) bool {
	k := strings.ToLower(key)
	for _, prefix := range cpuSensorPrefixes {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// GetCurrentTemperature возвращает общую температуру CPU.
// Берется первый CPU-сенсор в списке (coretemp[0], то есть Package id)
func (r *SensorsReader) GetCurrentTemperature() (float64, error) {
	stats, err := host.SensorsTemperatures()
	if err != nil {
		return 0, fmt.Errorf("ошибка при чтении аппаратных сенсоров: %w", err)
	}

	for _, stat := range stats {
		if isCPUSensor(stat.SensorKey) {
			return stat.Temperature, nil
		}
	}

	return 0, fmt.Errorf("не найден ни один CPU-сенсор среди %d сенсоров", len(stats))
}

// GetCoreTemperatures возвращает температуры всех CPU-сенсоров по порядку
func (r *SensorsReader) GetCoreTemperatures() ([]CoreTemperature, error) {
	stats, err := host.SensorsTemperatures()
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении аппаратных сенсоров: %w", err)
	}

	var cores []CoreTemperature
	for _, stat := range stats {
		if !isCPUSensor(stat.SensorKey) {
			continue
		}
		cores = append(cores, CoreTemperature{
			Core:    len(cores),
			Label:   stat.SensorKey,
			Celsius: stat.Temperature,
		})
	}

	if len(cores) == 0 {
		return nil, fmt.Errorf("не найден ни один CPU-сенсор среди %d сенсоров", len(stats))
	}

	return cores, nil
}

// SysfsReader читает температуру напрямую из файла thermal_zone.
// Используется как запасной вариант, когда сенсоры gopsutil недоступны.
type SysfsReader struct {
	Path string
}

// NewSysfsReader создает SysfsReader для указанного файла.
// Пустой путь заменяется путем по умолчанию.
func NewSysfsReader(path string) *SysfsReader {
	if path == "" {
		path = DefaultThermalZonePath
	}
	return &SysfsReader{Path: path}
}

// GetCurrentTemperature читает температуру из файла thermal_zone.
// Файл содержит значение в миллиградусах Цельсия.
func (r *SysfsReader) GetCurrentTemperature() (float64, error) {
	raw, err := os.ReadFile(r.Path)
	if err != nil {
		return 0, fmt.Errorf("ошибка при чтении %s: %w", r.Path, err)
	}

	milli, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("неверный формат температуры в %s: %w", r.Path, err)
	}

	return milli / 1000, nil
}

// GetCoreTemperatures возвращает единственный замер thermal_zone как ядро 0
func (r *SysfsReader) GetCoreTemperatures() ([]CoreTemperature, error) {
	temp, err := r.GetCurrentTemperature()
	if err != nil {
		return nil, err
	}

	return []CoreTemperature{{
		Core:    0,
		Label:   "thermal_zone0",
		Celsius: temp,
	}}, nil
}

// NewReader выбирает доступный источник температуры: сначала аппаратные
// сенсоры, затем thermal_zone
func NewReader() TemperatureReader {
	sensorsReader := NewSensorsReader()
	if _, err := sensorsReader.GetCurrentTemperature(); err == nil {
		log.Println("✅ Источник температуры: аппаратные сенсоры")
		return sensorsReader
	}

	log.Printf("⚠️ Аппаратные сенсоры недоступны, используем %s", DefaultThermalZonePath)
	return NewSysfsReader("")
}
