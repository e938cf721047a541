// monitor/runner.go
package monitor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/atomic"

	"github.com/LilVoxy/coursework_tempmon/config"
	"github.com/LilVoxy/coursework_tempmon/csvlog"
	"github.com/LilVoxy/coursework_tempmon/database"
	"github.com/LilVoxy/coursework_tempmon/sensors"
	"github.com/LilVoxy/coursework_tempmon/websocket"
)

// Runner выполняет периодические замеры температуры CPU
type Runner struct {
	config    config.MonitorConfig
	reader    sensors.TemperatureReader
	history   *sensors.TemperatureHistory
	csvLogger *csvlog.CsvLogger
	readings  database.ReadingRepository
	wsManager *websocket.Manager

	monitoring *atomic.Bool
	samples    *atomic.Int64
	lastTemp   *atomic.Float64
	coreCount  *atomic.Int64
	startedAt  time.Time

	// mu защищает интервал замеров и задание планировщика
	mu        sync.Mutex
	scheduler *gocron.Scheduler
	job       *gocron.Job
}

// Status представляет текущее состояние мониторинга
type Status struct {
	Monitoring  bool      `json:"monitoring"`
	Interval    string    `json:"interval"`
	Unit        string    `json:"unit"`
	StartedAt   time.Time `json:"startedAt"`
	Samples     int64     `json:"samples"`
	LastTemp    float64   `json:"lastTemp"`
	AverageTemp float64   `json:"averageTemp"`
	Cores       int64     `json:"cores"`
	Subscribers int       `json:"subscribers"`
}

// NewRunner создает новый Runner мониторинга температуры
func NewRunner(
	cfg config.MonitorConfig,
	reader sensors.TemperatureReader,
	csvLogger *csvlog.CsvLogger,
	readings database.ReadingRepository,
	wsManager *websocket.Manager,
) *Runner {
	return &Runner{
		config:     cfg,
		reader:     reader,
		history:    sensors.NewTemperatureHistory(cfg.HistorySize),
		csvLogger:  csvLogger,
		readings:   readings,
		wsManager:  wsManager,
		monitoring: atomic.NewBool(false),
		samples:    atomic.NewInt64(0),
		lastTemp:   atomic.NewFloat64(0),
		coreCount:  atomic.NewInt64(0),
	}
}

// sampleJob выполняется планировщиком на каждом тике
func (r *Runner) sampleJob() {
	if !r.monitoring.Load() {
		return
	}
	if err := r.Sample(); err != nil {
		// Одиночная ошибка замера не останавливает мониторинг
		log.Printf("❌ Ошибка при замере температуры: %v", err)
		r.csvLogger.Error(err.Error())
	}
}

// Start запускает планировщик замеров и блокируется до отмены контекста
func (r *Runner) Start(ctx context.Context) error {
	r.startedAt = time.Now()

	r.mu.Lock()
	r.scheduler = gocron.NewScheduler(time.UTC)

	log.Printf("✅ Запуск мониторинга температуры с интервалом %v", r.config.SampleInterval)

	job, err := r.scheduler.Every(r.config.SampleInterval).Do(r.sampleJob)
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("ошибка при настройке планировщика замеров: %w", err)
	}
	r.job = job
	r.mu.Unlock()

	r.monitoring.Store(true)
	r.csvLogger.Event("Monitoring CPU temperature.")
	r.wsManager.BroadcastEvent("monitoring started")

	// Запускаем планировщик
	r.scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	r.scheduler.Stop()
	r.monitoring.Store(false)
	r.csvLogger.Event("Stopped monitoring CPU temperature.")
	log.Println("Мониторинг температуры остановлен")
	return nil
}

// Sample выполняет один замер: читает температуру, пишет в журнал,
// сохраняет в БД и рассылает подписчикам
func (r *Runner) Sample() error {
	now := time.Now()

	// Читаем общую температуру
	celsius, err := r.reader.GetCurrentTemperature()
	if err != nil {
		return fmt.Errorf("ошибка чтения температуры: %w", err)
	}

	// Читаем температуры по ядрам (некритично при ошибке)
	cores, err := r.reader.GetCoreTemperatures()
	if err != nil {
		log.Printf("⚠️ Не удалось получить температуры по ядрам: %v", err)
		cores = nil
	}

	r.history.Push(celsius)
	r.lastTemp.Store(celsius)
	r.coreCount.Store(int64(len(cores)))
	r.samples.Inc()

	// В журнал пишем температуру в настроенной единице измерения
	displayTemp, err := sensors.Convert(celsius, r.config.Unit)
	if err != nil {
		return err
	}
	if err := r.csvLogger.CPUTemperature(displayTemp); err != nil {
		log.Printf("❌ Ошибка записи в CSV-журнал: %v", err)
	}

	// В БД сохраняем замеры в Цельсиях: общий как ядро 0, затем по ядрам
	if _, err := r.readings.SaveReading(now, 0, "cpu", celsius); err != nil {
		log.Printf("❌ Ошибка сохранения замера в БД: %v", err)
	}

	if len(cores) > 0 {
		coreReadings := make([]database.Reading, len(cores))
		for i, core := range cores {
			coreReadings[i] = database.Reading{
				Core:        core.Core + 1,
				Label:       core.Label,
				Temperature: core.Celsius,
			}
		}
		if err := r.readings.SaveCoreReadings(now, coreReadings); err != nil {
			log.Printf("❌ Ошибка сохранения замеров ядер в БД: %v", err)
		}
	}

	// Рассылаем замер подписчикам
	r.wsManager.Broadcast <- websocket.Sample{
		TakenAt: now,
		Celsius: celsius,
		Average: r.history.Average(),
		Cores:   cores,
	}

	return nil
}

// Pause приостанавливает замеры без остановки планировщика
func (r *Runner) Pause() {
	if r.monitoring.CAS(true, false) {
		r.csvLogger.Event("Monitoring paused.")
		r.wsManager.BroadcastEvent("monitoring paused")
		log.Println("⚠️ Мониторинг приостановлен")
	}
}

// Resume возобновляет приостановленные замеры
func (r *Runner) Resume() {
	if r.monitoring.CAS(false, true) {
		r.csvLogger.Event("Monitoring resumed.")
		r.wsManager.BroadcastEvent("monitoring resumed")
		log.Println("✅ Мониторинг возобновлен")
	}
}

// SetInterval меняет интервал замеров на лету.
// До запуска планировщика меняется только конфигурация.
func (r *Runner) SetInterval(interval time.Duration) error {
	if interval < time.Second {
		return fmt.Errorf("интервал замеров должен быть не меньше секунды, получено: %v", interval)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.config.SampleInterval = interval

	if r.scheduler != nil && r.job != nil {
		r.scheduler.RemoveByReference(r.job)
		job, err := r.scheduler.Every(interval).Do(r.sampleJob)
		if err != nil {
			return fmt.Errorf("ошибка при перенастройке планировщика: %w", err)
		}
		r.job = job
	}

	r.csvLogger.Event(fmt.Sprintf("Sampling interval changed to %v.", interval))
	log.Printf("✅ Интервал замеров изменен на %v", interval)
	return nil
}

// Monitoring сообщает, выполняются ли замеры в данный момент
func (r *Runner) Monitoring() bool {
	return r.monitoring.Load()
}

// Status возвращает текущее состояние мониторинга.
// Температуры отдаются в настроенной единице измерения.
func (r *Runner) Status() Status {
	lastTemp, _ := sensors.Convert(r.lastTemp.Load(), r.config.Unit)
	avgTemp, _ := sensors.Convert(r.history.Average(), r.config.Unit)

	r.mu.Lock()
	interval := r.config.SampleInterval
	r.mu.Unlock()

	return Status{
		Monitoring:  r.monitoring.Load(),
		Interval:    interval.String(),
		Unit:        r.config.Unit,
		StartedAt:   r.startedAt,
		Samples:     r.samples.Load(),
		LastTemp:    lastTemp,
		AverageTemp: avgTemp,
		Cores:       r.coreCount.Load(),
		Subscribers: r.wsManager.ClientCount(),
	}
}
