package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-records/internal/api"
	"github.com/hackgods/clinic-records/internal/client"
	"github.com/hackgods/clinic-records/internal/clinic"
	"github.com/hackgods/clinic-records/internal/logging"
)

type SimConfig struct {
	APIBaseURL    string
	Duration      time.Duration
	Workers       int
	BookingRatio  float64
	CancelRatio   float64
	CompleteRatio float64
	ReadRatio     float64
	Weeks         int
}

// booking is a slot a worker may try to take: a doctor on a day they
// attend, the specialty they practice that day, and a time.
type booking struct {
	license   string
	specialty string
	date      string
	time      string
}

type DataPool struct {
	Patients []string
	Bookings []booking

	mu           sync.RWMutex
	appointments []uuid.UUID
}

func (dp *DataPool) AddAppointment(id uuid.UUID) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.appointments = append(dp.appointments, id)
}

func (dp *DataPool) GetRandomAppointment(rng *rand.Rand) (uuid.UUID, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.appointments) == 0 {
		return uuid.Nil, false
	}
	return dp.appointments[rng.Intn(len(dp.appointments))], true
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, err error) {
	atomic.AddInt64(&om.Total, 1)

	var apiErr *client.APIError
	switch {
	case err == nil:
		atomic.AddInt64(&om.Success, 1)
	case errors.As(err, &apiErr) && apiErr.Conflict():
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]
	return avg, min, max, p50, p95
}

func percentileIndex(n, p int) int {
	idx := n * p / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

type Metrics struct {
	Booking  OperationMetrics
	Cancel   OperationMetrics
	Complete OperationMetrics
	ReadByID OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	api     *client.Client
	log     *zap.Logger
	metrics Metrics
}

func main() {
	log, err := logging.New(getEnv("APP_ENV", "dev"), getEnv("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	log.Info("simulator starting",
		zap.Duration("duration", cfg.Duration),
		zap.Int("workers", cfg.Workers),
		zap.Float64("booking", cfg.BookingRatio),
		zap.Float64("cancel", cfg.CancelRatio),
		zap.Float64("complete", cfg.CompleteRatio),
		zap.Float64("read", cfg.ReadRatio))

	apiClient := client.New(cfg.APIBaseURL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dataPool, err := loadDataPool(ctx, apiClient, cfg, time.Now())
	if err != nil {
		log.Fatal("load data pool", zap.Error(err))
	}

	log.Info("data loaded",
		zap.Int("patients", len(dataPool.Patients)),
		zap.Int("bookable_slots", len(dataPool.Bookings)))

	sim := &Simulator{
		config: cfg,
		pool:   dataPool,
		api:    apiClient,
		log:    log,
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:    getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:      getDuration("SIM_DURATION", 30*time.Second),
		Workers:       getInt("SIM_WORKERS", 10),
		BookingRatio:  getFloat("SIM_BOOKING_RATIO", 0.5),
		CancelRatio:   getFloat("SIM_CANCEL_RATIO", 0.1),
		CompleteRatio: getFloat("SIM_COMPLETE_RATIO", 0.1),
		ReadRatio:     getFloat("SIM_READ_RATIO", 0.3),
		Weeks:         getInt("SIM_WEEKS", 2),
	}

	total := cfg.BookingRatio + cfg.CancelRatio + cfg.CompleteRatio + cfg.ReadRatio
	if total > 0 {
		cfg.BookingRatio /= total
		cfg.CancelRatio /= total
		cfg.CompleteRatio /= total
		cfg.ReadRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.Weeks <= 0 {
		return fmt.Errorf("SIM_WEEKS must be > 0")
	}
	return nil
}

// loadDataPool reads patients and doctors from the API and expands each
// doctor's weekly schedule into half-hour slots over the next weeks.
func loadDataPool(ctx context.Context, c *client.Client, cfg SimConfig, from time.Time) (*DataPool, error) {
	patients, err := c.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	doctors, err := c.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}

	dataPool := &DataPool{}
	for _, p := range patients {
		dataPool.Patients = append(dataPool.Patients, p.ID)
	}
	dataPool.Bookings = expandSchedules(doctors, from, cfg.Weeks)

	if len(dataPool.Patients) == 0 {
		return nil, fmt.Errorf("no patients loaded")
	}
	if len(dataPool.Bookings) == 0 {
		return nil, fmt.Errorf("no doctor has a schedule")
	}
	return dataPool, nil
}

func expandSchedules(doctors []api.DoctorResponse, from time.Time, weeks int) []booking {
	var out []booking
	for offset := 1; offset <= weeks*7; offset++ {
		day := from.AddDate(0, 0, offset)
		weekday := clinic.WeekdayOf(day)
		for _, d := range doctors {
			for _, entry := range d.Schedule {
				wd, err := clinic.ParseWeekday(entry.Day)
				if err != nil || wd != weekday {
					continue
				}
				for minute := 8 * 60; minute < 18*60; minute += 30 {
					out = append(out, booking{
						license:   d.LicenseID,
						specialty: entry.Specialty,
						date:      clinic.FormatDate(day),
						time:      fmt.Sprintf("%02d:%02d", minute/60, minute%60),
					})
				}
			}
		}
	}
	return out
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	s.log.Info("starting simulation",
		zap.Duration("duration", s.config.Duration),
		zap.Int("workers", s.config.Workers))

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	s.log.Info("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	cancelAt := s.config.BookingRatio + s.config.CancelRatio
	completeAt := cancelAt + s.config.CompleteRatio

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch r := rng.Float64(); {
		case r < s.config.BookingRatio:
			s.doBooking(ctx, rng)
		case r < cancelAt:
			s.doStatusChange(ctx, rng, s.api.CancelAppointment, &s.metrics.Cancel)
		case r < completeAt:
			s.doStatusChange(ctx, rng, s.api.CompleteAppointment, &s.metrics.Complete)
		default:
			s.doReadByID(ctx, rng)
		}
	}
}

func (s *Simulator) doBooking(ctx context.Context, rng *rand.Rand) {
	b := s.pool.Bookings[rng.Intn(len(s.pool.Bookings))]
	patientID := s.pool.Patients[rng.Intn(len(s.pool.Patients))]

	start := time.Now()
	appt, err := s.api.ScheduleAppointment(ctx, api.ScheduleAppointmentRequest{
		PatientID:     patientID,
		DoctorLicense: b.license,
		Date:          b.date,
		Time:          b.time,
		Specialty:     b.specialty,
	})
	if ctx.Err() != nil {
		return
	}
	s.metrics.Booking.Record(time.Since(start), err)

	if err == nil {
		s.pool.AddAppointment(appt.ID)
	}
}

func (s *Simulator) doStatusChange(ctx context.Context, rng *rand.Rand, change func(context.Context, uuid.UUID) (api.AppointmentResponse, error), om *OperationMetrics) {
	id, ok := s.pool.GetRandomAppointment(rng)
	if !ok {
		return
	}

	start := time.Now()
	_, err := change(ctx, id)
	if ctx.Err() != nil {
		return
	}
	om.Record(time.Since(start), err)
}

func (s *Simulator) doReadByID(ctx context.Context, rng *rand.Rand) {
	id, ok := s.pool.GetRandomAppointment(rng)
	if !ok {
		return
	}

	start := time.Now()
	_, err := s.api.GetAppointment(ctx, id)
	if ctx.Err() != nil {
		return
	}
	s.metrics.ReadByID.Record(time.Since(start), err)
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Booking", &s.metrics.Booking)
	printOperationReport("Cancel", &s.metrics.Cancel)
	printOperationReport("Complete", &s.metrics.Complete)
	printOperationReport("Read by ID", &s.metrics.ReadByID)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	failed := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if conflict > 0 {
		fmt.Printf("  Conflicts: %d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	}
	if failed > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
