package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-records/internal/api"
	"github.com/hackgods/clinic-records/internal/client"
	"github.com/hackgods/clinic-records/internal/clinic"
	"github.com/hackgods/clinic-records/internal/logging"
)

var specialties = []string{
	"Cardiología",
	"Clínica médica",
	"Dermatología",
	"Endocrinología",
	"Neurología",
	"Oftalmología",
	"Pediatría",
	"Psiquiatría",
	"Traumatología",
}

func main() {
	log, err := logging.New(getEnv("APP_ENV", "dev"), getEnv("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	baseURL := getEnv("SEED_API_BASE_URL", "http://localhost:8080")
	doctors := getInt("SEED_DOCTORS", 20)
	patients := getInt("SEED_PATIENTS", 500)

	log.Info("seed starting",
		zap.String("api", baseURL),
		zap.Int("doctors", doctors),
		zap.Int("patients", patients))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s := &seeder{
		api:   client.New(baseURL, nil),
		faker: gofakeit.New(0),
		log:   log,
	}

	if err := s.seedDoctors(ctx, doctors); err != nil {
		log.Fatal("seed doctors", zap.Error(err))
	}
	if err := s.seedPatients(ctx, patients); err != nil {
		log.Fatal("seed patients", zap.Error(err))
	}

	log.Info("seed complete")
}

type seeder struct {
	api   *client.Client
	faker *gofakeit.Faker
	log   *zap.Logger
}

// seedDoctors registers doctors with one or two specialties each. The
// second specialty only gets days the first one left free, so nothing is
// overwritten.
func (s *seeder) seedDoctors(ctx context.Context, count int) error {
	for i := 0; i < count; i++ {
		license := s.faker.Numerify("MP-#####")
		_, err := s.api.RegisterDoctor(ctx, api.RegisterDoctorRequest{
			FullName:  "Dr. " + s.faker.Name(),
			LicenseID: license,
		})
		if isDuplicate(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("register doctor %s: %w", license, err)
		}

		days := s.shuffledDays()
		split := s.faker.Number(1, len(days)-1)
		groups := [][]string{days[:split]}
		if s.faker.Bool() {
			groups = append(groups, days[split:])
		}

		names := s.pickSpecialties(len(groups))
		for g, group := range groups {
			_, err := s.api.AddSpecialty(ctx, license, api.AddSpecialtyRequest{Name: names[g], Days: group})
			if err != nil {
				return fmt.Errorf("add specialty to %s: %w", license, err)
			}
		}
	}

	s.log.Info("doctors seeded", zap.Int("count", count))
	return nil
}

func (s *seeder) seedPatients(ctx context.Context, count int) error {
	from := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Now().AddDate(0, 0, -1)

	for i := 0; i < count; i++ {
		_, err := s.api.RegisterPatient(ctx, api.RegisterPatientRequest{
			FullName:  s.faker.Name(),
			ID:        s.faker.Numerify("########"),
			BirthDate: clinic.FormatDate(s.faker.DateRange(from, to)),
		})
		if isDuplicate(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("register patient: %w", err)
		}

		if (i+1)%100 == 0 {
			s.log.Info("patients seeded", zap.Int("done", i+1), zap.Int("total", count))
		}
	}

	s.log.Info("patients seeded", zap.Int("count", count))
	return nil
}

func (s *seeder) shuffledDays() []string {
	days := make([]string, len(clinic.AllWeekdays))
	for i, d := range clinic.AllWeekdays {
		days[i] = d.String()
	}
	s.faker.ShuffleStrings(days)
	return days
}

func (s *seeder) pickSpecialties(n int) []string {
	pool := append([]string(nil), specialties...)
	s.faker.ShuffleStrings(pool)
	return pool[:n]
}

// Random IDs occasionally collide with ones already registered.
func isDuplicate(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.Code == "invalid_data"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
