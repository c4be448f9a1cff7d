package database

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/ademilsodream/tcponto-app-sub002/models"
)

// SeedDemoData populates the database with fake employees and a few
// weeks of punch history. Development tooling only, invoked from the
// seed subcommand. Punch inserts fan out per employee.
func SeedDemoData(employees, days int, log zerolog.Logger) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	shift := models.WorkShift{
		Name:                "Comercial",
		StartTime:           "08:00",
		LunchStartTime:      "12:00",
		LunchReturnTime:     "13:00",
		EndTime:             "17:00",
		DailyThresholdHours: 8,
		ToleranceMinutes:    10,
	}
	if err := DB.Where(models.WorkShift{Name: shift.Name}).FirstOrCreate(&shift).Error; err != nil {
		return fmt.Errorf("seeding work shift: %w", err)
	}

	seeded := make([]models.Employee, 0, employees)
	for i := 0; i < employees; i++ {
		emp := models.Employee{
			Name:               gofakeit.Name(),
			Email:              fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			PasswordHash:       string(hashed),
			Role:               models.RoleEmployee,
			HourlyRate:         decimal.NewFromInt(int64(gofakeit.Number(15, 60))),
			OvertimeRate:       decimal.NewFromInt(int64(gofakeit.Number(20, 90))),
			ShiftID:            &shift.ID,
			Active:             true,
			MustChangePassword: false,
		}
		if err := DB.Create(&emp).Error; err != nil {
			return fmt.Errorf("seeding employee: %w", err)
		}
		seeded = append(seeded, emp)
	}

	wg := errgroup.Group{}
	wg.SetLimit(8)
	for _, emp := range seeded {
		emp := emp
		wg.Go(func() error {
			return seedPunchHistory(emp, days)
		})
	}
	if err := wg.Wait(); err != nil {
		return fmt.Errorf("seeding punch history: %w", err)
	}

	log.Info().Int("employees", employees).Int("days", days).Msg("demo data seeded")
	return nil
}

func seedPunchHistory(emp models.Employee, days int) error {
	today := time.Now()
	for d := 0; d < days; d++ {
		day := today.AddDate(0, 0, -d)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		clockIn := punchNear(8, 0)
		lunchStart := punchNear(12, 0)
		lunchEnd := punchNear(13, 0)
		clockOut := punchNear(17, gofakeit.Number(0, 90))

		record := models.TimeRecord{
			EmployeeID: emp.ID,
			Date:       time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			ClockIn:    &clockIn,
			LunchStart: &lunchStart,
			LunchEnd:   &lunchEnd,
			ClockOut:   &clockOut,
			Status:     models.RecordComplete,
		}
		if err := DB.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// punchNear returns an "HH:MM" value jittered a few minutes around the
// given hour, plus an optional extra offset.
func punchNear(hour, extraMinutes int) string {
	minutes := hour*60 + extraMinutes + gofakeit.Number(-5, 10)
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
