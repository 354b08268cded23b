package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/medicarehq/hospital-booking/internal/booking"
	"github.com/medicarehq/hospital-booking/internal/config"
	"github.com/medicarehq/hospital-booking/internal/db"
)

const (
	doctorCount      = 25
	patientCount     = 200
	appointmentCount = 300
)

var departments = []string{
	"Dermatology",
	"Cardiology",
	"General Medicine",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Info().Msg("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("migration error")
	}

	gofakeit.Seed(time.Now().UnixNano())

	repo := booking.NewPgRepository(pool)
	idgen := booking.NewIDGenerator(rand.NewSource(time.Now().UnixNano()), cfg.IDAttempts)
	svc := booking.NewService(repo, idgen, log)

	doctorIDs, err := seedDoctors(context.Background(), svc, doctorCount)
	if err != nil {
		log.Fatal().Err(err).Msg("seed doctors")
	}
	log.Info().Int("count", len(doctorIDs)).Msg("doctors seeded")

	patientIDs, err := seedPatients(context.Background(), svc, patientCount)
	if err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}
	log.Info().Int("count", len(patientIDs)).Msg("patients seeded")

	booked, err := seedAppointments(context.Background(), svc, patientIDs, doctorIDs, appointmentCount)
	if err != nil {
		log.Fatal().Err(err).Msg("seed appointments")
	}
	log.Info().Int("count", booked).Msg("appointments seeded")

	log.Info().Msg("seed complete")
}

func seedDoctors(ctx context.Context, svc *booking.Service, count int) ([]int, error) {
	ids := make([]int, 0, count)

	for i := 0; i < count; i++ {
		dept := departments[gofakeit.Number(0, len(departments)-1)]

		d, err := svc.RegisterDoctor(ctx, booking.DoctorRegistration{
			Name:              "Dr. " + gofakeit.Name(),
			Email:             gofakeit.Email(),
			Phone:             gofakeit.Phone(),
			Department:        dept,
			Specialization:    dept,
			Qualification:     "MBBS, MD",
			ExperienceYears:   gofakeit.Number(1, 35),
			ConsultationFee:   float64(gofakeit.Number(20, 200)),
			Bio:               gofakeit.Sentence(12),
			Address:           gofakeit.Street(),
			City:              gofakeit.City(),
			State:             gofakeit.State(),
			Pincode:           gofakeit.Zip(),
			AvailableDays:     "Mon-Fri",
			AvailableTimeSlot: "09:00-17:00",
		})
		if err != nil {
			// Fake contact data occasionally repeats; skip and move on.
			if errors.Is(err, booking.ErrDuplicatePhone) || errors.Is(err, booking.ErrDuplicateEmail) {
				continue
			}
			return nil, err
		}
		ids = append(ids, d.ID)
	}

	return ids, nil
}

func seedPatients(ctx context.Context, svc *booking.Service, count int) ([]int, error) {
	ids := make([]int, 0, count)

	for i := 0; i < count; i++ {
		dob := gofakeit.DateRange(
			time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC),
		)

		p, err := svc.RegisterPatient(ctx, booking.PatientRegistration{
			Name:        gofakeit.Name(),
			Gender:      gofakeit.Gender(),
			DateOfBirth: dob.Format("2006-01-02"),
			BloodGroup:  bloodGroups[gofakeit.Number(0, len(bloodGroups)-1)],
			Address:     gofakeit.Address().Address,
			Phone:       gofakeit.Phone(),
			Email:       gofakeit.Email(),
		})
		if err != nil {
			if errors.Is(err, booking.ErrDuplicatePhone) || errors.Is(err, booking.ErrDuplicateEmail) {
				continue
			}
			return nil, err
		}
		ids = append(ids, p.ID)
	}

	return ids, nil
}

func seedAppointments(ctx context.Context, svc *booking.Service, patientIDs, doctorIDs []int, count int) (int, error) {
	if len(patientIDs) == 0 || len(doctorIDs) == 0 {
		return 0, errors.New("no patients or doctors to book against")
	}

	booked := 0
	start := time.Now().AddDate(0, 0, 1)

	for i := 0; i < count; i++ {
		date := start.AddDate(0, 0, gofakeit.Number(0, 30))
		hour := gofakeit.Number(9, 16)

		_, err := svc.BookAppointment(ctx, booking.BookingRequest{
			PatientID: patientIDs[gofakeit.Number(0, len(patientIDs)-1)],
			DoctorID:  doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)],
			Date:      date.Format("2006-01-02"),
			Time:      fmt.Sprintf("%02d:00", hour),
			Reason:    gofakeit.Sentence(4),
		})
		if err != nil {
			if errors.Is(err, booking.ErrSlotTaken) {
				continue
			}
			return booked, err
		}
		booked++
	}

	return booked, nil
}
