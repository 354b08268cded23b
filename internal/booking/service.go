package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EventPatientRegistered = "PATIENT_REGISTERED"
	EventDoctorRegistered  = "DOCTOR_REGISTERED"
	EventAppointmentBooked = "APPOINTMENT_BOOKED"
)

const (
	dateLayout    = "2006-01-02"
	timeLayout    = "15:04:05"
	defaultReason = "General Checkup"
)

var ErrInvalidInput = errors.New("invalid input")

type BookingRequest struct {
	PatientID int
	DoctorID  int
	Date      string // ISO-8601 date
	Time      string // HH:MM or HH:MM:SS
	Reason    string
}

type PatientRegistration struct {
	Name           string
	Gender         string
	DateOfBirth    string
	BloodGroup     string
	Address        string
	Phone          string
	Email          string
	MedicalHistory string
}

type DoctorRegistration struct {
	Name              string
	Email             string
	Phone             string
	Department        string
	Specialization    string
	Qualification     string
	ExperienceYears   int
	ConsultationFee   float64
	Bio               string
	Address           string
	City              string
	State             string
	Pincode           string
	AvailableDays     string
	AvailableTimeSlot string
}

type Service struct {
	repo  Repository
	idgen *IDGenerator
	log   zerolog.Logger
}

func NewService(repo Repository, idgen *IDGenerator, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		idgen: idgen,
		log:   log,
	}
}

// RegisterPatient validates the registration, assigns a free 4-digit id and
// inserts the patient. The phone lookup gives a friendly duplicate error up
// front; the unique constraints remain the authority at insert time.
func (s *Service) RegisterPatient(ctx context.Context, in PatientRegistration) (*Patient, error) {
	dob, err := validatePatientRegistration(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindPatientByPhone(ctx, in.Phone); err == nil {
		return nil, ErrDuplicatePhone
	} else if !errors.Is(err, ErrPatientNotFound) {
		return nil, fmt.Errorf("check patient phone: %w", err)
	}

	id, err := s.idgen.Generate(ctx, s.repo.PatientExists)
	if err != nil {
		return nil, fmt.Errorf("assign patient id: %w", err)
	}

	p := &Patient{
		ID:             id,
		Name:           in.Name,
		Gender:         in.Gender,
		DateOfBirth:    dob,
		BloodGroup:     in.BloodGroup,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          optional(in.Email),
		MedicalHistory: optional(in.MedicalHistory),
	}

	if err := s.repo.InsertPatient(ctx, p); err != nil {
		return nil, err
	}

	s.logEvent(ctx, EventPatientRegistered, nil, map[string]any{
		"patient_id": p.ID,
	})

	return p, nil
}

// RegisterDoctor follows the same shape as RegisterPatient with uniqueness
// on both email and phone.
func (s *Service) RegisterDoctor(ctx context.Context, in DoctorRegistration) (*Doctor, error) {
	if err := validateDoctorRegistration(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindDoctorByContact(ctx, in.Email, in.Phone)
	switch {
	case err == nil:
		if strings.EqualFold(existing.Email, in.Email) {
			return nil, ErrDuplicateEmail
		}
		return nil, ErrDuplicatePhone
	case !errors.Is(err, ErrDoctorNotFound):
		return nil, fmt.Errorf("check doctor contact: %w", err)
	}

	id, err := s.idgen.Generate(ctx, s.repo.DoctorExists)
	if err != nil {
		return nil, fmt.Errorf("assign doctor id: %w", err)
	}

	d := &Doctor{
		ID:                id,
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		Department:        in.Department,
		Specialization:    in.Specialization,
		Qualification:     in.Qualification,
		ExperienceYears:   in.ExperienceYears,
		ConsultationFee:   in.ConsultationFee,
		Bio:               in.Bio,
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		Pincode:           in.Pincode,
		AvailableDays:     in.AvailableDays,
		AvailableTimeSlot: in.AvailableTimeSlot,
	}

	if err := s.repo.InsertDoctor(ctx, d); err != nil {
		return nil, err
	}

	s.logEvent(ctx, EventDoctorRegistered, nil, map[string]any{
		"doctor_id": d.ID,
	})

	return d, nil
}

// BookAppointment validates the request, checks the preconditions in order
// (patient, doctor, slot) and commits the appointment. The pre-checks give
// fast, distinct errors; CreateAppointment repeats them inside a single
// transaction so two concurrent bookings of the same slot cannot both
// commit.
func (s *Service) BookAppointment(ctx context.Context, req BookingRequest) (int64, error) {
	date, timeOfDay, err := validateBookingRequest(req)
	if err != nil {
		return 0, err
	}

	if ok, err := s.repo.PatientExists(ctx, req.PatientID); err != nil {
		return 0, fmt.Errorf("check patient: %w", err)
	} else if !ok {
		return 0, ErrPatientNotFound
	}

	if ok, err := s.repo.DoctorExists(ctx, req.DoctorID); err != nil {
		return 0, fmt.Errorf("check doctor: %w", err)
	} else if !ok {
		return 0, ErrDoctorNotFound
	}

	if taken, err := s.repo.SlotTaken(ctx, req.DoctorID, date, timeOfDay); err != nil {
		return 0, fmt.Errorf("check slot: %w", err)
	} else if taken {
		return 0, ErrSlotTaken
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = defaultReason
	}

	appt := &Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		TimeOfDay: timeOfDay,
		Reason:    reason,
		Status:    StatusScheduled,
	}

	id, err := s.repo.CreateAppointment(ctx, appt)
	if err != nil {
		return 0, err
	}

	s.logEvent(ctx, EventAppointmentBooked, &id, map[string]any{
		"patient_id": req.PatientID,
		"doctor_id":  req.DoctorID,
		"date":       date.Format(dateLayout),
		"time":       timeOfDay,
	})

	return id, nil
}

// logEvent records an audit row. Auditing is best effort and never fails
// the operation it describes.
func (s *Service) logEvent(ctx context.Context, eventType string, appointmentID *int64, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("marshal event payload")
		data = nil
	}

	ev := EventLog{
		EventType:     eventType,
		AppointmentID: appointmentID,
		Payload:       data,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("insert event log")
	}
}

func validateBookingRequest(req BookingRequest) (time.Time, string, error) {
	if req.PatientID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: patient_id is required", ErrInvalidInput)
	}
	if req.DoctorID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: doctor_id is required", ErrInvalidInput)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	timeOfDay, err := normalizeTimeOfDay(req.Time)
	if err != nil {
		return time.Time{}, "", err
	}

	return date, timeOfDay, nil
}

func validatePatientRegistration(in PatientRegistration) (time.Time, error) {
	if strings.TrimSpace(in.Name) == "" {
		return time.Time{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Gender) == "" {
		return time.Time{}, fmt.Errorf("%w: gender is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return time.Time{}, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	dob, err := time.Parse(dateLayout, in.DateOfBirth)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", ErrInvalidInput)
	}

	return dob, nil
}

func validateDoctorRegistration(in DoctorRegistration) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case strings.TrimSpace(in.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	case strings.TrimSpace(in.Phone) == "":
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	case strings.TrimSpace(in.Department) == "":
		return fmt.Errorf("%w: department is required", ErrInvalidInput)
	case in.ExperienceYears < 0:
		return fmt.Errorf("%w: experience_years must not be negative", ErrInvalidInput)
	case in.ConsultationFee < 0:
		return fmt.Errorf("%w: consultation_fee must not be negative", ErrInvalidInput)
	}
	return nil
}

// normalizeTimeOfDay canonicalizes to HH:MM:SS so "10:00" and "10:00:00"
// always denote the same slot in the conflict check and the unique index.
func normalizeTimeOfDay(v string) (string, error) {
	for _, layout := range []string{timeLayout, "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: time must be HH:MM or HH:MM:SS", ErrInvalidInput)
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
