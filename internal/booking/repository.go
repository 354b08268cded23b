package booking

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrSlotTaken       = errors.New("appointment slot is already booked")
	ErrDuplicatePhone  = errors.New("phone number already registered")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	PatientExists(ctx context.Context, id int) (bool, error)
	DoctorExists(ctx context.Context, id int) (bool, error)

	// Pre-insert uniqueness lookups for the registration paths. A missing
	// row is reported as ErrPatientNotFound / ErrDoctorNotFound.
	FindPatientByPhone(ctx context.Context, phone string) (*Patient, error)
	FindDoctorByContact(ctx context.Context, email, phone string) (*Doctor, error)

	InsertPatient(ctx context.Context, p *Patient) error
	InsertDoctor(ctx context.Context, d *Doctor) error

	// SlotTaken is the fast pre-check; CreateAppointment re-verifies
	// existence and the slot under its own transaction.
	SlotTaken(ctx context.Context, doctorID int, date time.Time, timeOfDay string) (bool, error)
	CreateAppointment(ctx context.Context, appt *Appointment) (int64, error)

	ListPatients(ctx context.Context) ([]Patient, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	ListDoctorOptions(ctx context.Context) ([]DoctorOption, error)
	ListAppointments(ctx context.Context) ([]AppointmentDetail, error)

	// Audit trail
	InsertEvent(ctx context.Context, ev EventLog) error
}
