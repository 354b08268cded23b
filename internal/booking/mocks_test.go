package booking

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Compile-time check that the mock satisfies the repository contract.
var _ Repository = (*MockRepository)(nil)

// MockRepository implements Repository with overridable func fields. Unset
// fields fall back to an empty store: nothing exists, lookups miss, writes
// succeed.
type MockRepository struct {
	PatientExistsFunc       func(ctx context.Context, id int) (bool, error)
	DoctorExistsFunc        func(ctx context.Context, id int) (bool, error)
	FindPatientByPhoneFunc  func(ctx context.Context, phone string) (*Patient, error)
	FindDoctorByContactFunc func(ctx context.Context, email, phone string) (*Doctor, error)
	InsertPatientFunc       func(ctx context.Context, p *Patient) error
	InsertDoctorFunc        func(ctx context.Context, d *Doctor) error
	SlotTakenFunc           func(ctx context.Context, doctorID int, date time.Time, timeOfDay string) (bool, error)
	CreateAppointmentFunc   func(ctx context.Context, appt *Appointment) (int64, error)
	ListPatientsFunc        func(ctx context.Context) ([]Patient, error)
	ListDoctorsFunc         func(ctx context.Context) ([]Doctor, error)
	ListDoctorOptionsFunc   func(ctx context.Context) ([]DoctorOption, error)
	ListAppointmentsFunc    func(ctx context.Context) ([]AppointmentDetail, error)
	InsertEventFunc         func(ctx context.Context, ev EventLog) error

	CreateAppointmentCallCount int32
	InsertPatientCallCount     int32
	InsertDoctorCallCount      int32
	InsertEventCallCount       int32
}

func (m *MockRepository) PatientExists(ctx context.Context, id int) (bool, error) {
	if m.PatientExistsFunc != nil {
		return m.PatientExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockRepository) DoctorExists(ctx context.Context, id int) (bool, error) {
	if m.DoctorExistsFunc != nil {
		return m.DoctorExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockRepository) FindPatientByPhone(ctx context.Context, phone string) (*Patient, error) {
	if m.FindPatientByPhoneFunc != nil {
		return m.FindPatientByPhoneFunc(ctx, phone)
	}
	return nil, ErrPatientNotFound
}

func (m *MockRepository) FindDoctorByContact(ctx context.Context, email, phone string) (*Doctor, error) {
	if m.FindDoctorByContactFunc != nil {
		return m.FindDoctorByContactFunc(ctx, email, phone)
	}
	return nil, ErrDoctorNotFound
}

func (m *MockRepository) InsertPatient(ctx context.Context, p *Patient) error {
	atomic.AddInt32(&m.InsertPatientCallCount, 1)
	if m.InsertPatientFunc != nil {
		return m.InsertPatientFunc(ctx, p)
	}
	return nil
}

func (m *MockRepository) InsertDoctor(ctx context.Context, d *Doctor) error {
	atomic.AddInt32(&m.InsertDoctorCallCount, 1)
	if m.InsertDoctorFunc != nil {
		return m.InsertDoctorFunc(ctx, d)
	}
	return nil
}

func (m *MockRepository) SlotTaken(ctx context.Context, doctorID int, date time.Time, timeOfDay string) (bool, error) {
	if m.SlotTakenFunc != nil {
		return m.SlotTakenFunc(ctx, doctorID, date, timeOfDay)
	}
	return false, nil
}

func (m *MockRepository) CreateAppointment(ctx context.Context, appt *Appointment) (int64, error) {
	atomic.AddInt32(&m.CreateAppointmentCallCount, 1)
	if m.CreateAppointmentFunc != nil {
		return m.CreateAppointmentFunc(ctx, appt)
	}
	return 0, errors.New("CreateAppointmentFunc not implemented in mock")
}

func (m *MockRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	if m.ListPatientsFunc != nil {
		return m.ListPatientsFunc(ctx)
	}
	return []Patient{}, nil
}

func (m *MockRepository) ListDoctors(ctx context.Context) ([]Doctor, error) {
	if m.ListDoctorsFunc != nil {
		return m.ListDoctorsFunc(ctx)
	}
	return []Doctor{}, nil
}

func (m *MockRepository) ListDoctorOptions(ctx context.Context) ([]DoctorOption, error) {
	if m.ListDoctorOptionsFunc != nil {
		return m.ListDoctorOptionsFunc(ctx)
	}
	return []DoctorOption{}, nil
}

func (m *MockRepository) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	if m.ListAppointmentsFunc != nil {
		return m.ListAppointmentsFunc(ctx)
	}
	return []AppointmentDetail{}, nil
}

func (m *MockRepository) InsertEvent(ctx context.Context, ev EventLog) error {
	atomic.AddInt32(&m.InsertEventCallCount, 1)
	if m.InsertEventFunc != nil {
		return m.InsertEventFunc(ctx, ev)
	}
	return nil
}
