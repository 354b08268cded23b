package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayNumbers(t *testing.T) {
	assert.Equal(t, "P1234", PatientNumber(1234))
	assert.Equal(t, "D5678", DoctorNumber(5678))
}

func TestListAppointmentsShaping(t *testing.T) {
	date := time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)

	repo := &MockRepository{
		ListAppointmentsFunc: func(ctx context.Context) ([]AppointmentDetail, error) {
			return []AppointmentDetail{
				{
					Appointment: Appointment{
						ID:        42,
						PatientID: 1234,
						DoctorID:  5678,
						Date:      date,
						TimeOfDay: "10:00:00",
						Reason:    "General Checkup",
						Status:    StatusScheduled,
					},
					PatientName: "John Doe",
					DoctorName:  "Dr. Smith",
				},
			}, nil
		},
	}
	svc := newTestService(repo)

	views, err := svc.ListAppointments(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, int64(42), v.ID)
	assert.Equal(t, EntityRef{ID: 1234, Number: "P1234", Name: "John Doe"}, v.Patient)
	assert.Equal(t, EntityRef{ID: 5678, Number: "D5678", Name: "Dr. Smith"}, v.Doctor)
	assert.Equal(t, "2025-09-25", v.Date)
	assert.Equal(t, "10:00:00", v.Time)
	assert.Equal(t, "Scheduled", v.Status)
}

func TestListAppointmentsEmpty(t *testing.T) {
	svc := newTestService(&MockRepository{})

	views, err := svc.ListAppointments(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestListAppointmentsIdempotent(t *testing.T) {
	date := time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)
	rows := []AppointmentDetail{
		{
			Appointment: Appointment{ID: 2, PatientID: 1000, DoctorID: 2000, Date: date, TimeOfDay: "11:00:00", Status: StatusScheduled},
			PatientName: "A",
			DoctorName:  "B",
		},
		{
			Appointment: Appointment{ID: 1, PatientID: 1001, DoctorID: 2000, Date: date, TimeOfDay: "10:00:00", Status: StatusScheduled},
			PatientName: "C",
			DoctorName:  "B",
		},
	}

	repo := &MockRepository{
		ListAppointmentsFunc: func(ctx context.Context) ([]AppointmentDetail, error) {
			return rows, nil
		},
	}
	svc := newTestService(repo)

	first, err := svc.ListAppointments(context.Background())
	require.NoError(t, err)
	second, err := svc.ListAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListPatientsShaping(t *testing.T) {
	email := "john@example.com"
	repo := &MockRepository{
		ListPatientsFunc: func(ctx context.Context) ([]Patient, error) {
			return []Patient{
				{
					ID:          1234,
					Name:        "John Doe",
					Gender:      "Male",
					DateOfBirth: time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
					BloodGroup:  "O+",
					Phone:       "1234567890",
					Email:       &email,
				},
			}, nil
		},
	}
	svc := newTestService(repo)

	views, err := svc.ListPatients(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "P1234", views[0].PatientNumber)
	assert.Equal(t, "1985-04-12", views[0].DateOfBirth)
	require.NotNil(t, views[0].Email)
	assert.Equal(t, email, *views[0].Email)
}

func TestListDoctorsJoinsAddress(t *testing.T) {
	repo := &MockRepository{
		ListDoctorsFunc: func(ctx context.Context) ([]Doctor, error) {
			return []Doctor{
				{
					ID:      5678,
					Name:    "Dr. Smith",
					Address: "1 Clinic Road",
					City:    "Pune",
					State:   "MH",
					Pincode: "411001",
				},
				{
					ID:   5679,
					Name: "Dr. Jones",
					City: "Mumbai",
				},
			}, nil
		},
	}
	svc := newTestService(repo)

	views, err := svc.ListDoctors(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "D5678", views[0].DoctorNumber)
	assert.Equal(t, "1 Clinic Road, Pune, MH, 411001", views[0].Address)
	assert.Equal(t, "Mumbai", views[1].Address)
}

func TestListDoctorOptionsNeverNil(t *testing.T) {
	repo := &MockRepository{
		ListDoctorOptionsFunc: func(ctx context.Context) ([]DoctorOption, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo)

	options, err := svc.ListDoctorOptions(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, options)
	assert.Empty(t, options)
}
