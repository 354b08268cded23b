package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// queryer is satisfied by both the pool and a transaction, so the same
// statements can run inside and outside CreateAppointment's transaction.
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Helpers

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Gender,
		&p.DateOfBirth,
		&p.BloodGroup,
		&p.Address,
		&p.Phone,
		&p.Email,
		&p.MedicalHistory,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Email,
		&d.Phone,
		&d.Department,
		&d.Specialization,
		&d.Qualification,
		&d.ExperienceYears,
		&d.ConsultationFee,
		&d.Bio,
		&d.Address,
		&d.City,
		&d.State,
		&d.Pincode,
		&d.AvailableDays,
		&d.AvailableTimeSlot,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	return &d, nil
}

// mapPgError turns constraint violations into the domain sentinels so the
// constraints stay the authoritative guard even when a pre-check raced.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case "patients_phone_key", "doctors_phone_key":
			return ErrDuplicatePhone
		case "patients_email_key", "doctors_email_key":
			return ErrDuplicateEmail
		case "appointments_slot_key":
			return ErrSlotTaken
		}
	case "23503": // foreign_key_violation
		switch pgErr.ConstraintName {
		case "appointments_patient_id_fkey":
			return ErrPatientNotFound
		case "appointments_doctor_id_fkey":
			return ErrDoctorNotFound
		}
	}

	return err
}

func exists(ctx context.Context, q queryer, sql string, args ...any) (bool, error) {
	var found bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// Interface methods

func (r *PgRepository) PatientExists(ctx context.Context, id int) (bool, error) {
	return exists(ctx, r.pool, `
		SELECT EXISTS (SELECT 1 FROM patients WHERE patient_id = $1)
	`, id)
}

func (r *PgRepository) DoctorExists(ctx context.Context, id int) (bool, error) {
	return exists(ctx, r.pool, `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE doctor_id = $1)
	`, id)
}

func (r *PgRepository) FindPatientByPhone(ctx context.Context, phone string) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT patient_id, name, gender, date_of_birth, blood_group, address,
		       phone, email, medical_history, created_at
		FROM patients
		WHERE phone = $1
	`, phone)
	return scanPatient(row)
}

func (r *PgRepository) FindDoctorByContact(ctx context.Context, email, phone string) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT doctor_id, name, email, phone, department, specialization,
		       qualification, experience_years, consultation_fee, bio,
		       address, city, state, pincode, available_days,
		       available_time_slot, created_at
		FROM doctors
		WHERE email = $1 OR phone = $2
		LIMIT 1
	`, email, phone)
	return scanDoctor(row)
}

func (r *PgRepository) InsertPatient(ctx context.Context, p *Patient) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (patient_id, name, gender, date_of_birth,
		                      blood_group, address, phone, email,
		                      medical_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, p.ID, p.Name, p.Gender, p.DateOfBirth, p.BloodGroup, p.Address,
		p.Phone, p.Email, p.MedicalHistory).Scan(&p.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgRepository) InsertDoctor(ctx context.Context, d *Doctor) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (doctor_id, name, email, phone, department,
		                     specialization, qualification, experience_years,
		                     consultation_fee, bio, address, city, state,
		                     pincode, available_days, available_time_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at
	`, d.ID, d.Name, d.Email, d.Phone, d.Department, d.Specialization,
		d.Qualification, d.ExperienceYears, d.ConsultationFee, d.Bio,
		d.Address, d.City, d.State, d.Pincode, d.AvailableDays,
		d.AvailableTimeSlot).Scan(&d.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgRepository) SlotTaken(ctx context.Context, doctorID int, date time.Time, timeOfDay string) (bool, error) {
	return exists(ctx, r.pool, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND appointment_date = $2
			  AND appointment_time = $3
		)
	`, doctorID, date, timeOfDay)
}

// CreateAppointment re-verifies the booking preconditions and inserts, all
// inside one transaction. The unique index on (doctor, date, time) and the
// foreign keys close the remaining race between check and insert; a failure
// at any point rolls the whole transaction back.
func (r *PgRepository) CreateAppointment(ctx context.Context, appt *Appointment) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	ok, err := exists(ctx, tx, `
		SELECT EXISTS (SELECT 1 FROM patients WHERE patient_id = $1)
	`, appt.PatientID)
	if err != nil {
		return 0, fmt.Errorf("verify patient: %w", err)
	}
	if !ok {
		return 0, ErrPatientNotFound
	}

	ok, err = exists(ctx, tx, `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE doctor_id = $1)
	`, appt.DoctorID)
	if err != nil {
		return 0, fmt.Errorf("verify doctor: %w", err)
	}
	if !ok {
		return 0, ErrDoctorNotFound
	}

	taken, err := exists(ctx, tx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND appointment_date = $2
			  AND appointment_time = $3
		)
	`, appt.DoctorID, appt.Date, appt.TimeOfDay)
	if err != nil {
		return 0, fmt.Errorf("verify slot: %w", err)
	}
	if taken {
		return 0, ErrSlotTaken
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date,
		                          appointment_time, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING appointment_id, created_at
	`, appt.PatientID, appt.DoctorID, appt.Date, appt.TimeOfDay,
		appt.Reason, appt.Status).Scan(&appt.ID, &appt.CreatedAt)
	if err != nil {
		return 0, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit booking tx: %w", err)
	}

	return appt.ID, nil
}

func (r *PgRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT patient_id, name, gender, date_of_birth, blood_group, address,
		       phone, email, medical_history, created_at
		FROM patients
		ORDER BY name, patient_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) ListDoctors(ctx context.Context) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT doctor_id, name, email, phone, department, specialization,
		       qualification, experience_years, consultation_fee, bio,
		       address, city, state, pincode, available_days,
		       available_time_slot, created_at
		FROM doctors
		ORDER BY name, doctor_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) ListDoctorOptions(ctx context.Context) ([]DoctorOption, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT doctor_id, name, department, specialization
		FROM doctors
		ORDER BY name, doctor_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []DoctorOption{}
	for rows.Next() {
		var o DoctorOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Department, &o.Specialization); err != nil {
			return nil, err
		}
		result = append(result, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListAppointments uses inner joins so an appointment whose patient or
// doctor row is gone is excluded rather than returned with null names.
func (r *PgRepository) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.appointment_id, a.patient_id, p.name, a.doctor_id, d.name,
		       a.appointment_date, a.appointment_time, a.reason, a.status,
		       a.created_at
		FROM appointments a
		JOIN patients p ON a.patient_id = p.patient_id
		JOIN doctors d ON a.doctor_id = d.doctor_id
		ORDER BY a.appointment_date DESC, a.appointment_time DESC,
		         a.appointment_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []AppointmentDetail{}
	for rows.Next() {
		var d AppointmentDetail
		err := rows.Scan(
			&d.ID,
			&d.PatientID,
			&d.PatientName,
			&d.DoctorID,
			&d.DoctorName,
			&d.Date,
			&d.TimeOfDay,
			&d.Reason,
			&d.Status,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) InsertEvent(ctx context.Context, ev EventLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_logs (event_type, appointment_id, payload, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`, ev.EventType, ev.AppointmentID, ev.Payload, nullableTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}

	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
