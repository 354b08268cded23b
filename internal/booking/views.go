package booking

import (
	"context"
	"fmt"
	"time"
)

// Display identifiers are presentation only; storage ids stay integers.

func PatientNumber(id int) string { return fmt.Sprintf("P%d", id) }
func DoctorNumber(id int) string  { return fmt.Sprintf("D%d", id) }

type PatientView struct {
	ID             int     `json:"id"`
	PatientNumber  string  `json:"patient_number"`
	Name           string  `json:"name"`
	Gender         string  `json:"gender"`
	DateOfBirth    string  `json:"date_of_birth"`
	BloodGroup     string  `json:"blood_group,omitempty"`
	Phone          string  `json:"phone"`
	Email          *string `json:"email"`
	Address        string  `json:"address,omitempty"`
	MedicalHistory *string `json:"medical_history"`
}

type DoctorView struct {
	ID                int     `json:"id"`
	DoctorNumber      string  `json:"doctor_number"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Department        string  `json:"department"`
	Specialization    string  `json:"specialization,omitempty"`
	Qualification     string  `json:"qualification,omitempty"`
	ExperienceYears   int     `json:"experience_years"`
	ConsultationFee   float64 `json:"consultation_fee"`
	Bio               string  `json:"bio,omitempty"`
	Address           string  `json:"address,omitempty"`
	AvailableDays     string  `json:"available_days,omitempty"`
	AvailableTimeSlot string  `json:"available_time_slot,omitempty"`
}

type EntityRef struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

type AppointmentView struct {
	ID        int64     `json:"id"`
	Patient   EntityRef `json:"patient"`
	Doctor    EntityRef `json:"doctor"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ListPatients returns all patients shaped for display. An empty store
// yields an empty slice, never an error.
func (s *Service) ListPatients(ctx context.Context) ([]PatientView, error) {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	views := make([]PatientView, 0, len(patients))
	for _, p := range patients {
		views = append(views, PatientView{
			ID:             p.ID,
			PatientNumber:  PatientNumber(p.ID),
			Name:           p.Name,
			Gender:         p.Gender,
			DateOfBirth:    p.DateOfBirth.Format(dateLayout),
			BloodGroup:     p.BloodGroup,
			Phone:          p.Phone,
			Email:          p.Email,
			Address:        p.Address,
			MedicalHistory: p.MedicalHistory,
		})
	}
	return views, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]DoctorView, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	views := make([]DoctorView, 0, len(doctors))
	for _, d := range doctors {
		views = append(views, DoctorView{
			ID:                d.ID,
			DoctorNumber:      DoctorNumber(d.ID),
			Name:              d.Name,
			Email:             d.Email,
			Phone:             d.Phone,
			Department:        d.Department,
			Specialization:    d.Specialization,
			Qualification:     d.Qualification,
			ExperienceYears:   d.ExperienceYears,
			ConsultationFee:   d.ConsultationFee,
			Bio:               d.Bio,
			Address:           joinAddress(d.Address, d.City, d.State, d.Pincode),
			AvailableDays:     d.AvailableDays,
			AvailableTimeSlot: d.AvailableTimeSlot,
		})
	}
	return views, nil
}

// ListDoctorOptions is the reduced projection for booking dropdowns.
func (s *Service) ListDoctorOptions(ctx context.Context) ([]DoctorOption, error) {
	options, err := s.repo.ListDoctorOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctor options: %w", err)
	}
	if options == nil {
		options = []DoctorOption{}
	}
	return options, nil
}

// ListAppointments returns appointments joined with patient and doctor
// names. Rows whose references no longer resolve are excluded by the join.
func (s *Service) ListAppointments(ctx context.Context) ([]AppointmentView, error) {
	details, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	views := make([]AppointmentView, 0, len(details))
	for _, d := range details {
		views = append(views, AppointmentView{
			ID: d.ID,
			Patient: EntityRef{
				ID:     d.PatientID,
				Number: PatientNumber(d.PatientID),
				Name:   d.PatientName,
			},
			Doctor: EntityRef{
				ID:     d.DoctorID,
				Number: DoctorNumber(d.DoctorID),
				Name:   d.DoctorName,
			},
			Date:      d.Date.Format(dateLayout),
			Time:      d.TimeOfDay,
			Reason:    d.Reason,
			Status:    string(d.Status),
			CreatedAt: d.CreatedAt,
		})
	}
	return views, nil
}

func joinAddress(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
