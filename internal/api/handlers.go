package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medicarehq/hospital-booking/internal/booking"
)

func registerPatientHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.RegisterPatient(r.Context(), booking.PatientRegistration{
			Name:           req.Name,
			Gender:         req.Gender,
			DateOfBirth:    req.DateOfBirth,
			BloodGroup:     req.BloodGroup,
			Address:        req.Address,
			Phone:          req.Phone,
			Email:          req.Email,
			MedicalHistory: req.MedicalHistory,
		})
		if err != nil {
			handleRegistrationError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, RegisterPatientResponse{
			PatientID:     p.ID,
			PatientNumber: booking.PatientNumber(p.ID),
		})
	}
}

func registerDoctorHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		d, err := svc.RegisterDoctor(r.Context(), booking.DoctorRegistration{
			Name:              req.Name,
			Email:             req.Email,
			Phone:             req.Phone,
			Department:        req.Department,
			Specialization:    req.Specialization,
			Qualification:     req.Qualification,
			ExperienceYears:   req.ExperienceYears,
			ConsultationFee:   req.ConsultationFee,
			Bio:               req.Bio,
			Address:           req.Address,
			City:              req.City,
			State:             req.State,
			Pincode:           req.Pincode,
			AvailableDays:     req.AvailableDays,
			AvailableTimeSlot: req.AvailableTimeSlot,
		})
		if err != nil {
			handleRegistrationError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, RegisterDoctorResponse{
			DoctorID:     d.ID,
			DoctorNumber: booking.DoctorNumber(d.ID),
		})
	}
}

func bookAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		id, err := svc.BookAppointment(r.Context(), booking.BookingRequest{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			Date:      req.Date,
			Time:      req.Time,
			Reason:    req.Reason,
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, BookAppointmentResponse{AppointmentID: id})
	}
}

func listPatientsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.ListPatients(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, patients)
	}
}

func listDoctorsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListDoctors(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, doctors)
	}
}

func listDoctorOptionsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := svc.ListDoctorOptions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, options)
	}
}

func listAppointmentsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, err := svc.ListAppointments(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, appointments)
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, booking.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, booking.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, booking.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_already_booked", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleRegistrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, booking.ErrDuplicatePhone):
		writeError(w, http.StatusConflict, "duplicate_phone", err.Error())
	case errors.Is(err, booking.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "duplicate_email", err.Error())
	case errors.Is(err, booking.ErrIDSpaceExhausted):
		writeError(w, http.StatusInternalServerError, "id_space_exhausted", "could not assign an id, please retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
