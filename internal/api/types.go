package api

type RegisterPatientRequest struct {
	Name           string `json:"name"`
	Gender         string `json:"gender"`
	DateOfBirth    string `json:"date_of_birth"`
	BloodGroup     string `json:"blood_group"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	MedicalHistory string `json:"medical_history"`
}

type RegisterPatientResponse struct {
	PatientID     int    `json:"patient_id"`
	PatientNumber string `json:"patient_number"`
}

type RegisterDoctorRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Department        string  `json:"department"`
	Specialization    string  `json:"specialization"`
	Qualification     string  `json:"qualification"`
	ExperienceYears   int     `json:"experience_years"`
	ConsultationFee   float64 `json:"consultation_fee"`
	Bio               string  `json:"bio"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	State             string  `json:"state"`
	Pincode           string  `json:"pincode"`
	AvailableDays     string  `json:"available_days"`
	AvailableTimeSlot string  `json:"available_time_slot"`
}

type RegisterDoctorResponse struct {
	DoctorID     int    `json:"doctor_id"`
	DoctorNumber string `json:"doctor_number"`
}

type BookAppointmentRequest struct {
	PatientID int    `json:"patient_id"`
	DoctorID  int    `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason,omitempty"`
}

type BookAppointmentResponse struct {
	AppointmentID int64 `json:"appointment_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
