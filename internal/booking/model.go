package booking

import "time"

type AppointmentStatus string

// Scheduled is the only status the booking path produces. Completed and
// cancelled transitions live outside this service.
const StatusScheduled AppointmentStatus = "Scheduled"

type Patient struct {
	ID             int
	Name           string
	Gender         string
	DateOfBirth    time.Time
	BloodGroup     string
	Address        string
	Phone          string
	Email          *string
	MedicalHistory *string
	CreatedAt      time.Time
}

type Doctor struct {
	ID                int
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
	CreatedAt         time.Time
}

type Appointment struct {
	ID        int64
	PatientID int
	DoctorID  int
	Date      time.Time // date component only
	TimeOfDay string    // normalized to HH:MM:SS
	Reason    string
	Status    AppointmentStatus
	CreatedAt time.Time
}

// AppointmentDetail is an appointment joined with the display names of the
// patient and doctor it references.
type AppointmentDetail struct {
	Appointment
	PatientName string
	DoctorName  string
}

// DoctorOption is the reduced projection used by booking dropdowns.
type DoctorOption struct {
	ID             int    `json:"doctor_id"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Specialization string `json:"specialization"`
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *int64
	Payload       []byte
	CreatedAt     time.Time
}
