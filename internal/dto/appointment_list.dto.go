package dto

type AppointmentListDTO struct {
	Reference   string `json:"reference"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	QueueNumber int    `json:"queue_number"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	DoctorName  string `json:"doctor_name"`
	PatientName string `json:"patient_name"`
}

type NextSlotDTO struct {
	DoctorID   uint   `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Session    string `json:"session"`
}
