package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient lifecycle statuses. A record moves active -> archived exactly once,
// only through Discharge.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Discharge reasons recorded in the archive.
var validDischargeReasons = map[string]bool{
	"improved":   true,
	"by_request": true,
	"escaped":    true,
	"died":       true,
}

// PatientRecord maps to the patients table.
type PatientRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	FullName      string    `db:"full_name" json:"full_name"`
	Age           int       `db:"age" json:"age"`
	Gender        string    `db:"gender" json:"gender"`
	IDNumber      string    `db:"id_number" json:"id_number"`
	Phone         string    `db:"phone" json:"phone"`
	Address       string    `db:"address" json:"address"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis"`
	Operation     string    `db:"operation" json:"operation"`
	Surgeon       string    `db:"surgeon" json:"surgeon"`
	Department    string    `db:"department" json:"department"`
	BedNumber     string    `db:"bed_number" json:"bed_number"`
	AdmissionDate string    `db:"admission_date" json:"admission_date"`
	Notes         string    `db:"notes" json:"notes"`
	Status        string    `db:"status" json:"status"`
	CreatedBy     uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ArchiveRecord maps to the archive_records table. It snapshots the patient
// at discharge time and is never modified afterwards.
type ArchiveRecord struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	FullName        string    `db:"full_name" json:"full_name"`
	Age             int       `db:"age" json:"age"`
	Gender          string    `db:"gender" json:"gender"`
	Diagnosis       string    `db:"diagnosis" json:"diagnosis"`
	Operation       string    `db:"operation" json:"operation"`
	Surgeon         string    `db:"surgeon" json:"surgeon"`
	AdmissionDate   string    `db:"admission_date" json:"admission_date"`
	DischargeReason string    `db:"discharge_reason" json:"discharge_reason"`
	Notes           string    `db:"notes" json:"notes"`
	DischargedBy    uuid.UUID `db:"discharged_by" json:"discharged_by"`
	DischargedAt    time.Time `db:"discharged_at" json:"discharged_at"`
}

// DepartmentBedCounter maps to the department_beds table. occupied_beds may
// exceed total_beds; over-occupancy is reported, not rejected.
type DepartmentBedCounter struct {
	Department   string `db:"department" json:"department"`
	TotalBeds    int    `db:"total_beds" json:"total_beds"`
	OccupiedBeds int    `db:"occupied_beds" json:"occupied_beds"`
}
