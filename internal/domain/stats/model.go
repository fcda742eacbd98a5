package stats

// DepartmentCount is one row of the per-department patient breakdown.
type DepartmentCount struct {
	Department string `db:"department" json:"department"`
	Count      int    `db:"count" json:"count"`
}

// DiagnosisCount is one row of the per-diagnosis patient breakdown.
// Patients with an empty diagnosis are not counted.
type DiagnosisCount struct {
	Diagnosis string `db:"diagnosis" json:"diagnosis"`
	Count     int    `db:"count" json:"count"`
}

// DischargeReasonCounts is the archive histogram over the closed reason set.
type DischargeReasonCounts struct {
	Improved  int `json:"improved"`
	ByRequest int `json:"by_request"`
	Escaped   int `json:"escaped"`
	Died      int `json:"died"`
}

// Dashboard is the aggregate snapshot served to the ward overview page.
type Dashboard struct {
	TotalPatients        int                   `json:"total_patients"`
	ActivePatients       int                   `json:"active_patients"`
	ArchivedPatients     int                   `json:"archived_patients"`
	PatientsByDepartment []DepartmentCount     `json:"patients_by_department"`
	PatientsByDiagnosis  []DiagnosisCount      `json:"patients_by_diagnosis"`
	DischargeReasons     DischargeReasonCounts `json:"discharge_reasons"`
}
