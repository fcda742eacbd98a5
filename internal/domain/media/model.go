package media

import (
	"time"

	"github.com/google/uuid"
)

// MediaReference maps to the media_files table. Only the reference is stored;
// the file bytes live wherever url points.
type MediaReference struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FileType    string    `db:"file_type" json:"file_type"`
	URL         string    `db:"url" json:"url"`
	Description string    `db:"description" json:"description"`
	UploadedBy  uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
