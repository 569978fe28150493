package dto

// UploadResponse data de POST /api/files/upload.
type UploadResponse struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

// ReconcileReport resultado de la conciliación de archivos huérfanos.
type ReconcileReport struct {
	Scanned    int      `json:"scanned"`
	Referenced int      `json:"referenced"`
	TooRecent  int      `json:"tooRecent"`
	Orphans    []string `json:"orphans"`
	Deleted    int      `json:"deleted"`
	Failed     []string `json:"failed,omitempty"`
	DryRun     bool     `json:"dryRun"`
}
