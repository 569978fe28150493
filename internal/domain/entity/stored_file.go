package entity

import "time"

// PDFContentType único tipo de contenido aceptado en el almacén de archivos.
const PDFContentType = "application/pdf"

// StoredFile metadatos de un PDF guardado en el almacén de blobs.
// ID comparte espacio de identificadores con Invoice.FileID.
type StoredFile struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Length     int64        `json:"length"`
	UploadDate time.Time    `json:"uploadDate"`
	Metadata   FileMetadata `json:"metadata"`
}

// FileMetadata se guarda junto a los bytes del archivo.
type FileMetadata struct {
	ContentType  string    `json:"contentType" bson:"contentType"`
	OriginalName string    `json:"originalName" bson:"originalName"`
	Size         int64     `json:"size" bson:"size"`
	UploadDate   time.Time `json:"uploadDate" bson:"uploadDate"`
	PageCount    int       `json:"pageCount,omitempty" bson:"pageCount,omitempty"`
}
