package entity

import "time"

// Attachment es una foto tomada al fardo pendiente de subir al servidor.
// El job de reintentos la toma del ledger; los fallos nunca bloquean el núcleo.
type Attachment struct {
	ID        string
	UnitID    string
	LocalPath string
	MIMEType  string
	Uploaded  bool
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}
