package domain

// Service labels as they appear in the spreadsheet.
const (
	ServiceTraining = "Educación Canina"
	ServiceWalks    = "Paseos"
	ServiceHuman    = "Derivado a humano"
)

// Record is the flat row forwarded to the spreadsheet sink when a flow
// completes. Every field is always present; fields that a flow does not
// collect are the empty string, never absent.
type Record struct {
	Nombre   string `json:"nombre"`
	Comuna   string `json:"comuna"`
	Detalle  string `json:"detalle"`
	Servicio string `json:"servicio"`
	Numero   string `json:"numero"`
}
