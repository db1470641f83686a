// Package advice defines advice threads ("asesorías") and their wire
// envelopes.
package advice

// Advice is one conversation thread with an advisor. The id is assigned by
// the server on creation.
type Advice struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Details     []Detail `json:"advisorys_details"`
}

// Detail is one question/answer turn. Turns are append-only and ordered by
// LineNumber within a thread.
type Detail struct {
	ID         int    `json:"id"`
	LineNumber int    `json:"line_number"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Model      string `json:"model"`
}

// Thread is an Advice stamped with the asesor it belongs to. The backend
// does not return this pair on listing calls; the client derives it so lists
// can render without a join against the user's asesores.
type Thread struct {
	Advice
	AsesorID   int
	AsesorName string
}

// Request is the create/update payload for a chat turn.
type Request struct {
	UserProfessionalID int    `json:"user_professional_id"`
	Ask                string `json:"ask"`
	APIType            string `json:"api_type"`
	Image              string `json:"image,omitempty"`
}

// Response is the single-advice envelope.
type Response struct {
	Advice  Advice `json:"advice"`
	Mensaje string `json:"mensaje"`
}

// ListResponse is the per-asesor listing envelope.
type ListResponse struct {
	Advisorys []Advice `json:"advisorys"`
	Mensaje   string   `json:"mensaje"`
}
