// Package user defines the MyMentor account entities exactly as the backend
// serves them, including the Spanish field names on the wire.
package user

import "github.com/mymentor/mymentor-go/internal/model/advice"

// User is a full account record. Mutations replace the whole record.
type User struct {
	UUID        string   `json:"uuid"`
	Name        string   `json:"name"`
	LastName    string   `json:"last_name"`
	PhoneNumber int64    `json:"phone_number"`
	Email       string   `json:"email"`
	Admin       bool     `json:"admin"`
	Enabled     bool     `json:"enabled"`
	Asesores    []Asesor `json:"asesores"`
}

// Asesor links a user to a professional profile. Its id is the assignment
// identity, distinct from the professional's own id. The backend embeds the
// assignment's advice threads here on user payloads; fresh listings still
// come from the per-asesor endpoint.
type Asesor struct {
	ID           int             `json:"id"`
	Professional Professional    `json:"professional"`
	Advisorys    []advice.Advice `json:"advisorys,omitempty"`
}

// Professional is a catalog entry describing an advisor profile.
type Professional struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Area        Area   `json:"area"`
}

// Area is flat reference data; the client never mutates it.
type Area struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Response is the single-user envelope.
type Response struct {
	Usuario User   `json:"usuario"`
	Mensaje string `json:"mensaje"`
}

// ListResponse is the user-list envelope.
type ListResponse struct {
	Usuarios []User `json:"usuarios"`
	Mensaje  string `json:"mensaje"`
}
