package user_test

import (
	"encoding/json"
	"testing"

	"github.com/mymentor/mymentor-go/internal/model/user"
)

func TestAsesorCarriesEmbeddedAdvisorys(t *testing.T) {
	payload := []byte(`{
		"usuario": {
			"uuid": "u-1",
			"name": "Ana",
			"email": "ana@x.dev",
			"asesores": [{
				"id": 4,
				"professional": {"id": 2, "name": "Consulta General"},
				"advisorys": [{"id": 9, "description": "primera consulta"}]
			}]
		},
		"mensaje": "ok"
	}`)

	var resp user.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	a := resp.Usuario.Asesores[0]
	if a.ID != 4 || a.Professional.Name != "Consulta General" {
		t.Fatalf("unexpected asesor: %+v", a)
	}
	if len(a.Advisorys) != 1 || a.Advisorys[0].ID != 9 {
		t.Fatalf("embedded advisorys lost: %+v", a.Advisorys)
	}
}
