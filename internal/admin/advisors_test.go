package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mymentor/mymentor-go/internal/admin"
	"github.com/mymentor/mymentor-go/internal/model/user"
)

func pro(id int, name string) user.Professional {
	return user.Professional{ID: id, Name: name, Area: user.Area{ID: 1, Name: "Carrera"}}
}

func advisorsPageHandler(items []user.Professional, totalPages int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"professionals": items,
			"total_pages":   totalPages,
		})
	}
}

func TestAdvisorsFetchPage(t *testing.T) {
	var gotSize string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /professionals/page/2", func(w http.ResponseWriter, r *http.Request) {
		gotSize = r.URL.Query().Get("size")
		advisorsPageHandler([]user.Professional{pro(1, "Consulta General"), pro(2, "Arquitectura")}, 3)(w, r)
	})

	advisors := admin.NewAdvisors(newClient(t, mux))
	page, err := advisors.FetchPage(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("FetchPage err: %v", err)
	}

	if gotSize != "5" {
		t.Fatalf("size not forwarded, got %q", gotSize)
	}
	if page.TotalPages != 3 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestAdvisorsFetchPageNormalizesArguments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /professionals/page/1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("size") != "10" {
			t.Errorf("expected default size, got %q", r.URL.Query().Get("size"))
		}
		advisorsPageHandler(nil, 1)(w, r)
	})

	advisors := admin.NewAdvisors(newClient(t, mux))
	if _, err := advisors.FetchPage(context.Background(), 0, 0); err != nil {
		t.Fatalf("FetchPage err: %v", err)
	}
}

func TestAdvisorsCreatePrependsAndTruncates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /professionals/page/1", advisorsPageHandler(
		[]user.Professional{pro(1, "a"), pro(2, "b")}, 1))
	mux.HandleFunc("POST /professional", func(w http.ResponseWriter, r *http.Request) {
		var na admin.NewAdvisor
		json.NewDecoder(r.Body).Decode(&na)
		writeJSON(w, http.StatusCreated, map[string]any{
			"professional": pro(9, na.Name),
		})
	})

	advisors := admin.NewAdvisors(newClient(t, mux))
	if _, err := advisors.FetchPage(context.Background(), 1, 2); err != nil {
		t.Fatalf("FetchPage err: %v", err)
	}

	created, err := advisors.Create(context.Background(), admin.NewAdvisor{Name: "Nuevo", AreaID: 1})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("unexpected created id: %d", created.ID)
	}

	list := advisors.List()
	if len(list) != 2 {
		t.Fatalf("page size must stay constant, got %d", len(list))
	}
	if list[0].ID != 9 || list[1].ID != 1 {
		t.Fatalf("create should prepend and drop the tail: %+v", list)
	}
}

func TestAdvisorsCreateRequiresName(t *testing.T) {
	advisors := admin.NewAdvisors(newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call")
	})))

	if _, err := advisors.Create(context.Background(), admin.NewAdvisor{Name: "  "}); err == nil {
		t.Fatal("expected an error for a blank name")
	}
}

func TestAdvisorsUpdateReplacesByID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /professionals/page/1", advisorsPageHandler(
		[]user.Professional{pro(1, "a"), pro(2, "b")}, 1))
	mux.HandleFunc("PUT /professional/2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"professional": pro(2, "renombrado")})
	})

	advisors := admin.NewAdvisors(newClient(t, mux))
	if _, err := advisors.FetchPage(context.Background(), 1, 10); err != nil {
		t.Fatalf("FetchPage err: %v", err)
	}

	if _, err := advisors.Update(context.Background(), 2, admin.NewAdvisor{Name: "renombrado", AreaID: 1}); err != nil {
		t.Fatalf("Update err: %v", err)
	}

	list := advisors.List()
	if list[1].Name != "renombrado" {
		t.Fatalf("record not replaced: %+v", list[1])
	}
	if list[0].Name != "a" {
		t.Fatalf("unrelated record touched: %+v", list[0])
	}
}

func TestAdvisorsDeleteFiltersLocally(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /professionals/page/1", advisorsPageHandler(
		[]user.Professional{pro(1, "a"), pro(2, "b")}, 1))
	mux.HandleFunc("DELETE /professional/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"mensaje": "eliminado"})
	})

	advisors := admin.NewAdvisors(newClient(t, mux))
	if _, err := advisors.FetchPage(context.Background(), 1, 10); err != nil {
		t.Fatalf("FetchPage err: %v", err)
	}

	if err := advisors.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete err: %v", err)
	}

	list := advisors.List()
	if len(list) != 1 || list[0].ID != 2 {
		t.Fatalf("delete did not filter locally: %+v", list)
	}
}

func TestAdvisorsAreas(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /areas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"areas": []user.Area{{ID: 1, Name: "Carrera"}, {ID: 2, Name: "Bienestar"}},
		})
	})

	advisors := admin.NewAdvisors(newClient(t, mux))
	areas, err := advisors.Areas(context.Background())
	if err != nil {
		t.Fatalf("Areas err: %v", err)
	}
	if len(areas) != 2 || areas[0].Name != "Carrera" {
		t.Fatalf("unexpected areas: %+v", areas)
	}
}
