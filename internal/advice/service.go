package advice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mymentor/mymentor-go/internal/api"
	model "github.com/mymentor/mymentor-go/internal/model/advice"
	"github.com/mymentor/mymentor-go/internal/model/user"
)

// ErrEmptyQuestion reports a blank chat turn; it never reaches the network.
var ErrEmptyQuestion = errors.New("question is empty")

// Service drives the advice endpoints and reconciles results into the store.
type Service struct {
	client *api.Client
	store  *Store
}

// NewService binds the service to its API client and store.
func NewService(client *api.Client, store *Store) *Service {
	return &Service{client: client, store: store}
}

// Store exposes the reconciliation store for read access and selection.
func (s *Service) Store() *Store {
	return s.store
}

// LoadAll lists the threads of every given asesor concurrently and replaces
// the store with the flattened result. A 404 means the asesor has no threads
// yet and contributes nothing; any other failure aborts the whole load.
func (s *Service) LoadAll(ctx context.Context, asesores []user.Asesor) error {
	results := make([][]model.Thread, len(asesores))

	g, gctx := errgroup.WithContext(ctx)
	for i, asesor := range asesores {
		g.Go(func() error {
			threads, err := s.listByAsesor(gctx, asesor)
			if err != nil {
				return err
			}
			results[i] = threads
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []model.Thread
	for _, threads := range results {
		all = append(all, threads...)
	}
	s.store.Replace(all)
	return nil
}

func (s *Service) listByAsesor(ctx context.Context, asesor user.Asesor) ([]model.Thread, error) {
	var resp model.ListResponse
	err := s.client.Do(ctx, http.MethodGet, "/gpt/professional/"+strconv.Itoa(asesor.ID), nil, &resp)
	if err != nil {
		if api.IsNotFound(err) {
			// No threads yet is a steady state, not a failure.
			return nil, nil
		}
		return nil, fmt.Errorf("list advisorys for asesor %d: %w", asesor.ID, err)
	}

	threads := make([]model.Thread, 0, len(resp.Advisorys))
	for _, a := range resp.Advisorys {
		threads = append(threads, model.Thread{
			Advice:     a,
			AsesorID:   asesor.ID,
			AsesorName: asesor.Professional.Name,
		})
	}
	return threads, nil
}

// Ask sends one chat turn. Without a selection it creates a new thread;
// otherwise it appends to the selected one. Either way the full detail
// record is fetched afterwards, merged into the store, and selected.
func (s *Service) Ask(ctx context.Context, asesorID int, asesorName, ask, apiType string) (model.Thread, error) {
	if strings.TrimSpace(ask) == "" {
		return model.Thread{}, ErrEmptyQuestion
	}

	req := model.Request{UserProfessionalID: asesorID, Ask: ask, APIType: apiType}

	var resp model.Response
	if current, ok := s.store.Selected(); ok {
		err := s.client.Do(ctx, http.MethodPut, "/gpt/professional/advice/"+strconv.Itoa(current.ID), req, &resp)
		if err != nil {
			return model.Thread{}, fmt.Errorf("update advice %d: %w", current.ID, err)
		}
	} else {
		if err := s.client.Do(ctx, http.MethodPost, "/gpt/professional/advice", req, &resp); err != nil {
			return model.Thread{}, fmt.Errorf("create advice: %w", err)
		}
	}

	thread, err := s.Details(ctx, resp.Advice.ID)
	if err != nil {
		return model.Thread{}, err
	}
	thread.AsesorID = asesorID
	thread.AsesorName = asesorName

	s.store.Upsert(thread)
	s.store.Select(thread.ID)
	return thread, nil
}

// Details fetches the full transcript of one thread, details in line order.
func (s *Service) Details(ctx context.Context, id int) (model.Thread, error) {
	var resp model.Response
	if err := s.client.Do(ctx, http.MethodGet, "/gpt/professional/advice/"+strconv.Itoa(id), nil, &resp); err != nil {
		return model.Thread{}, fmt.Errorf("get advice %d: %w", id, err)
	}

	a := resp.Advice
	sort.SliceStable(a.Details, func(i, j int) bool {
		return a.Details[i].LineNumber < a.Details[j].LineNumber
	})
	return model.Thread{Advice: a}, nil
}

// Delete removes the thread server-side and locally. Both sides are
// idempotent; a 404 from the server still clears the local entry.
func (s *Service) Delete(ctx context.Context, id int) error {
	err := s.client.Do(ctx, http.MethodDelete, "/gpt/professional/advice/"+strconv.Itoa(id), nil, nil)
	if err != nil && !api.IsNotFound(err) {
		return fmt.Errorf("delete advice %d: %w", id, err)
	}
	s.store.Remove(id)
	return nil
}
