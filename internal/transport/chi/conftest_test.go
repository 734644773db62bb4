package chi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/paperdex/paperdex/internal/domain"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
	documentuc "github.com/paperdex/paperdex/internal/usecase/document"
	healthuc "github.com/paperdex/paperdex/internal/usecase/health"
	searchuc "github.com/paperdex/paperdex/internal/usecase/search"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var errDown = errors.New("connection refused")

// mockRepo backs both the search and document services in handler tests.
type mockRepo struct {
	docs    []domdoc.Document
	deleted []string
}

func (m *mockRepo) Scan(_ context.Context, pred predicate.Predicate) ([]domdoc.Document, error) {
	var out []domdoc.Document
	for _, d := range m.docs {
		if pred == nil || pred.Eval(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domdoc.Document, error) {
	for _, d := range m.docs {
		if d.ID() == id {
			return d, nil
		}
	}
	return domdoc.Document{}, domain.ErrDocumentNotFound
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	for i, d := range m.docs {
		if d.ID() == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return domain.ErrDocumentNotFound
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }

type docSpec struct {
	id        string
	title     string
	authors   []string
	abstract  string
	keywords  []string
	journal   string
	year      int
	folder    string
	titleEmb  []float32
	absEmb    []float32
	createdAt time.Time
}

func makeDoc(spec docSpec) domdoc.Document {
	createdAt := spec.createdAt
	if createdAt.IsZero() {
		createdAt = baseTime
	}
	return domdoc.Reconstruct(
		spec.id, spec.title, spec.authors, spec.abstract, spec.keywords,
		spec.journal, spec.year, spec.folder,
		domdoc.StatusProcessed, "/papers/"+spec.id+".pdf",
		spec.titleEmb, spec.absEmb, createdAt,
	)
}

func docs(specs ...docSpec) []domdoc.Document {
	out := make([]domdoc.Document, len(specs))
	for i, s := range specs {
		out[i] = makeDoc(s)
	}
	return out
}

// newTestRouter wires real services over the mock repo.
func newTestRouter(repo *mockRepo, storeErr error) http.Handler {
	srv := NewServer(
		documentuc.New(repo),
		searchuc.New(repo, nil),
		healthuc.New(&mockPinger{err: storeErr}, nil),
		zap.NewNop(),
	)
	return srv.Router(nil)
}
