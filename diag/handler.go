// Package diag exposes a berth container over HTTP for operators: the
// registered services, the validation findings and the dependency graph.
//
//	mux.Mount("/debug/berth", diag.NewHandler(c, diag.WithGatherer(prometheus.DefaultGatherer)))
package diag

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xraph/berth"
)

// Option configures the handler.
type Option func(*handler)

// WithGatherer mounts a Prometheus scrape endpoint at /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(h *handler) {
		h.gatherer = g
	}
}

// WithLogger sets the logger used for encoding failures.
func WithLogger(logger *zap.Logger) Option {
	return func(h *handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

type handler struct {
	container *berth.Container
	gatherer  prometheus.Gatherer
	logger    *zap.Logger
}

// NewHandler returns a read-only router over c:
//
//	GET /services         all registered services
//	GET /services/{id}    one service, by its full or short string identity
//	GET /validate         findings; 200 when clean, 409 otherwise
//	GET /graph            nodes, edges and order; ?format=dot for Graphviz
//	GET /metrics          Prometheus scrape endpoint, with WithGatherer
func NewHandler(c *berth.Container, opts ...Option) http.Handler {
	h := &handler{
		container: c,
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/services", h.listServices)
	r.Get("/services/{id}", h.getService)
	r.Get("/validate", h.validate)
	r.Get("/graph", h.graph)

	if h.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (h *handler) listServices(w http.ResponseWriter, _ *http.Request) {
	services := h.container.Services()

	infos := make([]berth.ServiceInfo, 0, len(services))
	for _, id := range services {
		infos = append(infos, h.container.Inspect(id))
	}

	h.writeJSON(w, http.StatusOK, infos)
}

func (h *handler) getService(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed service id"})

		return
	}

	var matches []berth.ID

	for _, id := range h.container.Graph().Nodes() {
		if id.FullName() == name {
			h.writeJSON(w, http.StatusOK, h.container.Inspect(id))

			return
		}

		if id.String() == name {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "service '" + name + "' not found"})
	case 1:
		h.writeJSON(w, http.StatusOK, h.container.Inspect(matches[0]))
	default:
		// Same short name in several packages; only the full name is unambiguous.
		h.writeJSON(w, http.StatusConflict, errorBody{
			Error:   "service '" + name + "' is ambiguous",
			Matches: fullNames(matches),
		})
	}
}

func fullNames(ids []berth.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.FullName()
	}

	return out
}

type finding struct {
	Kind       string   `json:"kind"`
	Service    string   `json:"service"`
	Dependency string   `json:"dependency"`
	Path       []string `json:"path,omitempty"`
	Message    string   `json:"message"`
}

type validationBody struct {
	Valid    bool      `json:"valid"`
	Findings []finding `json:"findings"`
}

func (h *handler) validate(w http.ResponseWriter, _ *http.Request) {
	findings := h.container.Validate()

	body := validationBody{
		Valid:    len(findings) == 0,
		Findings: make([]finding, 0, len(findings)),
	}

	for _, f := range findings {
		body.Findings = append(body.Findings, finding{
			Kind:       f.Kind.String(),
			Service:    f.Service.String(),
			Dependency: f.Dependency.String(),
			Path:       names(f.Path),
			Message:    f.Error(),
		})
	}

	status := http.StatusOK
	if !body.Valid {
		status = http.StatusConflict
	}

	h.writeJSON(w, status, body)
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type graphBody struct {
	Nodes []string `json:"nodes"`
	Edges []edge   `json:"edges"`
	Order []string `json:"order"`
}

func (h *handler) graph(w http.ResponseWriter, r *http.Request) {
	g := h.container.Graph()

	if r.URL.Query().Get("format") == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(dot(g)))

		return
	}

	body := graphBody{
		Nodes: names(g.Nodes()),
		Edges: make([]edge, 0),
	}

	for _, e := range g.Edges() {
		body.Edges = append(body.Edges, edge{From: e.From.String(), To: e.To.String()})
	}

	order, err := g.TopologicalSort()
	if err != nil {
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})

		return
	}

	body.Order = names(order)

	h.writeJSON(w, http.StatusOK, body)
}

// dot renders g in Graphviz format, one edge per line.
func dot(g *berth.DependencyGraph) string {
	var b strings.Builder

	b.WriteString("digraph berth {\n")

	for _, id := range g.Nodes() {
		b.WriteString("  " + quote(id.String()) + ";\n")
	}

	for _, e := range g.Edges() {
		b.WriteString("  " + quote(e.From.String()) + " -> " + quote(e.To.String()) + ";\n")
	}

	b.WriteString("}\n")

	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func names(ids []berth.ID) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}

type errorBody struct {
	Error   string   `json:"error"`
	Matches []string `json:"matches,omitempty"`
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		h.logger.Error("encode diagnostics response", zap.Error(err))
		http.Error(w, "encoding failed", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
