package s2tiles

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"github.com/rs/cors"
)

// tilePattern matches /NAME/FACE/Z/X/Y.EXT or, for the web-mercator face,
// the shorter /NAME/Z/X/Y.EXT form used by most slippy-map clients.
var tilePattern = regexp.MustCompile(`^/(?P<name>[-A-Za-z0-9_]+)/(?:(?P<face>[0-5])/)?(?P<z>\d+)/(?P<x>\d+)/(?P<y>\d+)\.(?P<ext>[a-z]+)$`)
var metadataPattern = regexp.MustCompile(`^/(?P<name>[-A-Za-z0-9_]+)/metadata$`)

// Server serves tiles out of a directory of .s2tiles archives, opening and
// caching each archive on first request. Grounded on the teacher's Loop
// (loop.go), simplified because archives are read through a memory-mapped
// mmapStore, so the teacher's bespoke request-coalescing actor loop is not
// needed here. Only local archive files are served.
type Server struct {
	dir     string
	logger  *log.Logger
	metrics *metrics
	mu      sync.RWMutex
	open    map[string]*Archive
}

// NewServer creates a Server rooted at dir, the directory holding .s2tiles
// archive files named NAME.s2tiles.
func NewServer(dir string, logger *log.Logger) *Server {
	return &Server{
		dir:     dir,
		logger:  logger,
		metrics: createMetrics(logger),
		open:    make(map[string]*Archive),
	}
}

func (s *Server) archive(name string) (*Archive, error) {
	s.mu.RLock()
	a, ok := s.open[name]
	s.mu.RUnlock()
	if ok {
		return a, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.open[name]; ok {
		return a, nil
	}
	path := filepath.Join(s.dir, name+".s2tiles")
	store, err := openMmapStore(path)
	if err != nil {
		return nil, fmt.Errorf("s2tiles: open %s: %w", path, err)
	}
	a, err = OpenStore(store, 0, Unknown)
	if err != nil {
		return nil, err
	}
	if _, err := a.GetMetadata(); err != nil {
		return nil, err
	}
	s.open[name] = a
	return a, nil
}

// Handler returns the http.Handler for this server, wrapped with CORS
// middleware when origin is non-empty.
func (s *Server) Handler(origin string) http.Handler {
	var handler http.Handler = http.HandlerFunc(s.serveHTTP)
	if origin != "" {
		handler = cors.New(cors.Options{AllowedOrigins: []string{origin}}).Handler(handler)
	}
	return handler
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if m := metadataPattern.FindStringSubmatch(r.URL.Path); m != nil {
		s.serveMetadata(w, m[1])
		return
	}
	m := tilePattern.FindStringSubmatch(r.URL.Path)
	if m == nil {
		http.NotFound(w, r)
		return
	}
	name := m[1]
	var face uint64
	if m[2] != "" {
		face, _ = strconv.ParseUint(m[2], 10, 8)
	}
	z, _ := strconv.ParseUint(m[3], 10, 8)
	x, _ := strconv.ParseUint(m[4], 10, 32)
	y, _ := strconv.ParseUint(m[5], 10, 32)

	track := s.metrics.startRequest(name)
	a, err := s.archive(name)
	if err != nil {
		track.finish("404", 0)
		http.NotFound(w, r)
		return
	}
	data, ok, err := a.GetFaceTile(uint8(face), uint8(z), uint32(x), uint32(y))
	if err != nil {
		track.finish("500", 0)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		track.finish("404", 0)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
	track.finish("200", len(data))
}

func (s *Server) serveMetadata(w http.ResponseWriter, name string) {
	a, err := s.archive(name)
	if err != nil {
		http.NotFound(w, nil)
		return
	}
	metadata, err := a.GetMetadata()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(metadata)
}
