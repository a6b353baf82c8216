// Package server exposes the splitter over HTTP.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/revelaction/subsent/render"
	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
	"github.com/revelaction/subsent/storage"
	"github.com/revelaction/subsent/storage/filesystem"
)

// maxBodySize limits the size of posted docs
const maxBodySize = 16 << 20

type Server struct {
	splitter *split.Splitter
	logger   *zap.Logger

	// repo may be nil, the /docs routes then answer 404.
	// mu serializes repository access, stores cache docs lazily.
	mu   sync.Mutex
	repo storage.DocReader

	engine *gin.Engine
}

// ClausesResponse is the body of the split responses.
type ClausesResponse struct {
	Doc     int                 `json:"doc"`
	Title   string              `json:"title,omitempty"`
	Clauses []render.ClauseView `json:"clauses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(splitter *split.Splitter, repo storage.DocReader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		splitter: splitter,
		repo:     repo,
		logger:   logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.logRequest)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/split", s.split)
	router.GET("/docs", s.listDocs)
	router.GET("/docs/:id/clauses", s.docClauses)

	s.engine = router
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) logRequest(c *gin.Context) {
	start := time.Now()

	c.Next()

	fields := []zap.Field{
		zap.String("http.method", c.Request.Method),
		zap.String("http.path", c.Request.URL.Path),
		zap.Int("http.status_code", c.Writer.Status()),
		zap.Int64("http.latency_ms", time.Since(start).Milliseconds()),
		zap.String("http.client_ip", c.ClientIP()),
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("http.error", c.Errors.String()))
	}
	s.logger.Info("request", fields...)
}

func (s *Server) split(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	data, err := c.GetRawData()
	if err != nil {
		s.abort(c, http.StatusRequestEntityTooLarge, err)
		return
	}

	doc, err := filesystem.DecodeDoc(data)
	if err != nil {
		s.abort(c, http.StatusBadRequest, err)
		return
	}

	s.respond(c, doc)
}

func (s *Server) listDocs(c *gin.Context) {
	if s.repo == nil {
		s.abort(c, http.StatusNotFound, errors.New("no doc repository"))
		return
	}

	s.mu.Lock()
	docs, err := s.repo.List(c.Query("label"))
	s.mu.Unlock()
	if err != nil {
		s.abort(c, http.StatusInternalServerError, err)
		return
	}

	if docs == nil {
		docs = []sent.Doc{}
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) docClauses(c *gin.Context) {
	if s.repo == nil {
		s.abort(c, http.StatusNotFound, errors.New("no doc repository"))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.abort(c, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	doc, clauses, err := storage.ReadClauses(s.repo, s.splitter, id)
	s.mu.Unlock()
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, storage.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, sent.ErrInvalidTree):
			status = http.StatusUnprocessableEntity
		}
		s.abort(c, status, err)
		return
	}

	c.JSON(http.StatusOK, ClausesResponse{
		Doc:     doc.Id,
		Title:   doc.Title,
		Clauses: render.NewClauseViews(doc, clauses),
	})
}

func (s *Server) respond(c *gin.Context, doc sent.Doc) {
	tree, err := sent.NewTree(doc)
	if err != nil {
		s.abort(c, http.StatusUnprocessableEntity, err)
		return
	}

	clauses, err := s.splitter.SplitAll(tree)
	if err != nil {
		s.abort(c, http.StatusUnprocessableEntity, err)
		return
	}

	c.JSON(http.StatusOK, ClausesResponse{
		Doc:     doc.Id,
		Title:   doc.Title,
		Clauses: render.NewClauseViews(doc, clauses),
	})
}

func (s *Server) abort(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}
