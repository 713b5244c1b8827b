// Package server exposes the dataset as an HTTP dashboard: an explore page
// with the filtered table, a visualizations page, PNG charts and a JSON API.
package server

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"laptop-dashboard/models"
	"laptop-dashboard/services"
	"laptop-dashboard/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Chart file names served under /charts/.
const (
	ChartRamCount     = "ram-count.png"
	ChartHistogram    = "price-histogram.png"
	ChartRamMeanPrice = "ram-mean-price.png"
	ChartYearMean     = "year-mean-price.png"
)

const requestIDHeader = "X-Request-ID"

// Options tune the dashboard.
type Options struct {
	HistogramBins int
}

// Server holds the loaded dataset and the gin engine that serves it. The
// dataset is shared read-only by every request.
type Server struct {
	ds       *models.Dataset
	insights *services.InsightService
	logger   *utils.Logger
	bins     int
	engine   *gin.Engine
}

// New builds the router. The dataset must already be loaded.
func New(ds *models.Dataset, logger *utils.Logger, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	bins := opts.HistogramBins
	if bins <= 0 {
		bins = services.DefaultHistogramBins
	}

	s := &Server{
		ds:       ds,
		insights: services.NewInsightService(logger),
		logger:   logger,
		bins:     bins,
		engine:   gin.New(),
	}

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"num": func(v float64) string { return trimFloat(v) },
	}).ParseFS(templatesFS, "templates/*.html"))
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.Use(gin.Recovery(), requestLogger(logger))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/explore")
	})
	s.engine.GET("/explore", s.handleExplore)
	s.engine.GET("/visualizations", s.handleVisualizations)
	s.engine.GET("/charts/:name", s.handleChart)
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.GET("/listings", s.handleAPIListings)
	api.GET("/insights", s.handleAPIInsights)
}

// Handler returns the HTTP handler for use with an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// requestLogger logs one line per request and tags it with a request ID,
// reusing the caller's X-Request-ID when present.
func requestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		logger.Info("[http] %s %s %d %s id=%s",
			c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start), id)
	}
}
