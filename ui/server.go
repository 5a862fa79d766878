package ui

import (
	"html/template"
	"log"
	"net/http"

	"ksfit/domain/fit"
	"ksfit/internal"
	"ksfit/internal/chart"
	"ksfit/internal/config"
	"ksfit/internal/datasource"
	"ksfit/internal/errors"
	"ksfit/internal/pipeline"
	"ksfit/internal/render"
	"ksfit/internal/view"
	"ksfit/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server represents the web front end of the analysis workflow
type Server struct {
	router    *gin.Engine
	templates *template.Template
	help      template.HTML

	client   pipeline.Submitter
	charts   chart.Renderer
	resolver *datasource.Resolver
	logger   *internal.Logger
}

// distributionOption is one entry of the distribution selector
type distributionOption struct {
	Code string
	Name string
}

type indexPage struct {
	Distributions []distributionOption
	Help          template.HTML
	MaxUploadMB   int64
}

// outcomePage is the fragment swapped into the page after a run
type outcomePage struct {
	State   string
	Notices []view.Notice
	Results template.HTML
	ChartID string
	Chart   template.HTML
}

// NewServer creates a server submitting runs through client
func NewServer(cfg *config.Config, client pipeline.Submitter) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	help, err := loadHelp()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.Default(),
		templates: templates,
		help:      help,
		client:    client,
		charts:    chart.NewSVGRenderer(cfg.Chart.Width, cfg.Chart.Height),
		resolver:  datasource.NewResolver(cfg.Upload.MaxBytes),
		logger:    internal.NewDefaultLogger(),
	}
	s.setupMiddleware(cfg.Upload.MaxBytes)
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware(maxUpload int64) {
	s.router.Use(middleware.LimitUpload(maxUpload))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/run", s.handleRun)
	s.router.GET("/healthz", s.handleHealth)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting ksfit UI on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	options := make([]distributionOption, len(fit.Distributions))
	for i, d := range fit.Distributions {
		options[i] = distributionOption{Code: string(d), Name: fit.DisplayName(string(d))}
	}
	s.renderTemplate(c, "index.html", indexPage{
		Distributions: options,
		Help:          s.help,
		MaxUploadMB:   s.resolver.MaxFileBytes() / (1024 * 1024),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRun executes one pipeline run against a per-request view and returns
// the outcome fragment. Failures are part of the fragment, so the status is
// always 200 and htmx swaps it in.
func (s *Server) handleRun(c *gin.Context) {
	rec := view.NewRecorder()

	form, err := readRunForm(c, s.resolver.MaxFileBytes())
	if err != nil {
		s.renderOutcome(c, fit.StateErrorShown, rec, err)
		return
	}

	dist, err := fit.ParseDistribution(form.distribution)
	if err != nil {
		s.renderOutcome(c, fit.StateErrorShown, rec, err)
		return
	}

	adapter := chart.NewAdapter(rec.Canvas(), s.charts)
	p, err := pipeline.New(pipeline.Deps{
		View:     rec,
		Client:   s.client,
		Renderer: render.NewRenderer(rec, adapter),
		Resolver: s.resolver,
		Logger:   s.logger,
	})
	if err != nil {
		log.Printf("[UI] %v", err)
		c.String(http.StatusInternalServerError, "failed to start the analysis")
		return
	}

	state, _ := p.Run(c.Request.Context(), pipeline.Input{Channels: form.channels, Distribution: dist})
	s.renderOutcome(c, state, rec, nil)
}

func (s *Server) renderOutcome(c *gin.Context, state fit.UIState, rec *view.Recorder, shellErr error) {
	snap := rec.Snapshot()
	page := outcomePage{State: state.String(), Notices: snap.Notices}

	if shellErr != nil {
		level := view.LevelWarning
		if errors.Is(shellErr, errors.CodeFileUnreadable) {
			level = view.LevelDanger
		}
		page.Notices = append(page.Notices, view.Notice{Level: level, Message: errors.UserMessage(shellErr)})
	}

	if state == fit.StateResultsShown && snap.Report != nil {
		fragment, err := render.HTMLFragment(*snap.Report)
		if err != nil {
			log.Printf("[UI] %v", err)
			c.String(http.StatusInternalServerError, "failed to render results")
			return
		}
		page.Results = fragment
		page.ChartID = snap.ChartID
		// go-chart output; every label in it is generated from numbers
		page.Chart = template.HTML(snap.ChartSVG)
	}

	c.Header("X-Run-State", page.State)
	s.renderTemplate(c, "outcome.html", page)
}
