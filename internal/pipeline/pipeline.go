// Package pipeline runs one submission from user action to rendered result.
package pipeline

import (
	"context"
	"sync"

	"ksfit/domain/fit"
	"ksfit/internal"
	"ksfit/internal/datasource"
	"ksfit/internal/errors"
	"ksfit/internal/validation"
	"ksfit/internal/view"

	"golang.org/x/sync/semaphore"
)

// requestFailedPrefix introduces remote failures in the notice shown to the user
const requestFailedPrefix = "Error processing the request: "

// Submitter sends an analysis request to the remote service
type Submitter interface {
	Submit(ctx context.Context, req fit.Request) (*fit.Result, error)
}

// ResultRenderer fills the results region from a result and the analyzed sample
type ResultRenderer interface {
	Render(result *fit.Result, sample fit.Sample) view.Report
}

// Input is what the user supplied for one run
type Input struct {
	Channels     datasource.Channels
	Distribution fit.Distribution
}

// Deps are the collaborators of a pipeline. View, Client and Renderer are
// required; Validator, Resolver and Logger fall back to defaults when nil.
type Deps struct {
	View      view.Binding
	Client    Submitter
	Renderer  ResultRenderer
	Validator *validation.Validator
	Resolver  *datasource.Resolver
	Logger    *internal.Logger
}

// Pipeline orchestrates validation, resolution, submission and rendering.
// It owns the UIState and rejects a run that starts while another is active.
type Pipeline struct {
	view      view.Binding
	client    Submitter
	renderer  ResultRenderer
	validator *validation.Validator
	resolver  *datasource.Resolver
	logger    *internal.Logger

	active *semaphore.Weighted

	mu     sync.RWMutex
	state  fit.UIState
	report *view.Report
}

// New creates a pipeline in the Idle state
func New(deps Deps) (*Pipeline, error) {
	switch {
	case deps.View == nil:
		return nil, errors.InternalError("pipeline requires a view binding")
	case deps.Client == nil:
		return nil, errors.InternalError("pipeline requires an analysis client")
	case deps.Renderer == nil:
		return nil, errors.InternalError("pipeline requires a result renderer")
	}

	p := &Pipeline{
		view:      deps.View,
		client:    deps.Client,
		renderer:  deps.Renderer,
		validator: deps.Validator,
		resolver:  deps.Resolver,
		logger:    deps.Logger,
		active:    semaphore.NewWeighted(1),
		state:     fit.StateIdle,
	}
	if p.validator == nil {
		p.validator = validation.NewValidator()
	}
	if p.resolver == nil {
		p.resolver = datasource.NewResolver(0)
	}
	if p.logger == nil {
		p.logger = internal.NewDefaultLogger()
	}
	p.logger = p.logger.Component("Pipeline")
	return p, nil
}

// State returns the current UIState
func (p *Pipeline) State() fit.UIState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// LastReport returns the report of the most recent successful run
func (p *Pipeline) LastReport() (view.Report, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.report == nil {
		return view.Report{}, false
	}
	return *p.report, true
}

func (p *Pipeline) setState(s fit.UIState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
}

// Run executes one submission and returns the state it ended in. Every
// failure is reported on the view and returned; none is fatal.
func (p *Pipeline) Run(ctx context.Context, in Input) (fit.UIState, error) {
	id := fit.NewRunID()

	if !p.active.TryAcquire(1) {
		err := errors.SubmissionInFlight()
		p.logger.Warn("run %s rejected: another run is active", id.Short())
		p.view.Notify(view.Notice{Level: view.LevelWarning, Message: errors.UserMessage(err)})
		return p.State(), err
	}
	defer p.active.Release(1)

	if err := p.validator.CheckChannels(in.Channels); err != nil {
		return p.fail(id, err)
	}
	sample, err := p.resolver.Resolve(in.Channels)
	if err != nil {
		return p.fail(id, err)
	}
	if err := p.validator.CheckSize(sample); err != nil {
		return p.fail(id, err)
	}

	dist := in.Distribution
	if dist == "" {
		dist = fit.DistributionNormal
	}
	req := fit.NewRequest(sample, dist)

	p.setState(fit.StateLoading)
	p.view.SetTriggerEnabled(false)
	p.view.SetBusy(true)
	p.view.HideResults()
	defer func() {
		p.view.SetBusy(false)
		p.view.SetTriggerEnabled(true)
	}()

	p.logger.Info("run %s submitting %d values (%s)", id.Short(), req.Data.Len(), req.Distribution)
	result, err := p.client.Submit(ctx, req)
	if err != nil {
		return p.fail(id, err)
	}

	report := p.renderer.Render(result, req.Data)
	checkConsistency(p.logger, id, req.Data, result.Stats)

	p.mu.Lock()
	p.state = fit.StateResultsShown
	p.report = &report
	p.mu.Unlock()

	p.logger.Info("run %s done: statistic=%s p=%s", id.Short(), report.Statistic, report.PValue)
	return fit.StateResultsShown, nil
}

func (p *Pipeline) fail(id fit.RunID, err error) (fit.UIState, error) {
	notice := noticeFor(err)
	if notice.Level == view.LevelDanger {
		p.logger.Error("run %s failed: %v", id.Short(), err)
	} else {
		p.logger.Info("run %s rejected: %v", id.Short(), err)
	}
	p.view.Notify(notice)
	p.setState(fit.StateErrorShown)
	return fit.StateErrorShown, err
}

// noticeFor maps an error to the notice the user sees. Input problems are
// warnings; unreadable files and remote failures are dangers.
func noticeFor(err error) view.Notice {
	switch errors.GetCode(err) {
	case errors.CodeMutuallyExclusiveInput, errors.CodeMissingInput, errors.CodeEmptyInput,
		errors.CodeInsufficientData, errors.CodeSubmissionInFlight:
		return view.Notice{Level: view.LevelWarning, Message: errors.UserMessage(err)}
	case errors.CodeNoNumericData, errors.CodeFileUnreadable:
		return view.Notice{Level: view.LevelDanger, Message: errors.UserMessage(err)}
	default:
		return view.Notice{Level: view.LevelDanger, Message: requestFailedPrefix + errors.UserMessage(err)}
	}
}
