package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/dataset"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/generation"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/logger"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/markdown"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/research"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/storage"
)

// ErrEmptyIndustry is returned for an empty industry.
var ErrEmptyIndustry = errors.New("industry must not be empty")

// Researcher collects industry snippets.
type Researcher interface {
	Research(ctx context.Context, industry string) model.Result[[]string]
}

// UseCaseGenerator turns snippets into use cases.
type UseCaseGenerator interface {
	Generate(ctx context.Context, snippets []string) model.Result[[]string]
}

// History persists finished runs.
type History interface {
	SaveRun(ctx context.Context, report *model.Report) (int64, error)
}

// Dependencies collaborators of an Engine
type Dependencies struct {
	Researcher Researcher
	Generator  UseCaseGenerator
	Sources    []dataset.Source
	History    History // optional
	OutputDir  string
}

// Engine runs the research, generation and resource collection pipeline.
type Engine struct {
	researcher Researcher
	generator  UseCaseGenerator
	sources    []dataset.Source
	history    History
	outputDir  string
}

// NewEngine builds every client from cfg. store may be nil.
func NewEngine(ctx context.Context, cfg *config.Config, store *storage.Storage) (*Engine, error) {
	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	gen, err := generation.NewGenerator(ctx, cfg.LLM, cfg.HTTP.Timeout)
	if err != nil {
		return nil, err
	}

	sources, err := dataset.NewSources(cfg, client)
	if err != nil {
		return nil, fmt.Errorf("dataset sources init failed: %w", err)
	}

	deps := Dependencies{
		Researcher: research.NewAgent(cfg.Research, client),
		Generator:  generation.NewAgent(gen, cfg.LLM.MaxTokens, generation.NewLimiter(cfg.Concurrency)),
		Sources:    sources,
		OutputDir:  cfg.Output.Dir,
	}
	if store != nil {
		deps.History = store
	}
	return NewWithDependencies(deps), nil
}

// NewWithDependencies creates an engine from explicit collaborators.
func NewWithDependencies(d Dependencies) *Engine {
	return &Engine{
		researcher: d.Researcher,
		generator:  d.Generator,
		sources:    d.Sources,
		history:    d.History,
		outputDir:  d.OutputDir,
	}
}

// Run executes research, generation and resource collection for industry.
func (e *Engine) Run(ctx context.Context, industry string) (*model.Report, error) {
	if industry == "" {
		return nil, ErrEmptyIndustry
	}
	logger.Log.Infof("Starting use case run for [%s]", industry)

	snippets, err := Resolve(e.researcher.Research(ctx, industry))
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("Research for [%s] returned %d snippets", industry, len(snippets))

	useCases, err := Resolve(e.generator.Generate(ctx, snippets))
	if err != nil {
		return nil, err
	}

	links, file, err := e.CollectResources(ctx, industry)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		Industry: industry,
		UseCases: useCases,
		Datasets: links,
		File:     file,
	}

	if e.history != nil {
		if id, err := e.history.SaveRun(ctx, report); err != nil {
			logger.Log.Errorf("Failed to save run history [%s]: %v", industry, err)
		} else {
			logger.Log.Debugf("Saved run [%d] for [%s]", id, industry)
		}
	}

	logger.Log.Infof("Finished use case run for [%s]: %d use cases, %d dataset links", industry, len(useCases), len(links))
	return report, nil
}

// CollectResources queries every dataset source in order, concatenates the
// links and writes them to the markdown artifact.
func (e *Engine) CollectResources(ctx context.Context, industry string) ([]string, string, error) {
	links := []string{}
	for _, src := range e.sources {
		got, err := Resolve(src.Search(ctx, industry))
		if err != nil {
			return nil, "", err
		}
		logger.Log.Debugf("Dataset source [%s] returned %d entries for [%s]", src.Name(), len(got), industry)
		links = append(links, got...)
	}

	file, err := markdown.Save(e.outputDir, industry, links)
	if err != nil {
		_, err = Resolve(model.Fail[[]string](model.CallMarkdown, model.FailureIO, err))
		return nil, "", err
	}
	logger.Log.Infof("Resource links saved to %s", file)
	return links, file, nil
}
