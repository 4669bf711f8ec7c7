package app

import (
	"fmt"
	"log/slog"

	"github.com/chriscorrea/prosesift/internal/boilerplate"
	"github.com/chriscorrea/prosesift/internal/classify"
	"github.com/chriscorrea/prosesift/internal/config"
	"github.com/chriscorrea/prosesift/internal/counter"
	"github.com/chriscorrea/prosesift/internal/extract"
	"github.com/chriscorrea/prosesift/internal/filter"
	"github.com/chriscorrea/prosesift/internal/record"
	"github.com/chriscorrea/prosesift/internal/sentences"
	"github.com/chriscorrea/prosesift/internal/signature"
	"github.com/chriscorrea/prosesift/internal/training"
)

// Pipeline turns the extracted text of a page into output records. It is built
// once per run and holds no per-page state.
type Pipeline struct {
	filter      *filter.Filter
	segmenter   sentences.Segmenter
	boilerplate *boilerplate.Detector // nil when disabled
	limiter     counter.Counter       // nil when output is unlimited
	limit       int
}

// NewPipeline loads the training corpora named by settings and builds the classifier
// and the stages around it. A missing corpus or an empty label fails the build.
func NewPipeline(settings config.Config, limit int, method counter.Method) (*Pipeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	examples, err := training.Load(settings.CorpusPaths()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}

	classifier, err := classify.New(examples, signature.Transform, classify.WithDebug(settings.Debug))
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	return newPipeline(classifier, settings, limit, method)
}

// newPipeline assembles the stages around an already built classifier
func newPipeline(classifier filter.Classifier, settings config.Config, limit int, method counter.Method) (*Pipeline, error) {
	p := &Pipeline{
		filter: filter.New(classifier,
			filter.WithMinLength(settings.MinLength),
			filter.WithSentinel(settings.Sentinel),
		),
		limit: limit,
	}
	p.segmenter = sentences.NewSentinelSplitter(sentences.NewProse(), p.filter.Sentinel())

	if settings.Boilerplate {
		p.boilerplate = boilerplate.New()
	}

	if limit > 0 {
		c, err := counter.New(method)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", method, err)
		}
		p.limiter = c
	}

	return p, nil
}

// Process returns the records of one page: its h1 titles, then its sentences, in
// document order.
func (p *Pipeline) Process(page *extract.Result) ([]record.Record, error) {
	var records []record.Record
	for _, title := range page.Titles {
		records = append(records, record.Title(title))
	}

	blob := p.filter.Blob(page.Fragments)
	sents, err := p.segmenter.Segment(blob)
	if err != nil {
		return nil, err
	}
	slog.Debug("Page segmented", "fragments", len(page.Fragments), "blobLength", len(blob), "sentences", len(sents))

	if p.boilerplate != nil {
		sents = p.boilerplate.Filter(sents)
	}

	var budget *counter.Budget
	if p.limiter != nil {
		budget = counter.NewBudget(p.limiter, p.limit)
	}
	for _, s := range sents {
		if budget != nil {
			// whole sentences only: stop at the first one that no longer fits
			if budget.Exhausted() || !budget.Take(s) {
				slog.Debug("Output limit reached", "used", budget.Used(), "limit", p.limit)
				break
			}
		}
		records = append(records, record.Sentence(s))
	}

	return records, nil
}
