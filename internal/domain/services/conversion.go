package services

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// ConversionService runs the markdown to presentation pipeline
type ConversionService struct {
	extractor ports.BlockExtractor
	segmenter ports.SlideSegmenter
	themes    ports.ThemeResolver
	assembler ports.PackageAssembler
	logger    ports.Logger
	defaults  entities.Metadata
}

// ConversionOption configures a ConversionService
type ConversionOption func(*ConversionService)

// WithConversionLogger sets the service logger
func WithConversionLogger(logger ports.Logger) ConversionOption {
	return func(s *ConversionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetadataDefaults fills document properties that front matter leaves empty
func WithMetadataDefaults(m entities.Metadata) ConversionOption {
	return func(s *ConversionService) {
		s.defaults = m
	}
}

// NewConversionService creates a new conversion service instance
func NewConversionService(
	extractor ports.BlockExtractor,
	segmenter ports.SlideSegmenter,
	themes ports.ThemeResolver,
	assembler ports.PackageAssembler,
	opts ...ConversionOption,
) *ConversionService {
	s := &ConversionService{
		extractor: extractor,
		segmenter: segmenter,
		themes:    themes,
		assembler: assembler,
		logger:    ports.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildDeck extracts and segments one document
func (s *ConversionService) BuildDeck(ctx context.Context, doc entities.SourceDocument, theme entities.ThemeID) (entities.Deck, error) {
	if err := ctx.Err(); err != nil {
		return entities.Deck{}, err
	}

	extracted := s.extractor.Extract([]byte(doc.Content))
	slides := s.segmenter.Segment(extracted.Blocks, doc.Name)

	return entities.Deck{
		Slides:   slides,
		Theme:    theme,
		Metadata: entities.MetadataFromDocument(extracted.Metadata),
	}, nil
}

// Convert resolves the template, builds every document on a bounded worker
// pool and assembles the results in input order
func (s *ConversionService) Convert(ctx context.Context, docs []entities.SourceDocument, opts entities.ConversionOptions) ([]entities.Artifact, error) {
	start := time.Now()
	logger := s.logger.WithContext(ctx)

	theme, err := s.themes.Resolve(opts.TemplateName())
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		if opts.EmptyInput != entities.EmptyInputAllow {
			return nil, entities.EmptyInputError("no markdown documents to convert")
		}
		logger.Warn("no markdown documents found", "combine", opts.Combine)
		if !opts.Combine {
			return []entities.Artifact{}, nil
		}
	}

	var artifacts []entities.Artifact
	if opts.Combine {
		artifacts, err = s.convertCombined(ctx, docs, theme, opts)
	} else {
		artifacts, err = s.convertSeparate(ctx, docs, theme, opts)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("conversion complete",
		"documents", len(docs),
		"artifacts", len(artifacts),
		"template", theme.ID.String(),
		"duration", time.Since(start))

	return artifacts, nil
}

func (s *ConversionService) convertCombined(ctx context.Context, docs []entities.SourceDocument, theme entities.Theme, opts entities.ConversionOptions) ([]entities.Artifact, error) {
	decks := make([]entities.Deck, len(docs))

	err := runPool(ctx, len(docs), opts.Workers, func(ctx context.Context, i int) error {
		deck, err := s.BuildDeck(ctx, docs[i], theme.ID)
		if err != nil {
			return fmt.Errorf("building %s: %w", docs[i].Name, err)
		}
		if opts.FallbackTitles {
			applyFallbackTitles(deck.Slides, docs[i].Stem())
		}
		decks[i] = deck
		return nil
	})
	if err != nil {
		return nil, err
	}

	merged := entities.MergeDecks(decks...)
	merged.Theme = theme.ID
	merged.Metadata = s.defaults.Apply(merged.Metadata)

	data, err := s.assembler.Assemble(ctx, merged, theme)
	if err != nil {
		return nil, withTemplate(err, theme)
	}

	return []entities.Artifact{{Name: combinedName(opts.Output), Data: data}}, nil
}

func (s *ConversionService) convertSeparate(ctx context.Context, docs []entities.SourceDocument, theme entities.Theme, opts entities.ConversionOptions) ([]entities.Artifact, error) {
	if err := checkArtifactNames(docs); err != nil {
		return nil, err
	}

	artifacts := make([]entities.Artifact, len(docs))

	err := runPool(ctx, len(docs), opts.Workers, func(ctx context.Context, i int) error {
		deck, err := s.BuildDeck(ctx, docs[i], theme.ID)
		if err != nil {
			return fmt.Errorf("building %s: %w", docs[i].Name, err)
		}
		deck.Metadata = s.defaults.Apply(deck.Metadata)

		data, err := s.assembler.Assemble(ctx, deck, theme)
		if err != nil {
			return withSource(withTemplate(err, theme), docs[i].Name)
		}
		artifacts[i] = entities.Artifact{Name: entities.ArtifactName(docs[i].Name), Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// checkArtifactNames rejects inputs whose outputs would overwrite each other,
// such as a.md and a.markdown. Names are compared case-insensitively.
func checkArtifactNames(docs []entities.SourceDocument) error {
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		name := entities.ArtifactName(doc.Name)
		key := strings.ToLower(name)
		if first, ok := seen[key]; ok {
			err := entities.PersistenceError(fmt.Sprintf("%s and %s both write %s", first, doc.Name, name), nil)
			err.Source = doc.Name
			return err
		}
		seen[key] = doc.Name
	}
	return nil
}

// runPool runs task for every index on at most workers goroutines. The first
// failure cancels the shared context so no new task starts; running tasks finish.
func runPool(ctx context.Context, n, workers int, task func(ctx context.Context, i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	semaphore := make(chan struct{}, workers)

	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

schedule:
	for i := 0; i < n; i++ {
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			break schedule
		}
		if ctx.Err() != nil {
			<-semaphore
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := task(ctx, i); err != nil {
				fail(err)
			}
		}(i)
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// applyFallbackTitles titles untitled slides that carry content with the document stem
func applyFallbackTitles(slides []entities.Slide, stem string) {
	title := fallbackTitle(stem)
	if title == "" {
		return
	}
	for i := range slides {
		if !slides[i].HasTitle() && len(slides[i].Elements) > 0 {
			rt := entities.Plain(title)
			slides[i].Title = &rt
		}
	}
}

func fallbackTitle(stem string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func combinedName(output string) string {
	if output == "" {
		return "presentation.pptx"
	}
	return path.Base(strings.ReplaceAll(output, "\\", "/"))
}

func withTemplate(err error, theme entities.Theme) error {
	if ce, ok := err.(*entities.ConvertError); ok && ce.Template == "" {
		ce.Template = theme.ID.String()
	}
	return err
}

func withSource(err error, source string) error {
	if ce, ok := err.(*entities.ConvertError); ok && ce.Source == "" {
		ce.Source = source
	}
	return err
}

// Ensure ConversionService implements ports.ConversionService
var _ ports.ConversionService = (*ConversionService)(nil)
