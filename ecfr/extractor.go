package ecfr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"compliance/concurrent"
	"compliance/types"
)

const (
	partPathTemplate = "/current/title-49/subtitle-B/chapter-I/subchapter-D/part-%s"
	// MaxSummarySections is how many extracted sections a summary returns.
	MaxSummarySections = 5
	summaryHeadings    = 3
)

// Fetcher retrieves raw page bodies. *Client is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	UserAgent   string
	Concurrency int
}

// Extractor builds part summaries from live eCFR pages.
type Extractor struct {
	baseURL string
	fetcher Fetcher
	parser  SectionParser
	runner  *concurrent.Runner[types.Part, types.PartSummary]
	logger  *slog.Logger
	now     func() time.Time
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	return NewExtractorWith(cfg, NewClient(cfg.Timeout, cfg.UserAgent), HTMLParser{}, logger)
}

// NewExtractorWith wires a custom fetcher and parser.
func NewExtractorWith(cfg Config, fetcher Fetcher, parser SectionParser, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		fetcher: fetcher,
		parser:  parser,
		runner: concurrent.NewRunner[types.Part, types.PartSummary](concurrent.RunnerConfig{
			MaxConcurrency: cfg.Concurrency,
			LogPrefix:      "eCFR Part Fetch",
			Logger:         logger,
		}),
		logger: logger,
		now:    time.Now,
	}
}

// PartURL is the eCFR reader page for part.
func (e *Extractor) PartURL(part types.Part) string {
	return e.baseURL + fmt.Sprintf(partPathTemplate, part)
}

// FetchPartSummary fetches and summarises one part. It never fails: errors
// are reported through the Error and FallbackURL fields.
func (e *Extractor) FetchPartSummary(ctx context.Context, part types.Part) types.PartSummary {
	url := e.PartURL(part)
	logger := e.logger.With("part", part, "url", url)

	body, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Error("error fetching part", "error", err)
		return failed(part, url, err)
	}

	doc, err := e.parser.Parse(bytes.NewReader(body))
	if err != nil {
		logger.Error("error parsing part", "error", err)
		return failed(part, url, err)
	}

	title := doc.Title
	if title == "" {
		title = fmt.Sprintf("Part %s", part)
	}

	sections := doc.Sections
	if len(sections) > MaxSummarySections {
		sections = sections[:MaxSummarySections]
	}
	if sections == nil {
		sections = []types.Section{}
	}

	fetchedAt := e.now().UTC()
	logger.Info("fetched part", "sections", len(doc.Sections))

	return types.PartSummary{
		Part:      part,
		Title:     title,
		Summary:   summarize(part, title, url, doc.Sections),
		Sections:  sections,
		FullURL:   url,
		FetchedAt: &fetchedAt,
	}
}

// FetchAll fetches every part concurrently; results follow the order of parts.
func (e *Extractor) FetchAll(ctx context.Context, parts []types.Part) []types.PartSummary {
	return e.runner.Run(ctx, parts, e.FetchPartSummary)
}

func summarize(part types.Part, title, url string, sections []types.Section) string {
	if len(sections) == 0 {
		return fmt.Sprintf("Fetched Part %s - Full content available at %s", part, url)
	}
	n := min(len(sections), summaryHeadings)
	headings := make([]string, 0, n)
	for _, s := range sections[:n] {
		headings = append(headings, s.Heading)
	}
	return fmt.Sprintf("Overview for %s: Key sections include %s.", title, strings.Join(headings, ", "))
}

func failed(part types.Part, url string, err error) types.PartSummary {
	return types.PartSummary{
		Part:        part,
		Error:       fmt.Sprintf("Failed to fetch: %v", err),
		FallbackURL: url,
	}
}
