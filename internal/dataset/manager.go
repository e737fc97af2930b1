package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/birchwood/ethnograph/internal/analysis"
	"github.com/birchwood/ethnograph/internal/enrich"
	"github.com/birchwood/ethnograph/internal/errors"
	"github.com/birchwood/ethnograph/internal/metrics"
	"github.com/birchwood/ethnograph/internal/models"
)

// Options configures dataset construction.
type Options struct {
	Taxonomy            []models.TopicEntry
	ConfidenceThreshold float64
	BatchSize           int
	Stopwords           map[string]struct{}
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.ConfidenceThreshold == 0 {
		opts.ConfidenceThreshold = enrich.DefaultConfidenceThreshold
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = enrich.DefaultBatchSize
	}
	if opts.Stopwords == nil {
		opts.Stopwords = analysis.DefaultStopwords()
	}
	return opts
}

// FilterResult is returned by every filter operation: the surviving row
// count and the rows themselves.
type FilterResult struct {
	Rows int            `json:"rows"`
	Data []models.Event `json:"data"`
}

// Manager owns the enriched event table. It keeps an immutable pristine
// snapshot and a working view; filters narrow the working view (conjunctive,
// composable) and Reset restores it from the snapshot. Enrichment runs
// exactly once, at construction.
//
// A Manager serves one logical session; concurrent callers must serialize
// access or work on independent managers.
type Manager struct {
	pristine      []models.Event
	view          []models.Event
	emotionLabels []string
	opts          Options
}

// NewManager normalizes the raw posts, runs all enrichment passes, and
// snapshots the result. Construction either fully succeeds or returns an
// error with no partial state.
func NewManager(ctx context.Context, posts []models.PostRecord, registry *enrich.Registry, opts Options) (*Manager, error) {
	opts = opts.withDefaults()
	m := metrics.Get()
	start := time.Now()

	events := Normalize(posts)
	enrich.ApplyTemporal(events)

	if err := enrich.ApplyTopics(ctx, events, opts.Taxonomy, registry, opts.ConfidenceThreshold, opts.BatchSize); err != nil {
		m.DatasetBuildsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("topic enrichment: %w", err)
	}

	labels, err := enrich.ApplyEmotions(ctx, events, registry, opts.BatchSize)
	if err != nil {
		m.DatasetBuildsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("emotion enrichment: %w", err)
	}

	m.DatasetBuildsTotal.WithLabelValues("ok").Inc()
	m.DatasetBuildDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	return newManager(events, labels, opts), nil
}

// NewManagerFromEnriched wraps an already-enriched event table, e.g. one
// reloaded from persistence. No enrichment pass runs.
func NewManagerFromEnriched(events []models.Event, emotionLabels []string, opts Options) *Manager {
	return newManager(events, emotionLabels, opts.withDefaults())
}

func newManager(events []models.Event, labels []string, opts Options) *Manager {
	mgr := &Manager{
		pristine:      events,
		view:          copyEvents(events),
		emotionLabels: labels,
		opts:          opts,
	}
	m := metrics.Get()
	m.DatasetEventsLoaded.WithLabelValues("pristine").Set(float64(len(mgr.pristine)))
	m.DatasetEventsLoaded.WithLabelValues("view").Set(float64(len(mgr.view)))
	return mgr
}

// Events returns the current working view.
func (mgr *Manager) Events() []models.Event {
	return mgr.view
}

// Pristine returns the full enriched snapshot taken at construction.
func (mgr *Manager) Pristine() []models.Event {
	return mgr.pristine
}

// EmotionLabels returns the classifier's label set, sorted.
func (mgr *Manager) EmotionLabels() []string {
	return mgr.emotionLabels
}

// Search narrows the working view to rows whose content contains the query.
// Matching is a case-insensitive literal substring test and composes with
// prior filters.
func (mgr *Manager) Search(query string) FilterResult {
	needle := strings.ToLower(query)
	kept := mgr.view[:0:0]
	for i := range mgr.view {
		if strings.Contains(strings.ToLower(mgr.view[i].Content), needle) {
			kept = append(kept, mgr.view[i])
		}
	}
	return mgr.applyFilter("search", kept)
}

// FilterByTimeRange narrows the working view to rows whose dt lies in
// [start, end] inclusive. Rows without a parseable timestamp never match.
func (mgr *Manager) FilterByTimeRange(start, end time.Time) FilterResult {
	kept := mgr.view[:0:0]
	for i := range mgr.view {
		dt := mgr.view[i].DT
		if dt == nil {
			continue
		}
		if dt.Before(start) || dt.After(end) {
			continue
		}
		kept = append(kept, mgr.view[i])
	}
	return mgr.applyFilter("time_range", kept)
}

// FilterBySources narrows the working view to rows from sources mapped to
// true. An empty or all-false selection is rejected and the working view is
// left unchanged.
func (mgr *Manager) FilterBySources(enabled map[string]bool) (FilterResult, error) {
	allowed := make(map[string]struct{}, len(enabled))
	for source, on := range enabled {
		if on {
			allowed[source] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return FilterResult{}, errors.InvalidFilter("please choose at least one data source")
	}

	kept := mgr.view[:0:0]
	for i := range mgr.view {
		if _, ok := allowed[mgr.view[i].Source]; ok {
			kept = append(kept, mgr.view[i])
		}
	}
	return mgr.applyFilter("sources", kept), nil
}

// Reset restores the working view from the pristine snapshot, discarding
// all prior filters.
func (mgr *Manager) Reset() {
	mgr.view = copyEvents(mgr.pristine)
	m := metrics.Get()
	m.FilterOperationsTotal.WithLabelValues("reset").Inc()
	m.DatasetEventsLoaded.WithLabelValues("view").Set(float64(len(mgr.view)))
}

func (mgr *Manager) applyFilter(kind string, kept []models.Event) FilterResult {
	mgr.view = kept
	m := metrics.Get()
	m.FilterOperationsTotal.WithLabelValues(kind).Inc()
	m.DatasetEventsLoaded.WithLabelValues("view").Set(float64(len(kept)))
	return FilterResult{Rows: len(kept), Data: kept}
}

// TimeAnalysis computes the temporal summary over the current view.
func (mgr *Manager) TimeAnalysis() analysis.TimeStats {
	defer mgr.observe("time")()
	return analysis.TimeStats{
		EventsPerDay:       analysis.EventsPerDay(mgr.view),
		WeekdayHourHeatmap: analysis.WeekdayHourHeatmap(mgr.view),
		Burstiness:         analysis.Burstiness(mgr.view),
	}
}

// ContentAnalysis computes the lexical and semantic summaries over the
// current view.
func (mgr *Manager) ContentAnalysis() analysis.ContentStats {
	defer mgr.observe("content")()
	return analysis.ContentStats{
		WordFrequencies:       analysis.WordFrequencies(mgr.view, mgr.opts.Stopwords, analysis.DefaultTopWords),
		CommonTwoPhrases:      analysis.NGrams(mgr.view, 2, analysis.DefaultTopWords),
		CommonThreePhrases:    analysis.NGrams(mgr.view, 3, analysis.DefaultTopWords),
		AverageEmotionByTopic: analysis.AvgEmotionByTopic(mgr.view),
		ReplyTimeByEmotion:    analysis.ReplyTimeByEmotion(mgr.view),
	}
}

// UserAnalysis computes the user and interaction summaries over the current
// view.
func (mgr *Manager) UserAnalysis() analysis.UserAnalysis {
	defer mgr.observe("users")()
	return analysis.UserAnalysis{
		TopUsers:         analysis.TopUsers(mgr.view),
		Users:            analysis.PerUserStats(mgr.view, mgr.opts.Stopwords),
		InteractionGraph: analysis.BuildInteractionGraph(mgr.view),
	}
}

// Summary computes the dataset overview over the current view.
func (mgr *Manager) Summary() analysis.Summary {
	defer mgr.observe("summary")()
	return analysis.Summarize(mgr.view)
}

func (mgr *Manager) observe(kind string) func() {
	m := metrics.Get()
	m.AnalysisRequestsTotal.WithLabelValues(kind).Inc()
	start := time.Now()
	return func() {
		m.AnalysisRequestSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}

func copyEvents(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	copy(out, events)
	return out
}
