// Package importer parses and records a file of Magic Notes, one per line.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/mathnote/internal/ledger"
	"github.com/Veraticus/mathnote/internal/magicnote"
	"github.com/Veraticus/mathnote/internal/model"
	"github.com/Veraticus/mathnote/internal/service"
)

// ErrNoNotes is returned when the input holds no notes.
var ErrNoNotes = errors.New("no notes to import")

const datePrefixLayout = "2006-01-02"

// Options configures an import run.
type Options struct {
	// Date is used for lines without a date prefix. Zero means today.
	Date time.Time
	// Progress, if set, is called after each line is parsed.
	Progress func(done, total int)
	Workers  int
	// DryRun parses without recording anything.
	DryRun bool
}

// Result is the outcome for one input line.
type Result struct {
	Err    error
	Parsed *model.ParsedTransaction
	Entry  *ledger.Entry
	Date   time.Time
	Text   string
	Line   int
}

// Summary contains statistics about an import run.
type Summary struct {
	Results  []Result // in input order
	Total    int
	Parsed   int
	Failed   int
	Recorded int
	Duration time.Duration
}

// Importer parses notes concurrently and records them in one transaction.
type Importer struct {
	parser   *magicnote.Parser
	recorder *ledger.Recorder
	storage  service.Storage
	logger   *slog.Logger
}

// New creates an Importer. storage may be nil when every run is a dry run.
func New(parser *magicnote.Parser, recorder *ledger.Recorder, storage service.Storage) *Importer {
	return &Importer{
		parser:   parser,
		recorder: recorder,
		storage:  storage,
		logger:   slog.Default(),
	}
}

type job struct {
	date time.Time
	text string
	line int
}

// Run reads notes from r, skipping blank lines and lines starting with '#'.
// A line may start with a YYYY-MM-DD date. Lines that fail to parse are
// reported in the summary and do not stop the run.
func (im *Importer) Run(ctx context.Context, r io.Reader, opts Options) (*Summary, error) {
	start := time.Now()
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}
	if !opts.DryRun && im.storage == nil {
		return nil, fmt.Errorf("importer has no storage; use a dry run")
	}

	jobs, err := readJobs(r, opts.Date)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrNoNotes
	}

	results := im.parseParallel(ctx, jobs, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{Results: results, Total: len(results)}
	if !opts.DryRun {
		recorded, err := im.recordAll(ctx, summary.Results)
		if err != nil {
			return nil, err
		}
		summary.Recorded = recorded
	}
	for _, res := range results {
		if res.Parsed != nil {
			summary.Parsed++
		}
		if res.Err != nil {
			summary.Failed++
		}
	}

	summary.Duration = time.Since(start)
	im.logger.Info("Import finished",
		"total", summary.Total,
		"parsed", summary.Parsed,
		"failed", summary.Failed,
		"recorded", summary.Recorded,
		"dry_run", opts.DryRun,
		"duration", summary.Duration.Round(time.Millisecond))

	return summary, nil
}

func readJobs(r io.Reader, defaultDate time.Time) ([]job, error) {
	var jobs []job
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		date, rest := splitDatePrefix(text, defaultDate)
		jobs = append(jobs, job{line: line, text: rest, date: date})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return jobs, nil
}

// splitDatePrefix peels a leading YYYY-MM-DD off text.
func splitDatePrefix(text string, fallback time.Time) (time.Time, string) {
	head, rest, found := strings.Cut(text, " ")
	if !found {
		return fallback, text
	}
	date, err := time.ParseInLocation(datePrefixLayout, head, time.Local)
	if err != nil {
		return fallback, text
	}
	return date, strings.TrimSpace(rest)
}

// parseParallel parses jobs with a fixed pool of workers and returns the
// results in input order.
func (im *Importer) parseParallel(ctx context.Context, jobs []job, opts Options) []Result {
	workChan := make(chan job, len(jobs))
	for _, j := range jobs {
		workChan <- j
	}
	close(workChan)

	resultsChan := make(chan Result, len(jobs))

	workers := opts.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			im.worker(ctx, workerID, workChan, resultsChan)
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]Result, 0, len(jobs))
	for res := range resultsChan {
		results = append(results, res)
		if opts.Progress != nil {
			opts.Progress(len(results), len(jobs))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Line < results[j].Line
	})
	return results
}

func (im *Importer) worker(ctx context.Context, workerID int, workChan <-chan job, resultsChan chan<- Result) {
	for j := range workChan {
		select {
		case <-ctx.Done():
			return
		default:
		}

		parsed, err := im.parser.Parse(j.text)
		if err != nil {
			im.logger.Debug("worker could not parse line",
				"worker_id", workerID,
				"line", j.line,
				"error", err)
		}
		resultsChan <- Result{Line: j.line, Text: j.text, Date: j.date, Parsed: parsed, Err: err}
	}
}

// recordAll writes every parsed result inside one transaction. A result
// whose write fails keeps its error and the rest are still recorded.
func (im *Importer) recordAll(ctx context.Context, results []Result) (int, error) {
	pending := 0
	for _, res := range results {
		if res.Err == nil {
			pending++
		}
	}
	if pending == 0 {
		return 0, nil
	}

	tx, err := im.storage.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	recorded := 0
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			continue
		}
		entry, err := im.recorder.Record(ctx, tx, res.Parsed, res.Date)
		if err != nil {
			res.Err = err
			continue
		}
		res.Entry = &entry
		recorded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return recorded, nil
}

// Failures returns the results that were not recorded or failed to parse.
func (s *Summary) Failures() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
