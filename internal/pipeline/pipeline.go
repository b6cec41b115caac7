package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"unit-translator/internal/dictionary"
	"unit-translator/internal/filewalker"
	"unit-translator/internal/output"
	"unit-translator/internal/rewriter"
	"unit-translator/internal/translog"
	"unit-translator/internal/worker"

	"github.com/rs/zerolog/log"
)

// Options configures one translation run.
type Options struct {
	InputDir  string
	OutputDir string
	Mode      Mode
	Walker    filewalker.Options
	Workers   int
	RunID     string
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Entry         filewalker.FileEntry
	Output        string
	Direction     dictionary.Direction
	Stats         rewriter.Stats
	Substitutions []rewriter.Substitution
	Err           error
}

// Summary aggregates a run.
type Summary struct {
	Stats       rewriter.Stats
	Files       []FileResult
	Log         *translog.Log
	CacheHits   int64
	CacheMisses int64
}

// Failed returns the files that were skipped.
func (s *Summary) Failed() []FileResult {
	var out []FileResult
	for _, f := range s.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Run translates every selected file under opts.InputDir into opts.OutputDir.
// Per-file failures are counted as skipped; only an unusable input root or an
// output root that cannot be created fail the run.
func Run(ctx context.Context, engine *Engine, opts Options) (*Summary, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = opts.InputDir
	}
	if opts.Mode == "" {
		opts.Mode = ModeForward
	}

	writer, err := output.New(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	walkOpts := opts.Walker
	if inputAbs, err := filepath.Abs(opts.InputDir); err == nil && inputAbs != writer.Root() {
		walkOpts.ExcludePaths = append(append([]string(nil), walkOpts.ExcludePaths...), writer.Root())
	}

	entries, err := filewalker.NewWalker(walkOpts).Walk(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("walk input directory: %w", err)
	}

	log.Info().
		Int("files", len(entries)).
		Str("mode", string(opts.Mode)).
		Int("workers", opts.Workers).
		Msg("Starting translation")

	vc := rewriter.NewCache()
	pool := worker.NewPool[filewalker.FileEntry, FileResult](opts.Workers,
		func(ctx context.Context, entry filewalker.FileEntry) (FileResult, error) {
			return translateFile(engine, opts.Mode, writer, vc, entry)
		},
	)
	tasks := pool.Execute(ctx, entries)

	summary := &Summary{Log: translog.New(opts.RunID, string(opts.Mode))}
	for _, task := range tasks {
		res := task.Result
		res.Entry = task.Input
		if task.Err != nil {
			res.Err = task.Err
			summary.Stats = summary.Stats.Merge(rewriter.Stats{FilesSkipped: 1})
			log.Error().Err(task.Err).Str("file", res.Entry.RelPath).Msg("File skipped")
		} else {
			summary.Stats = summary.Stats.Merge(res.Stats)
			summary.Log.Add(res.Entry.RelPath, res.Substitutions)
			log.Info().
				Str("file", res.Entry.RelPath).
				Str("direction", res.Direction.String()).
				Int("substitutions", res.Stats.Substitutions()).
				Msg("File translated")
		}
		summary.Files = append(summary.Files, res)
	}
	summary.CacheHits, summary.CacheMisses = vc.Stats()

	log.Info().
		Int("processed", summary.Stats.FilesProcessed).
		Int("skipped", summary.Stats.FilesSkipped).
		Int("sections", summary.Stats.SectionsTranslated).
		Int("keys", summary.Stats.KeysTranslated).
		Int("literals", summary.Stats.LiteralsTranslated).
		Int("text", summary.Stats.TextTranslated).
		Msg("Translation complete")

	return summary, nil
}

// translateFile reads, rewrites and writes one file.
func translateFile(engine *Engine, mode Mode, writer *output.Writer, vc *rewriter.ValueCache, entry filewalker.FileEntry) (FileResult, error) {
	res := FileResult{Entry: entry}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return res, fmt.Errorf("read: %w", err)
	}

	text := string(data)
	rw := engine.Choose(mode, text)
	translated := rw.Text(text, vc)

	dest, err := writer.Write(entry.RelPath, []byte(translated.Text))
	res.Output = dest
	if err != nil {
		return res, err
	}

	res.Direction = rw.Direction()
	res.Stats = translated.Stats.Merge(rewriter.Stats{FilesProcessed: 1})
	res.Substitutions = translated.Substitutions
	return res, nil
}
