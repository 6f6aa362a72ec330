package source

import (
	"log/slog"
	"sync"

	"github.com/gnana997/tokenspec/pkg/token"
	"github.com/gnana997/tokenspec/pkg/util"
)

// LoaderOptions configures LoadAll.
type LoaderOptions struct {
	// Workers overrides the worker count when positive.
	Workers int
	// Logger receives per-file progress. Nil disables progress logging.
	Logger *slog.Logger
}

// LoadAll reads every path concurrently and concatenates the token streams in
// input path order, so output is deterministic regardless of scheduling.
// Files that fail to load are reported in the returned error slice and
// skipped; the token stream covers the files that loaded.
func LoadAll(paths []string, reader *util.FileReader, opts LoaderOptions) ([]token.RawToken, []error) {
	if len(paths) == 0 {
		return nil, nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	type result struct {
		tokens []token.RawToken
		err    error
	}
	results := make([]result, len(paths))

	workers := util.WorkerCountWithOverride(opts.Workers)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			doc, err := LoadFromFile(path, reader)
			if err != nil {
				results[i] = result{err: err}
				return
			}
			results[i] = result{tokens: doc.RawTokens()}
			logger.Debug("loaded token document",
				"path", path,
				"name", doc.Name,
				"tokens", len(doc.Tokens))
		}(i, path)
	}
	wg.Wait()

	var tokens []token.RawToken
	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		tokens = append(tokens, res.tokens...)
	}

	logger.Info("token documents loaded",
		"files", len(paths),
		"failed", len(errs),
		"tokens", len(tokens))
	return tokens, errs
}
