package smizip

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// holdoutSize is the number of training strings permanently reserved as a
// non-selecting progress-reporting sample, per spec.md §4.C step 1. They
// are read once at the start of Learn and never offered as candidates or
// measured against.
const holdoutSize = 10000

// dictionarySlots is the total number of codebook slots a learned
// Dictionary fills: single chars plus multichars.
const dictionarySlots = 256

// SpeedPreset is the six-parameter tuning tuple controlling per-iteration
// sample size and search depth described in spec.md §4.C. The three
// mandatory presets below reproduce find_best_ngrams.py's slow/medium/fast
// constants exactly; an adaptive "my*" preset family (myslow, mymedium,
// myfast) existed in the original but is not reproduced here since its
// formulas are undocumented
// (see DESIGN.md).
type SpeedPreset struct {
	// NumSmilesToTest and DeltaToTest together set this iteration's sample
	// size: NumSmilesToTest + DeltaToTest*len(multichars).
	NumSmilesToTest int
	DeltaToTest     float64

	// TestAtLeastNMeasured is the minimum number of already-measured
	// candidates an iteration tests before it may stop early.
	TestAtLeastNMeasured int
	// TestAtLeastN is the minimum candidate rank tested in a normal
	// iteration.
	TestAtLeastN int
	// TestAtLeastNSometimes is the deeper minimum rank tested once every
	// SometimesInterval iterations.
	TestAtLeastNSometimes int
	// SometimesInterval is the number of iterations between deep passes.
	SometimesInterval int
}

// The three speed presets from find_best_ngrams.py's main(), in the order
// (num_smiles_to_test, delta_to_test, test_at_least_N_measured,
// test_at_least_N, test_at_least_N_sometimes, sometimes_interval).
var (
	SpeedSlow   = SpeedPreset{1000, 45, 80, 100, 1000, 20}
	SpeedMedium = SpeedPreset{250, 12, 40, 50, 200, 50}
	SpeedFast   = SpeedPreset{100, 4.5, 25, 25, 30, 250}
)

type learnerConfig struct {
	speed    SpeedPreset
	logger   *slog.Logger
	extraMGs []string
	filename string
}

// Option configures a Learner.
type Option func(*learnerConfig)

// WithSpeed selects one of the SpeedPreset tuning tuples. The default is
// SpeedSlow.
func WithSpeed(p SpeedPreset) Option {
	return func(c *learnerConfig) { c.speed = p }
}

// WithLogger sets the structured logger the Learner reports progress to.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *learnerConfig) { c.logger = l }
}

// WithSeedMultigrams seeds the dictionary with multichar tokens already
// known to be worth including, skipping the search for them. This mirrors
// the "initial_multigrams" metadata field described in spec.md §6.
func WithSeedMultigrams(seeds []string) Option {
	return func(c *learnerConfig) { c.extraMGs = append(c.extraMGs, seeds...) }
}

// WithCorpusFilename records the corpus's source (typically a file path)
// for the "filename" metadata field described in spec.md §6. It has no
// effect on the search itself.
func WithCorpusFilename(name string) Option {
	return func(c *learnerConfig) { c.filename = name }
}

// Learner grows a Dictionary from a Corpus by greedy multigram selection,
// as described in spec.md §4.C.
type Learner struct {
	corpus      Corpus
	singlechars []byte
	multichars  []string
	cfg         learnerConfig
}

// NewLearner creates a Learner that will draw training strings from corpus
// and seed its codebook with initialChars (as single-char tokens).
func NewLearner(corpus Corpus, initialChars []byte, opts ...Option) *Learner {
	cfg := learnerConfig{speed: SpeedSlow, logger: slog.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	singles := append([]byte(nil), initialChars...)
	sort.Slice(singles, func(i, j int) bool { return singles[i] < singles[j] })

	return &Learner{
		corpus:      corpus,
		singlechars: singles,
		multichars:  append([]string(nil), cfg.extraMGs...),
		cfg:         cfg,
	}
}

// candidateScore is one ranked candidate for this iteration's selection,
// computed before any expensive remeasurement.
type candidateScore struct {
	ngram    string
	count    int
	value    float64
	measured bool
}

// Learn runs the greedy multigram search to completion, filling every
// remaining codebook slot (spec.md §4.C step 7), or returns
// ErrInsufficientCorpus if the corpus runs dry first or if an iteration
// finds no tested candidate that shortens its sample. ctx is checked once
// per outer iteration; it is not threaded into the DP itself. Alongside the
// learned Dictionary, Learn reports a DictionaryMeta describing the run
// (speed preset, initial chars, seed multigrams, corpus filename) so that
// provenance survives into MarshalDictionary instead of being dropped.
func (l *Learner) Learn(ctx context.Context) (*Dictionary, *DictionaryMeta, error) {
	holdout, err := readN(l.corpus, holdoutSize)
	if err != nil {
		return nil, nil, err
	}

	multichars := append([]string(nil), l.multichars...)
	inDict := make(map[string]struct{}, dictionarySlots)
	for _, m := range multichars {
		inDict[m] = struct{}{}
	}

	parser := NewParser(multichars)
	holdoutLen, err := sumLength(parser, holdout)
	if err != nil {
		return nil, nil, err
	}

	values := newValueTable()
	var lastChosen string
	firstPass := true
	counter := 0

	for len(l.singlechars)+len(multichars) < dictionarySlots {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		numSamples := int(float64(l.cfg.speed.NumSmilesToTest) + float64(len(multichars))*l.cfg.speed.DeltaToTest)
		sample, err := readN(l.corpus, numSamples)
		if err != nil {
			return nil, nil, err
		}

		counter++
		testAtLeast := l.cfg.speed.TestAtLeastN
		if counter == l.cfg.speed.SometimesInterval {
			counter = 0
			testAtLeast = l.cfg.speed.TestAtLeastNSometimes
		}

		origLen, err := sumLength(parser, sample)
		if err != nil {
			return nil, nil, err
		}

		candidates := rankCandidates(sample, multichars, inDict, lastChosen, values, parser)
		numToTest := cutoff(candidates, testAtLeast, l.cfg.speed.TestAtLeastNMeasured, firstPass)

		winner, winnerRank, minLen, err := l.testCandidates(ctx, candidates[:numToTest], multichars, sample, origLen, values)
		if err != nil {
			return nil, nil, err
		}
		if winner == "" {
			return nil, nil, ErrInsufficientCorpus
		}
		firstPass = false

		multichars = append(multichars, winner)
		inDict[winner] = struct{}{}
		parser = NewParser(multichars)
		lastChosen = winner

		newHoldoutLen, err := sumLength(parser, holdout)
		if err != nil {
			return nil, nil, err
		}

		l.cfg.logger.Info("committed ngram",
			"ngram", winner,
			"rank", winnerRank,
			"dict_size", len(l.singlechars)+len(multichars),
			"sample_delta", origLen-minLen,
			"holdout_before", holdoutLen,
			"holdout_after", newHoldoutLen,
		)
		holdoutLen = newHoldoutLen
	}

	dict, err := NewDictionary(l.singlechars, multichars)
	if err != nil {
		return nil, nil, err
	}
	meta := &DictionaryMeta{
		InitialChars:          string(l.singlechars),
		InitialMultigrams:     strings.Join(l.multichars, ","),
		NumSmilesToTest:       l.cfg.speed.NumSmilesToTest,
		DeltaToTest:           l.cfg.speed.DeltaToTest,
		TestAtLeastN:          l.cfg.speed.TestAtLeastN,
		TestAtLeastNMeasured:  l.cfg.speed.TestAtLeastNMeasured,
		TestAtLeastNSometimes: l.cfg.speed.TestAtLeastNSometimes,
		SometimesInterval:     l.cfg.speed.SometimesInterval,
		Filename:              l.cfg.filename,
	}
	return dict, meta, nil
}

// rankCandidates builds this iteration's candidate list, sorted by
// estimated value*count descending with a deterministic tie-break on the
// ngram text, per spec.md §4.C step 4's "Order candidates by value*count".
func rankCandidates(sample, multichars []string, inDict map[string]struct{}, lastChosen string, values *valueTable, parser *Parser) []candidateScore {
	counts := countNgrams(sample)
	candidates := make([]candidateScore, 0, len(counts))
	for ngram, count := range counts {
		if _, ok := inDict[ngram]; ok {
			continue
		}
		value, measured := values.getOrEstimate(ngram, lastChosen, parser)
		candidates = append(candidates, candidateScore{ngram: ngram, count: count, value: value, measured: measured})
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := candidates[i].value*float64(candidates[i].count), candidates[j].value*float64(candidates[j].count)
		if si != sj {
			return si > sj
		}
		return candidates[i].ngram < candidates[j].ngram
	})
	return candidates
}

// cutoff replicates the original loop's early-break test using only the
// pre-existing "measured" flag of each candidate (known before any
// remeasurement runs), so the stopping point can be decided before doing
// the expensive work, enabling that work to be parallelized.
func cutoff(candidates []candidateScore, testAtLeast, testAtLeastMeasured int, firstPass bool) int {
	numTested := 0
	numToTest := 0
	for idx, c := range candidates {
		rank := idx + 1
		if numTested >= testAtLeastMeasured && rank > testAtLeast {
			break
		}
		numToTest = rank
		if firstPass || c.measured {
			numTested++
		}
	}
	return numToTest
}

// testCandidates tentatively adds each of the first len(candidates)
// ranked candidates to multichars, measures the resulting sample length in
// parallel, records every measurement, and returns the candidate giving
// the lowest total length. Parallelizing this loop is safe because the set
// of candidates to test was already fixed by cutoff before any measurement
// ran, so the winner search below can scan results in rank order and
// retains the exact sequential tie-break (first strict improvement wins)
// regardless of goroutine completion order.
func (l *Learner) testCandidates(ctx context.Context, candidates []candidateScore, multichars, sample []string, origLen int, values *valueTable) (winner string, winnerRank, minLen int, err error) {
	lengths := make([]int, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			trial := make([]string, len(multichars)+1)
			copy(trial, multichars)
			trial[len(multichars)] = c.ngram
			trialParser := NewParser(trial)
			length, err := sumLength(trialParser, sample)
			if err != nil {
				return err
			}
			lengths[i] = length
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", 0, 0, err
	}

	minLen = origLen
	for idx, c := range candidates {
		newValue := float64(origLen-lengths[idx]) / float64(c.count)
		values.recordMeasurement(c.ngram, newValue)
		l.cfg.logger.Debug("ngram candidate", "rank", idx+1, "ngram", c.ngram, "length", lengths[idx])
		if lengths[idx] < minLen {
			minLen = lengths[idx]
			winner = c.ngram
			winnerRank = idx + 1
		}
	}
	return winner, winnerRank, minLen, nil
}

// sumLength computes the total token count of sample under parser,
// splitting the work across goroutines: the per-string work is
// embarrassingly parallel since Parser.Length has no shared mutable state.
func sumLength(parser *Parser, sample []string) (int, error) {
	if len(sample) == 0 {
		return 0, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(sample) {
		numWorkers = len(sample)
	}
	chunk := (len(sample) + numWorkers - 1) / numWorkers
	partials := make([]int, numWorkers)

	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > len(sample) {
			end = len(sample)
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			total := 0
			for _, s := range sample[start:end] {
				total += parser.Length(s)
			}
			partials[w] = total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, p := range partials {
		total += p
	}
	return total, nil
}
