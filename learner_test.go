package smizip

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// repeatedCorpus builds n copies of a single highly repetitive training
// string, large enough to exercise the Learner's holdout reservation plus
// one sampling iteration under SpeedFast.
func repeatedCorpus(n int) []string {
	pattern := strings.Repeat("xy", 20)
	out := make([]string, n)
	for i := range out {
		out[i] = pattern
	}
	return out
}

// paddingMultigrams returns n placeholder multichar tokens that never occur
// in repeatedCorpus's training text, used to pre-fill most of the codebook
// so a test only has to exercise a handful of real Learn iterations.
func paddingMultigrams(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Q%03d", i)
	}
	return out
}

func newFastLearner(strs []string, initialChars []byte, seedCount int) *Learner {
	return NewLearner(NewSliceCorpus(strs), initialChars,
		WithSpeed(SpeedFast),
		WithSeedMultigrams(paddingMultigrams(seedCount)),
	)
}

// 126 single-char tokens plus 129 padding multigrams leaves exactly one
// codebook slot for Learn to actually fill.
const testSingleCount = 126
const testSeedCount = 256 - testSingleCount - 1

func testSingles() []byte {
	singles := make([]byte, testSingleCount)
	for i := range singles {
		singles[i] = byte(i)
	}
	return singles
}

func TestLearnFillsDictionaryAndImprovesCompression(t *testing.T) {
	corpus := repeatedCorpus(holdoutSize + 1000)

	learner := newFastLearner(corpus, testSingles(), testSeedCount)
	dict, meta, err := learner.Learn(context.Background())
	if err != nil {
		t.Fatalf("Learn() error = %v", err)
	}
	if meta.NumSmilesToTest != SpeedFast.NumSmilesToTest {
		t.Fatalf("Learn() metadata NumSmilesToTest = %d, want %d", meta.NumSmilesToTest, SpeedFast.NumSmilesToTest)
	}
	if meta.InitialChars != string(testSingles()) {
		t.Fatalf("Learn() metadata InitialChars = %q, want %q", meta.InitialChars, string(testSingles()))
	}
	if dict.Size() != 256 {
		t.Fatalf("Learn() produced a dictionary of size %d, want 256", dict.Size())
	}

	baseline := NewParser(nil)
	learned := NewParser(dict.MultiChars())
	sample := strings.Repeat("xy", 20)
	if got, want := learned.Length(sample), baseline.Length(sample); got >= want {
		t.Fatalf("learned dictionary did not improve compression: %d tokens vs %d baseline", got, want)
	}
}

func TestLearnIsDeterministic(t *testing.T) {
	corpus := repeatedCorpus(holdoutSize + 1000)
	singles := testSingles()

	d1, _, err := newFastLearner(corpus, singles, testSeedCount).Learn(context.Background())
	if err != nil {
		t.Fatalf("Learn() error = %v", err)
	}
	d2, _, err := newFastLearner(corpus, singles, testSeedCount).Learn(context.Background())
	if err != nil {
		t.Fatalf("Learn() error = %v", err)
	}

	for i := 0; i < 256; i++ {
		if d1.Token(byte(i)) != d2.Token(byte(i)) {
			t.Fatalf("two Learn() runs on identical input disagreed at slot %d: %q vs %q", i, d1.Token(byte(i)), d2.Token(byte(i)))
		}
	}
}

func TestLearnInsufficientCorpus(t *testing.T) {
	corpus := repeatedCorpus(10)
	learner := newFastLearner(corpus, testSingles(), testSeedCount)
	if _, _, err := learner.Learn(context.Background()); err == nil {
		t.Fatalf("Learn() on a tiny corpus should fail with ErrInsufficientCorpus")
	}
}

func TestLearnRespectsContextCancellation(t *testing.T) {
	corpus := repeatedCorpus(holdoutSize + 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	learner := newFastLearner(corpus, testSingles(), testSeedCount)
	if _, _, err := learner.Learn(ctx); err == nil {
		t.Fatalf("Learn() with an already-canceled context should fail")
	}
}
