package analysis_test

import (
	"bytes"
	"encoding/json"
	"reflect"
	"slices"
	"sync"
	"testing"

	"github.com/5w1tchy/passcheck-api/internal/analysis"
	"github.com/5w1tchy/passcheck-api/internal/reference"
)

func newAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	return analysis.New(reference.Default(), analysis.DefaultOptions())
}

func TestAnalyze_EmptyPassword(t *testing.T) {
	res := newAnalyzer(t).Analyze("")

	if res.Length != 0 || res.Strength != 0 || res.Complexity != 0 || res.Entropy != 0 {
		t.Fatalf("expected zero scores, got %+v", res)
	}
	if res.Patterns == nil || len(res.Patterns) != 0 {
		t.Errorf("expected empty non-nil patterns, got %#v", res.Patterns)
	}
	if res.DictionaryWords == nil || len(res.DictionaryWords) != 0 {
		t.Errorf("expected empty non-nil dictionary words, got %#v", res.DictionaryWords)
	}
	if res.ReuseRisk || res.Common {
		t.Error("empty password must not be flagged")
	}
	if !reflect.DeepEqual(res.Recommendations, []string{analysis.MsgReady}) {
		t.Errorf("expected single ready message, got %v", res.Recommendations)
	}
	if res.CrackTime != analysis.Instant {
		t.Errorf("expected INSTANT, got %s", res.CrackTime)
	}
}

func TestAnalyze_Troubadour(t *testing.T) {
	res := newAnalyzer(t).Analyze("Tr0ub4dor&3")

	got := [5]int{res.Length, res.Upper, res.Lower, res.Number, res.Symbol}
	want := [5]int{11, 1, 6, 3, 1}
	if got != want {
		t.Errorf("counts: want %v, got %v", want, got)
	}
	if res.Complexity != 4 {
		t.Errorf("complexity: want 4, got %d", res.Complexity)
	}
	if res.Strength != 93 {
		t.Errorf("strength: want 93, got %d", res.Strength)
	}
	if res.CrackTime != analysis.Years {
		t.Errorf("crack time: want YEARS, got %s (%.2f bits)", res.CrackTime, res.Entropy)
	}
	if res.Rating != analysis.Strong {
		t.Errorf("rating: want strong, got %s", res.Rating)
	}
	if !reflect.DeepEqual(res.Recommendations, []string{analysis.MsgLonger}) {
		t.Errorf("recommendations: got %v", res.Recommendations)
	}
}

func TestAnalyze_CommonPassword(t *testing.T) {
	res := newAnalyzer(t).Analyze("password")

	if !res.Common {
		t.Fatal("expected password to be common")
	}
	if !res.ReuseRisk {
		t.Error("common passwords carry reuse risk")
	}
	want := []string{
		analysis.MsgLonger,
		analysis.MsgUpper,
		analysis.MsgDigits,
		analysis.MsgSymbols,
		analysis.MsgCommon,
		analysis.MsgDictionary,
		analysis.MsgReuse,
		analysis.MsgRandomness,
	}
	if !reflect.DeepEqual(res.Recommendations, want) {
		t.Errorf("recommendations:\nwant %v\ngot  %v", want, res.Recommendations)
	}
}

func TestAnalyze_CommonIsCaseInsensitive(t *testing.T) {
	if !newAnalyzer(t).Analyze("QWERTY").Common {
		t.Error("expected QWERTY to match qwerty")
	}
}

func TestAnalyze_Excellent(t *testing.T) {
	res := newAnalyzer(t).Analyze("Xk9$mP2!vLq#")

	if !reflect.DeepEqual(res.Recommendations, []string{analysis.MsgExcellent}) {
		t.Fatalf("expected excellent, got %v (patterns=%v words=%v)", res.Recommendations, res.Patterns, res.DictionaryWords)
	}
	if res.Complexity != 5 || res.Strength != 100 {
		t.Errorf("want complexity 5 strength 100, got %d/%d", res.Complexity, res.Strength)
	}
	if res.CrackTime != analysis.Centuries {
		t.Errorf("want CENTURIES, got %s", res.CrackTime)
	}
}

func TestAnalyze_ShortPasswordRecommendation(t *testing.T) {
	res := newAnalyzer(t).Analyze("Ab1!")
	if len(res.Recommendations) == 0 || res.Recommendations[0] != analysis.MsgMinLength {
		t.Fatalf("expected length warning first, got %v", res.Recommendations)
	}
	if slices.Contains(res.Recommendations, analysis.MsgLonger) {
		t.Error("length messages are mutually exclusive")
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	an := newAnalyzer(t)
	inputs := []string{
		"", "a", "Password1", "Ωmega✓日本", "   ", "Tr0ub4dor&3",
		"correct horse battery staple", "ÄÖÜäöüß123", "😀😀😀", "zaq12wsx",
	}
	for _, in := range inputs {
		res := an.Analyze(in)
		if res.Upper+res.Lower+res.Number+res.Symbol != res.Length {
			t.Errorf("%q: class counts do not sum to length: %+v", in, res)
		}
		if res.Strength < 0 || res.Strength > 100 {
			t.Errorf("%q: strength out of range: %d", in, res.Strength)
		}
		if res.Complexity < 0 || res.Complexity > 5 {
			t.Errorf("%q: complexity out of range: %d", in, res.Complexity)
		}
		p := analysis.ProfileOf([]rune(in))
		if got := analysis.Strength(p); got != res.Strength {
			t.Errorf("%q: recomputed strength %d != %d", in, got, res.Strength)
		}
		if res.CrackTime != analysis.CrackTimeFor(res.Entropy) {
			t.Errorf("%q: crack time not derived from entropy", in)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	an := newAnalyzer(t)
	for _, in := range []string{"", "summer2024!", "P@ssw0rd", "qwerty123"} {
		a, b := an.Analyze(in), an.Analyze(in)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%q: results differ", in)
		}
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		if !bytes.Equal(ja, jb) {
			t.Fatalf("%q: serialized results differ", in)
		}
	}
}

func TestAnalyze_ConcurrentCalls(t *testing.T) {
	an := newAnalyzer(t)
	want := an.Analyze("Summer2024")

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := an.Analyze("Summer2024"); !reflect.DeepEqual(got, want) {
				errs <- "concurrent result differs"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestAnalyze_JSONSchema(t *testing.T) {
	b, err := json.Marshal(newAnalyzer(t).Analyze(""))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	fields := []string{
		"length", "upper", "lower", "number", "symbol", "complexity", "entropy",
		"entropy_score", "common", "patterns", "dictionary_words", "reuse_risk",
		"strength", "rating", "crack_time", "recommendations",
	}
	for _, f := range fields {
		if _, ok := m[f]; !ok {
			t.Errorf("missing field %q in %s", f, b)
		}
	}
	if !bytes.Contains(b, []byte(`"patterns":[]`)) || !bytes.Contains(b, []byte(`"dictionary_words":[]`)) {
		t.Errorf("expected empty arrays, got %s", b)
	}
}

func TestLoadOptionsFromEnv(t *testing.T) {
	t.Setenv("ANALYSIS_MIN_WORD_LENGTH", "6")
	if got := analysis.LoadOptionsFromEnv().MinWordLength; got != 6 {
		t.Errorf("want 6, got %d", got)
	}
	t.Setenv("ANALYSIS_MIN_WORD_LENGTH", "nope")
	if got := analysis.LoadOptionsFromEnv().MinWordLength; got != 4 {
		t.Errorf("want default 4, got %d", got)
	}
}
