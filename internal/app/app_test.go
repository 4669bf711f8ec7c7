package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/prosesift/internal/classify"
	"github.com/chriscorrea/prosesift/internal/config"
	"github.com/chriscorrea/prosesift/internal/counter"
	"github.com/chriscorrea/prosesift/internal/extract"
	"github.com/chriscorrea/prosesift/internal/record"
)

// writeCorpora creates a training directory and returns settings pointing at it
func writeCorpora(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"code.txt":    "if(x){y;}\na&&b\nfor(i=0;i<9;i++)\n",
		"nlang.txt":   "The quick fox jumps.\nRain fell over the hills.\n",
		"unclear.txt": "{\"id\": 12, \"tags\": [\"a\", \"b\"]}\n{\"name\": \"x\", \"value\": 3}\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	settings := config.Default()
	settings.TrainPath = dir
	settings.CodeFile = "code.txt"
	settings.NLangFile = "nlang.txt"
	settings.UnclearFile = "unclear.txt"
	return settings
}

func serve(t *testing.T, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func decodeRecords(t *testing.T, out string) []record.Record {
	t.Helper()
	var records []record.Record
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var rec record.Record
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("failed to decode output %q: %v", out, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestRun_OrderPreservingRoundTrip(t *testing.T) {
	url := serve(t, `<html><body><div>
<p>Intro sentence here.</p>
<pre>if(x){return;}</pre>
<p>Conclusion sentence follows.</p>
</div></body></html>`)

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{url},
		Settings: writeCorpora(t),
		Quiet:    true,
	}, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	records := decodeRecords(t, out.String())
	expected := []string{"Intro sentence here.", "Conclusion sentence follows."}
	if len(records) != len(expected) {
		t.Fatalf("Run() produced %d records, want %d: %s", len(records), len(expected), out.String())
	}
	for i, want := range expected {
		if records[i].Sentence != want {
			t.Errorf("record %d = %+v, want sentence %q", i, records[i], want)
		}
	}
	if strings.Contains(out.String(), "-X-") {
		t.Errorf("sentinel leaked into output: %s", out.String())
	}
}

func TestRun_TitlesFirst(t *testing.T) {
	url := serve(t, `<html><body>
<h1>Band-pass filter</h1>
<p>A band-pass filter passes frequencies within a certain range.</p>
</body></html>`)

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{url},
		Settings: writeCorpora(t),
		Quiet:    true,
	}, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	records := decodeRecords(t, out.String())
	if len(records) < 2 {
		t.Fatalf("Run() produced %d records, want at least 2: %s", len(records), out.String())
	}
	if records[0].H1 != "Band-pass filter" {
		t.Errorf("first record = %+v, want h1 title", records[0])
	}
	for _, rec := range records[1:] {
		if rec.Sentence == "" {
			t.Errorf("unexpected non-sentence record %+v", rec)
		}
	}
}

func TestRun_EmptyPage(t *testing.T) {
	url := serve(t, `<html><body><div>   </div><!-- nothing --></body></html>`)

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{url},
		Settings: writeCorpora(t),
		Quiet:    true,
	}, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Run() on empty page wrote %q, want nothing", out.String())
	}
}

func TestRun_MissingCorpus(t *testing.T) {
	settings := writeCorpora(t)
	settings.UnclearFile = "missing.txt"

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{serve(t, "<p>unused</p>")},
		Settings: settings,
		Quiet:    true,
	}, &out)
	if err == nil {
		t.Fatal("Run() expected error for missing corpus")
	}
	if !strings.Contains(err.Error(), "missing.txt") {
		t.Errorf("error %q does not name the missing corpus", err)
	}
}

func TestRun_EmptyCorpus(t *testing.T) {
	settings := writeCorpora(t)
	empty := filepath.Join(settings.TrainPath, "empty.txt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("failed to write empty corpus: %v", err)
	}
	settings.UnclearFile = "empty.txt"

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{serve(t, "<p>Birds fly south in winter.</p>")},
		Settings: settings,
		Quiet:    true,
	}, &out)
	if !errors.Is(err, classify.ErrConfiguration) {
		t.Fatalf("Run() error = %v, want ErrConfiguration", err)
	}
	if out.Len() != 0 {
		t.Errorf("Run() wrote output despite failing: %q", out.String())
	}
}

func TestRun_FailingSources(t *testing.T) {
	var out, stderr bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{filepath.Join(t.TempDir(), "missing.html")},
		Settings: writeCorpora(t),
		Stderr:   &stderr,
	}, &out)
	if err == nil {
		t.Fatal("Run() expected error when every source fails")
	}
	if !strings.Contains(stderr.String(), "Warning") {
		t.Errorf("expected a warning on stderr, got %q", stderr.String())
	}
}

func TestRun_SkipsFailingSource(t *testing.T) {
	good := serve(t, "<p>Birds fly south in winter.</p>")

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{filepath.Join(t.TempDir(), "missing.html"), good},
		Settings: writeCorpora(t),
		Quiet:    true,
	}, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	records := decodeRecords(t, out.String())
	if len(records) != 1 || records[0].Sentence != "Birds fly south in winter." {
		t.Errorf("records = %+v, want the good page's sentence", records)
	}
}

func TestRun_NoSources(t *testing.T) {
	if err := Run(context.Background(), Config{}, &bytes.Buffer{}); err == nil {
		t.Error("Run() expected error without sources")
	}
}

func TestPipeline_ShortFragmentsKept(t *testing.T) {
	p, err := NewPipeline(writeCorpora(t), 0, counter.Characters)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	records, err := p.Process(&extract.Result{Fragments: []string{"x=1;"}})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(records) != 1 || records[0].Sentence != "x=1;" {
		t.Errorf("records = %+v, want the short fragment kept", records)
	}
}

func TestPipeline_OutputLimit(t *testing.T) {
	p, err := NewPipeline(writeCorpora(t), 8, counter.Words)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	page := &extract.Result{Fragments: []string{
		"Birds fly south in winter.",
		"They return when spring arrives.",
		"Nests are rebuilt every year.",
	}}
	records, err := p.Process(page)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	var words int
	for _, rec := range records {
		words += len(strings.Fields(rec.Sentence))
	}
	if words > 8 {
		t.Errorf("emitted %d words, limit is 8: %+v", words, records)
	}
	if len(records) == 0 || records[0].Sentence != "Birds fly south in winter." {
		t.Errorf("records = %+v, want the first sentence kept", records)
	}
}

func TestPipeline_OutputLimitExactFit(t *testing.T) {
	p, err := NewPipeline(writeCorpora(t), 5, counter.Words)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	page := &extract.Result{Fragments: []string{
		"Birds fly south in winter.",
		"They return when spring arrives.",
	}}
	records, err := p.Process(page)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(records) != 1 || records[0].Sentence != "Birds fly south in winter." {
		t.Errorf("records = %+v, want only the sentence that fills the limit", records)
	}
}

func TestRun_DebugLogCountsRecords(t *testing.T) {
	url := serve(t, `<html><body><h1>Filters</h1><p>Birds fly south in winter.</p></body></html>`)

	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Sources:  []string{url},
		Settings: writeCorpora(t),
		Quiet:    true,
	}, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	records := decodeRecords(t, out.String())
	if len(records) == 0 {
		t.Fatalf("Run() produced no records")
	}
	want := fmt.Sprintf("records=%d", len(records))
	if !strings.Contains(logs.String(), "Crawl finished") || !strings.Contains(logs.String(), want) {
		t.Errorf("debug log missing %q: %s", want, logs.String())
	}
}

func TestPipeline_Boilerplate(t *testing.T) {
	settings := writeCorpora(t)
	settings.Boilerplate = true
	p, err := NewPipeline(settings, 0, counter.Characters)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	page := &extract.Result{Fragments: []string{
		"Filters shape the spectrum of a signal.",
		"Copyright all rights reserved.",
	}}
	records, err := p.Process(page)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for _, rec := range records {
		if strings.Contains(rec.Sentence, "Copyright") {
			t.Errorf("boilerplate sentence kept: %+v", records)
		}
	}
}
