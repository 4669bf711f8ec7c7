package extract_test

import (
	"strings"
	"testing"

	"github.com/chriscorrea/prosesift/internal/extract"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Band-pass filter</title>
    <style>p { color: red; }</style>
</head>
<body>
    <h1>Band-pass <i>filter</i></h1>
    <p>A band-pass filter passes frequencies within a certain range.</p>
    <!-- hidden comment -->
    <p>It <b>rejects</b> frequencies outside that range.</p>
    <pre><code>if (f &gt; lo &amp;&amp; f &lt; hi) { pass(); }</code></pre>
    <script>var x = 1;</script>
</body>
</html>`

func TestPage_TitlesAndFragments(t *testing.T) {
	result, err := extract.Page(strings.NewReader(articleHTML), extract.Options{})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if len(result.Titles) != 1 || result.Titles[0] != "Band-pass" {
		t.Errorf("Titles = %q, want [\"Band-pass\"]", result.Titles)
	}

	var fragments []string
	for _, f := range result.Fragments {
		if s := strings.TrimSpace(f); s != "" {
			fragments = append(fragments, s)
		}
	}

	expected := []string{
		"Band-pass",
		"filter",
		"A band-pass filter passes frequencies within a certain range.",
		"It",
		"frequencies outside that range.",
		"rejects",
		"if (f > lo && f < hi) { pass(); }",
		"var x = 1;",
	}
	if strings.Join(fragments, "|") != strings.Join(expected, "|") {
		t.Errorf("Fragments =\n%q\nwant\n%q", fragments, expected)
	}
}

func TestPage_HeadExcluded(t *testing.T) {
	result, err := extract.Page(strings.NewReader(articleHTML), extract.Options{})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	for _, f := range result.Fragments {
		if strings.Contains(f, "color: red") || strings.Contains(f, "hidden comment") {
			t.Errorf("unexpected fragment %q", f)
		}
	}
}

func TestPage_Selector(t *testing.T) {
	page := `<html><body>
<nav><a href="/">Home</a></nav>
<div class="content"><p>Only this paragraph.</p></div>
</body></html>`

	result, err := extract.Page(strings.NewReader(page), extract.Options{Selector: ".content *"})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(result.Fragments) != 1 || result.Fragments[0] != "Only this paragraph." {
		t.Errorf("Fragments = %q, want only the content paragraph", result.Fragments)
	}
}

func TestPage_Empty(t *testing.T) {
	result, err := extract.Page(strings.NewReader(""), extract.Options{})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(result.Titles) != 0 || len(result.Fragments) != 0 {
		t.Errorf("Page(\"\") = %+v, want no titles or fragments", result)
	}
}

func TestPage_Readability(t *testing.T) {
	paragraph := "Baking a carrot cake requires sifting the flour for the finest texture, " +
		"and patient bakers know that the oven temperature matters just as much. "
	page := `<html><head><title>Cake</title></head><body>
<nav><ul><li><a href="/a">Navigation link one</a></li><li><a href="/b">Navigation link two</a></li></ul></nav>
<h1>Carrot cake</h1>
<article>
<p>` + strings.Repeat(paragraph, 4) + `</p>
<p>` + strings.Repeat(paragraph, 4) + `</p>
</article>
</body></html>`

	result, err := extract.Page(strings.NewReader(page), extract.Options{Readability: true})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if len(result.Titles) != 1 || result.Titles[0] != "Carrot cake" {
		t.Errorf("Titles = %q, want [\"Carrot cake\"]", result.Titles)
	}

	joined := strings.Join(result.Fragments, " ")
	if !strings.Contains(joined, "sifting the flour") {
		t.Errorf("main content missing from fragments: %q", joined)
	}
	if strings.Contains(joined, "Navigation link") {
		t.Errorf("navigation survived readability: %q", joined)
	}
}
