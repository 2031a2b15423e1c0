package cfgscan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spritefold/icon-atlas-mcp/internal/atlas"
	"github.com/spritefold/icon-atlas-mcp/internal/logging"
)

// writeFile creates a file with contents under dir.
func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := New("*.cfg", nil, logging.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestScan_ImageAndIcon(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.png", "not-a-real-png") // existence is all the scanner checks
	writeFile(t, dir, "icons.cfg", `<?xml version="1.0"?>
<configuration>
  <atom type="UIElements">
    <hash type="Image" key="im1">sheet.png</hash>
    <hash type="Icon" key="ic1">
      <atom type="Source">im1</atom>
      <atom type="Location">10 20 32 32</atom>
    </hash>
  </atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	wantPath := filepath.Join(dir, "sheet.png")
	if got := res.Images["im1"]; got != wantPath {
		t.Errorf("image path: got %q, want %q", got, wantPath)
	}

	want := atlas.Decl{Key: "ic1", SourceKey: "im1", Box: atlas.Box{X: 10, Y: 20, W: 32, H: 32}}
	if _, ok := res.Icons[want]; !ok {
		t.Errorf("icon declaration missing, got %v", res.Icons)
	}
	if len(res.Icons) != 1 {
		t.Errorf("icon count: got %d, want 1", len(res.Icons))
	}
}

func TestScan_GridExpansion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.png", "x")
	writeFile(t, dir, "icons.cfg", `<configuration>
  <atom type="UIElements">
    <hash type="Image" key="im1">sheet.png</hash>
    <hash type="Icon" key="grid1">
      <atom type="Source">im1</atom>
      <atom type="Grid">1 2 16 16</atom>
    </hash>
  </atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	want := atlas.Decl{Key: "grid1", SourceKey: "im1", Box: atlas.Box{X: 16, Y: 32, W: 16, H: 16}}
	if _, ok := res.Icons[want]; !ok {
		t.Errorf("grid expansion wrong, got %v", res.Icons)
	}
}

func TestScan_LocationTakesPrecedenceOverGrid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icons.cfg", `<configuration>
  <atom type="UIElements">
    <hash type="Icon" key="both">
      <atom type="Source">im1</atom>
      <atom type="Location">1 2 3 4</atom>
      <atom type="Grid">9 9 9 9</atom>
    </hash>
  </atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	want := atlas.Decl{Key: "both", SourceKey: "im1", Box: atlas.Box{X: 1, Y: 2, W: 3, H: 4}}
	if _, ok := res.Icons[want]; !ok {
		t.Errorf("location should win over grid, got %v", res.Icons)
	}
}

func TestScan_SkipConditions(t *testing.T) {
	tests := []struct {
		name string
		icon string
	}{
		{
			"missing key",
			`<hash type="Icon"><atom type="Source">im1</atom><atom type="Location">0 0 8 8</atom></hash>`,
		},
		{
			"missing location and grid",
			`<hash type="Icon" key="nobox"><atom type="Source">im1</atom></hash>`,
		},
		{
			"missing source",
			`<hash type="Icon" key="nosrc"><atom type="Location">0 0 8 8</atom></hash>`,
		},
		{
			"unparseable location",
			`<hash type="Icon" key="bad"><atom type="Source">im1</atom><atom type="Location">0 0 eight</atom></hash>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "icons.cfg",
				`<configuration><atom type="UIElements">`+tt.icon+`</atom></configuration>`)

			res := newTestScanner(t).Scan([]string{dir})
			if len(res.Icons) != 0 {
				t.Errorf("icon should be skipped, got %v", res.Icons)
			}
		})
	}
}

func TestScan_MalformedFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.png", "x")
	writeFile(t, dir, "broken.cfg", `<configuration><atom type=`)
	writeFile(t, dir, "good.cfg", `<configuration>
  <atom type="UIElements">
    <hash type="Image" key="im1">sheet.png</hash>
  </atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	if _, ok := res.Images["im1"]; !ok {
		t.Error("scan should continue past a malformed file")
	}
}

func TestScan_ImageMustExist(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icons.cfg", `<configuration>
  <atom type="UIElements">
    <hash type="Image" key="ghost">nonexistent.png</hash>
  </atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	if len(res.Images) != 0 {
		t.Errorf("missing image file should be dropped, got %v", res.Images)
	}
}

func TestScan_LastWriteWins(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeFile(t, dir1, "a.png", "x")
	writeFile(t, dir2, "b.png", "x")
	writeFile(t, dir1, "first.cfg", `<configuration>
  <atom type="UIElements"><hash type="Image" key="im1">a.png</hash></atom>
</configuration>`)
	writeFile(t, dir2, "second.cfg", `<configuration>
  <atom type="UIElements"><hash type="Image" key="im1">b.png</hash></atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir1, dir2})

	want := filepath.Join(dir2, "b.png")
	if got := res.Images["im1"]; got != want {
		t.Errorf("last declaration should win: got %q, want %q", got, want)
	}
}

func TestScan_AbsolutePathKeptAsIs(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	abs := writeFile(t, other, "far.png", "x")
	writeFile(t, dir, "icons.cfg", `<configuration>
  <atom type="UIElements"><hash type="Image" key="im1">`+abs+`</hash></atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	if got := res.Images["im1"]; got != abs {
		t.Errorf("absolute path changed: got %q, want %q", got, abs)
	}
}

func TestScan_ExtensionMatchIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.png", "x")
	writeFile(t, dir, "UPPER.CFG", `<configuration>
  <atom type="UIElements"><hash type="Image" key="im1">sheet.png</hash></atom>
</configuration>`)
	writeFile(t, dir, "notes.txt", `<configuration>
  <atom type="UIElements"><hash type="Image" key="im2">sheet.png</hash></atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	if _, ok := res.Images["im1"]; !ok {
		t.Error("uppercase extension should match")
	}
	if _, ok := res.Images["im2"]; ok {
		t.Error("non-matching extension should be ignored")
	}
}

func TestScan_MissingSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.png", "x")
	writeFile(t, dir, "icons.cfg", `<configuration>
  <atom type="UIElements"><hash type="Image" key="im1">sheet.png</hash></atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{filepath.Join(dir, "does-not-exist"), dir})

	if _, ok := res.Images["im1"]; !ok {
		t.Error("scan should continue past an unreadable search path")
	}
}

// prefixAlias strips a fixed alias prefix, standing in for the host's
// local-alias translation.
type prefixAlias struct{ prefix string }

func (p prefixAlias) ResolvePath(alias string) string {
	return strings.TrimPrefix(alias, p.prefix)
}

func TestScan_AliasTranslation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.png", "x")
	writeFile(t, dir, "icons.cfg", `<configuration>
  <atom type="UIElements"><hash type="Image" key="im1">kit:sheet.png</hash></atom>
</configuration>`)

	s, err := New("*.cfg", prefixAlias{prefix: "kit:"}, logging.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res := s.Scan([]string{dir})

	want := filepath.Join(dir, "sheet.png")
	if got := res.Images["im1"]; got != want {
		t.Errorf("alias translation: got %q, want %q", got, want)
	}
}

func TestScan_DuplicateTuplesCollapse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icons.cfg", `<configuration>
  <atom type="UIElements">
    <hash type="Icon" key="twin">
      <atom type="Source">im1</atom>
      <atom type="Location">0 0 8 8</atom>
    </hash>
    <hash type="Icon" key="twin">
      <atom type="Source">im1</atom>
      <atom type="Location">0 0 8 8</atom>
    </hash>
    <hash type="Icon" key="twin">
      <atom type="Source">im1</atom>
      <atom type="Location">8 0 8 8</atom>
    </hash>
  </atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	// Identical tuples collapse; same key with a different box survives.
	if len(res.Icons) != 2 {
		t.Errorf("icon set size: got %d, want 2 (%v)", len(res.Icons), res.Icons)
	}
}

func TestParseQuad(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"plain", "1 2 3 4", false},
		{"extra whitespace", "  1   2  3 4 ", false},
		{"too few", "1 2 3", true},
		{"too many", "1 2 3 4 5", true},
		{"non-numeric", "1 2 x 4", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, err := parseQuad(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseQuad(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestUIElementsMatchedAtAnyDepth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.png", "x")
	writeFile(t, dir, "nested.cfg", `<configuration>
  <atom type="SomeWrapper">
    <atom type="UIElements">
      <hash type="Image" key="im1">sheet.png</hash>
    </atom>
  </atom>
</configuration>`)

	res := newTestScanner(t).Scan([]string{dir})

	if _, ok := res.Images["im1"]; !ok {
		t.Error("UIElements sections should be found at any nesting depth")
	}
}
