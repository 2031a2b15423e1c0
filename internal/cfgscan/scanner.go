// Package cfgscan walks search directories and extracts image and icon
// declarations from configuration files.
//
// Configuration files are structured markup with nested atom/hash
// sections. The scanner is deliberately forgiving: a file that fails to
// parse, or an icon record missing required pieces, is logged and
// skipped, and scanning continues with everything else. Nothing here is
// ever fatal to the build.
package cfgscan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/spritefold/icon-atlas-mcp/internal/atlas"
)

// AliasResolver translates host-specific path aliases (for example a
// kit-relative prefix) into plain filesystem paths. The result may
// still be relative to the containing search directory.
type AliasResolver interface {
	ResolvePath(alias string) string
}

// IdentityAlias performs no translation.
type IdentityAlias struct{}

// ResolvePath returns the path unchanged.
func (IdentityAlias) ResolvePath(alias string) string { return alias }

// Result aggregates everything a full scan discovered.
type Result struct {
	// Images maps a symbolic image key to the absolute path of an
	// existing sprite-sheet file. Later declarations for the same key
	// overwrite earlier ones.
	Images map[string]string

	// Icons is the set of icon declarations, keyed by the full
	// (key, source, box) tuple.
	Icons map[atlas.Decl]struct{}
}

// Scanner reads configuration files from an ordered list of search
// directories.
type Scanner struct {
	pattern glob.Glob
	alias   AliasResolver
	log     *zap.Logger
}

// New creates a scanner. pattern is a glob matched case-insensitively
// against filenames (e.g. "*.cfg"). alias may be nil for no
// translation.
func New(pattern string, alias AliasResolver, log *zap.Logger) (*Scanner, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, err
	}
	if alias == nil {
		alias = IdentityAlias{}
	}
	return &Scanner{pattern: g, alias: alias, log: log}, nil
}

// Scan reads every matching file in every search directory. Errors are
// contained per file and per record; the returned result always
// reflects everything that could be read.
func (s *Scanner) Scan(dirs []string) *Result {
	res := &Result{
		Images: make(map[string]string),
		Icons:  make(map[atlas.Decl]struct{}),
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Warn("cannot list search path",
				zap.String("dir", dir), zap.Error(err))
			continue
		}
		for _, ent := range entries {
			if ent.IsDir() || !s.pattern.Match(strings.ToLower(ent.Name())) {
				continue
			}
			s.scanFile(filepath.Join(dir, ent.Name()), dir, res)
		}
	}
	return res
}

// scanFile parses one configuration file and folds its records into
// res. A structural parse failure skips the whole file.
func (s *Scanner) scanFile(path, dir string, res *Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("cannot read config", zap.String("file", path), zap.Error(err))
		return
	}

	doc, err := parseDocument(data)
	if err != nil {
		s.log.Warn("failed to parse config", zap.String("file", path), zap.Error(err))
		return
	}

	for _, section := range uiElementSections(doc) {
		for i := range section.Children {
			h := &section.Children[i]
			if h.XMLName.Local != elemHash {
				continue
			}
			switch h.Type {
			case typeImage:
				s.addImage(h, path, dir, res)
			case typeIcon:
				s.addIcon(h, path, res)
			}
		}
	}
}

// addImage records one Image hash. The stored path goes through alias
// translation, is made absolute relative to the search directory if
// needed, and is kept only when it names an existing file.
func (s *Scanner) addImage(h *node, file, dir string, res *Result) {
	imagePath := s.alias.ResolvePath(h.text())
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(dir, imagePath)
	}
	info, err := os.Stat(imagePath)
	if err != nil || info.IsDir() {
		s.log.Debug("image resource does not exist",
			zap.String("file", file),
			zap.String("key", h.Key),
			zap.String("path", imagePath))
		return
	}
	res.Images[h.Key] = imagePath
}

// addIcon records one Icon hash into the declaration set.
func (s *Scanner) addIcon(h *node, file string, res *Result) {
	if h.Key == "" {
		s.log.Info("no key for icon", zap.String("file", file))
		return
	}

	source := h.childOfType(elemAtom, typeSource)
	if source == nil {
		s.log.Info("no source for icon",
			zap.String("file", file), zap.String("key", h.Key))
		return
	}

	box, err := iconBox(h)
	if err != nil {
		if errors.Is(err, errNoPlacement) {
			s.log.Info("no location or grid specified for icon",
				zap.String("file", file), zap.String("key", h.Key))
		} else {
			s.log.Info("unparseable icon placement",
				zap.String("file", file), zap.String("key", h.Key), zap.Error(err))
		}
		return
	}

	res.Icons[atlas.Decl{Key: h.Key, SourceKey: source.text(), Box: box}] = struct{}{}
}
