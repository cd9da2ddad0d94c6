package session

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/tagtint/tagtint/internal/scanner"
)

// DetectKind classifies a buffer so the scanner knows where markup lives.
// Classification is a host concern; the scan itself takes the kind as
// input.
func DetectKind(filename string, content []byte) scanner.ContentKind {
	// Linguist folds .jsx into JavaScript, so decide these by extension
	// before asking enry.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jsx", ".tsx":
		return scanner.KindMarkupExpr
	}

	lang := enry.GetLanguage(filepath.Base(filename), content)

	switch {
	case lang == "TSX":
		return scanner.KindMarkupExpr

	case lang == "XML" || lang == "SVG" || lang == "Vue" || lang == "Svelte":
		return scanner.KindMarkup

	case strings.HasPrefix(lang, "HTML"):
		return scanner.KindMarkup
	}

	return scanner.KindHostLanguage
}
