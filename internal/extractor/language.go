package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Variant selects the grammar used to parse a file. Plain JavaScript shares
// the TypeScript grammar; files with embedded markup use the TSX grammar.
type Variant string

const (
	VariantTypeScript Variant = "typescript"
	VariantTSX        Variant = "tsx"
)

// VariantForFile maps a file extension to its parse variant.
func VariantForFile(path string) Variant {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx", ".jsx":
		return VariantTSX
	default:
		return VariantTypeScript
	}
}

// Parser wraps a tree-sitter parser with the two grammar variants loaded.
// It is reused across files and is not safe for concurrent use; the
// orchestrator owns it exclusively.
type Parser struct {
	parser *sitter.Parser
	ts     *sitter.Language
	tsx    *sitter.Language
}

// NewParser creates a parser with the TypeScript and TSX grammars loaded.
func NewParser() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
		ts:     sitter.NewLanguage(typescript.LanguageTypescript()),
		tsx:    sitter.NewLanguage(typescript.LanguageTSX()),
	}
}

// Parse parses source with the given variant. The caller owns the returned
// tree and must Close it.
func (p *Parser) Parse(source []byte, variant Variant) (*sitter.Tree, error) {
	lang := p.ts
	if variant == VariantTSX {
		lang = p.tsx
	}
	p.parser.SetLanguage(lang)

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", variant)
	}
	return tree, nil
}

// Close releases the underlying parser.
func (p *Parser) Close() {
	p.parser.Close()
}
