package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// defaultSetupName names setup chunks whose call carries no string argument.
const defaultSetupName = "Setup"

// extractEdgeCases collects the patterns that neither the test-file nor the
// page-object strategy recognizes: fixture setup calls, extend-fixture
// properties, exported literal constants, and top-level IIFEs. When none of
// them match, the generic classifier runs as the final safety net.
func extractEdgeCases(file string, source []byte, root *sitter.Node, includeCode bool) []Chunk {
	var chunks []Chunk

	chunks = append(chunks, extractSetupCalls(file, source, root, includeCode)...)
	chunks = append(chunks, extractFixtureProperties(file, source, root, includeCode)...)
	chunks = append(chunks, extractExportedConstants(file, source, root, includeCode)...)
	chunks = append(chunks, extractIIFEs(file, source, root, includeCode)...)

	if len(chunks) == 0 {
		return ExtractGeneric(file, source, root, includeCode)
	}
	return chunks
}

// extractSetupCalls emits a setup chunk per use-fixture call, named by its
// first string argument or "Setup".
func extractSetupCalls(file string, source []byte, root *sitter.Node, includeCode bool) []Chunk {
	var chunks []Chunk
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "call_expression" {
			return true
		}
		// Only the qualified form counts: bare use(...) calls are fixture
		// callbacks, not setup declarations.
		callee := calleeText(n, source)
		if !strings.HasSuffix(callee, ".use") {
			return true
		}

		name := defaultSetupName
		if args := callArguments(n, source); len(args) > 0 {
			if text := stringLiteralText(args[0], source); text != "" {
				name = text
			}
		}

		chunk := newChunk(name, KindSetup, nodeLocation(file, n))
		if includeCode {
			chunk.Code = nodeText(n, source)
		}
		chunks = append(chunks, chunk)
		return true
	})
	return chunks
}

// extractFixtureProperties emits one fixture chunk per property of the
// object literal passed to an extend-fixture call (test.extend({...})).
func extractFixtureProperties(file string, source []byte, root *sitter.Node, includeCode bool) []Chunk {
	var chunks []Chunk
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "call_expression" {
			return true
		}
		callee := calleeText(n, source)
		if !strings.HasSuffix(callee, ".extend") {
			return true
		}

		args := callArguments(n, source)
		if len(args) == 0 || args[0].Kind() != "object" {
			return true
		}

		for _, pair := range findChildrenByType(args[0], "pair") {
			key := pair.ChildByFieldName("key")
			name := stringLiteralText(key, source)
			if name == "" {
				name = nodeText(key, source)
			}
			if name == "" {
				continue
			}

			chunk := newChunk(name, KindFixture, nodeLocation(file, pair))
			if includeCode {
				chunk.Code = nodeText(pair, source)
			}
			chunks = append(chunks, chunk)
		}
		return true
	})
	return chunks
}

// extractExportedConstants emits a constant chunk per exported variable whose
// initializer is an object or array literal.
func extractExportedConstants(file string, source []byte, root *sitter.Node, includeCode bool) []Chunk {
	var chunks []Chunk
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "export_statement" {
			return true
		}
		decl := n.ChildByFieldName("declaration")
		if decl == nil {
			return true
		}
		if k := decl.Kind(); k != "lexical_declaration" && k != "variable_declaration" {
			return true
		}

		for _, declarator := range findChildrenByType(decl, "variable_declarator") {
			value := declarator.ChildByFieldName("value")
			if value == nil {
				continue
			}
			if k := value.Kind(); k != "object" && k != "array" {
				continue
			}

			name := nodeText(declarator.ChildByFieldName("name"), source)
			if name == "" {
				name = AnonymousName
			}

			chunk := newChunk(name, KindConstant, nodeLocation(file, declarator))
			if doc := docCommentText(n, source); doc != "" {
				chunk.Documentation = doc
			}
			if includeCode {
				chunk.Code = nodeText(declarator, source)
			}
			chunks = append(chunks, chunk)
		}
		return true
	})
	return chunks
}

// extractIIFEs emits a chunk per top-level immediately-invoked function
// expression. Only calls directly inside a program-level expression
// statement count; invocations appearing as sub-expressions do not.
func extractIIFEs(file string, source []byte, root *sitter.Node, includeCode bool) []Chunk {
	var chunks []Chunk
	for _, stmt := range findChildrenByType(root, "expression_statement") {
		call := stmt.NamedChild(0)
		if call == nil || call.Kind() != "call_expression" {
			continue
		}

		fn := call.ChildByFieldName("function")
		for fn != nil && fn.Kind() == "parenthesized_expression" {
			fn = fn.NamedChild(0)
		}
		if !isCallbackNode(fn) {
			continue
		}

		name := nodeText(fn.ChildByFieldName("name"), source)
		if name == "" {
			name = AnonymousName
		}

		chunk := newChunk(name, KindIIFE, nodeLocation(file, call))
		if includeCode {
			chunk.Code = nodeText(call, source)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
