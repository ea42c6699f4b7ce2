package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// isGroupingCallee matches describe-style grouping constructs, including the
// qualified test.describe form and its modifiers (.only, .serial, ...).
func isGroupingCallee(callee string) bool {
	return callee == "describe" ||
		strings.HasPrefix(callee, "describe.") ||
		callee == "test.describe" ||
		strings.HasPrefix(callee, "test.describe.")
}

// isTestCallee matches test-case call forms.
func isTestCallee(callee string) bool {
	switch callee {
	case "test", "it", "test.only", "it.only":
		return true
	}
	return false
}

// isLifecycleName reports whether a test name denotes a lifecycle hook
// (beforeEach, afterAll, "before navigation", ...), case-insensitive.
func isLifecycleName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "before") || strings.HasPrefix(lower, "after")
}

// calleeText returns the source text of a call expression's callee.
func calleeText(call *sitter.Node, source []byte) string {
	return nodeText(call.ChildByFieldName("function"), source)
}

// callArguments returns the named argument nodes of a call expression.
func callArguments(call *sitter.Node, source []byte) []*sitter.Node {
	argsNode := call.ChildByFieldName("arguments")
	if argsNode == nil {
		return nil
	}

	var args []*sitter.Node
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		args = append(args, argsNode.NamedChild(uint(i)))
	}
	return args
}

// isCallbackNode reports whether a node can serve as a test/suite body.
func isCallbackNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	k := node.Kind()
	return k == "arrow_function" || k == "function_expression"
}

// extractTestFile extracts test chunks from a spec or setup file. Grouped
// and standalone scans are mutually exclusive and jointly exhaustive: a test
// call is emitted as grouped if and only if it is a descendant of a
// recognized grouping call, and exactly once either way.
func extractTestFile(file string, source []byte, root *sitter.Node, opts PlaywrightOptions) []Chunk {
	var chunks []Chunk
	groupCount := 0
	testCount := 0

	// Pass 1: grouped tests inside describe callbacks.
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "call_expression" || !isGroupingCallee(calleeText(n, source)) {
			return true
		}

		args := callArguments(n, source)
		if len(args) < 2 || !isStringLike(args[0]) {
			return true
		}
		suiteName := stringLiteralText(args[0], source)

		// The callback is the last argument; an options object may sit in
		// between.
		body := args[len(args)-1]
		if !isCallbackNode(body) {
			return true
		}

		groupCount++
		walkTree(body, func(inner *sitter.Node) bool {
			if inner.Kind() != "call_expression" {
				return true
			}
			callee := calleeText(inner, source)
			if isGroupingCallee(callee) {
				// Nested groups own their tests; the outer walk visits them
				// in turn.
				return false
			}
			if !isTestCallee(callee) {
				return true
			}
			if chunk, ok := testChunk(file, source, inner, suiteName, opts.IncludeCode); ok {
				chunks = append(chunks, chunk)
				testCount++
			}
			return true
		})
		return true
	})

	// Pass 2: standalone tests, de-duplicated by ancestry against pass 1.
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "call_expression" || !isTestCallee(calleeText(n, source)) {
			return true
		}
		if hasAncestor(n, func(a *sitter.Node) bool {
			return a.Kind() == "call_expression" && isGroupingCallee(calleeText(a, source))
		}) {
			return true
		}
		if chunk, ok := testChunk(file, source, n, "", opts.IncludeCode); ok {
			chunks = append(chunks, chunk)
			testCount++
		}
		return true
	})

	// Setup-only files contain neither groups nor test calls.
	if groupCount == 0 && testCount == 0 {
		return extractEdgeCases(file, source, root, opts.IncludeCode)
	}
	return chunks
}

// testChunk builds a chunk for one test-case call, skipping lifecycle hooks.
func testChunk(file string, source []byte, call *sitter.Node, suiteName string, includeCode bool) (Chunk, bool) {
	args := callArguments(call, source)
	if len(args) < 2 {
		return Chunk{}, false
	}

	name := stringLiteralText(args[0], source)
	if name == "" {
		name = nodeText(args[0], source)
	}
	if isLifecycleName(name) {
		return Chunk{}, false
	}

	chunk := newChunk(name, KindTest, nodeLocation(file, call))
	chunk.TestSuiteName = suiteName
	chunk.TestCaseName = name
	chunk.Documentation = testDocumentation(call, source, name)
	if includeCode {
		chunk.Code = nodeText(call, source)
	}
	return chunk, true
}

// testDocumentation resolves a test's documentation: doc comment with tag
// lines stripped, then adjacent leading comment text, then the test name
// itself.
func testDocumentation(call *sitter.Node, source []byte, name string) string {
	// The call sits inside an expression statement; comments attach there.
	anchor := call
	if parent := anchor.Parent(); parent != nil && parent.Kind() == "expression_statement" {
		anchor = parent
	}

	if doc := docCommentText(anchor, source); doc != "" {
		return doc
	}
	if text := commentText(anchor, source); text != "" {
		return text
	}
	return name
}
