package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// walkTree recursively walks a tree-sitter tree in pre-order and calls the
// visitor for each node. Returning false from the visitor skips the node's
// children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// nodeText extracts the source text covered by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// findChildByType finds the first direct child with the given kind.
func findChildByType(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all direct children with the given kind.
func findChildrenByType(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// nodeLocation converts a node's span to a Location for the given file.
func nodeLocation(file string, node *sitter.Node) Location {
	return Location{
		File:        file,
		StartLine:   int(node.StartPosition().Row) + 1,
		EndLine:     int(node.EndPosition().Row) + 1,
		StartColumn: int(node.StartPosition().Column),
		EndColumn:   int(node.EndPosition().Column),
	}
}

// positionWithin computes the line offset and column of a byte offset inside
// a text block: the number of newlines before the offset, and the byte
// distance from the last newline (or the block start).
func positionWithin(text string, offset int) (lineOffset, column int) {
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	lineOffset = strings.Count(prefix, "\n")
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		column = offset - idx - 1
	} else {
		column = offset
	}
	return lineOffset, column
}

// spanWithin converts a [start,end) byte range inside a block of text into a
// Location relative to the block's own start position. Used to report where
// a match is wired up inside a constructor body rather than where the
// surrounding declaration sits.
func spanWithin(file string, blockStart Location, text string, start, end int) Location {
	startLines, startCol := positionWithin(text, start)
	endLines, endCol := positionWithin(text, end)

	loc := Location{
		File:      file,
		StartLine: blockStart.StartLine + startLines,
		EndLine:   blockStart.StartLine + endLines,
	}
	if startLines == 0 {
		loc.StartColumn = blockStart.StartColumn + startCol
	} else {
		loc.StartColumn = startCol
	}
	if endLines == 0 {
		loc.EndColumn = blockStart.StartColumn + endCol
	} else {
		loc.EndColumn = endCol
	}
	return loc
}

// stringLiteralText returns the unquoted text of a string or template string
// node, or "" when the node is not string-like.
func stringLiteralText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "string", "template_string":
		var parts []string
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(uint(i))
			if child.Kind() == "string_fragment" {
				parts = append(parts, nodeText(child, source))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "")
		}
		// Empty literal: strip the delimiters.
		return strings.Trim(nodeText(node, source), "'\"`")
	default:
		return ""
	}
}

// isStringLike reports whether a node can serve as a literal name argument.
func isStringLike(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	k := node.Kind()
	return k == "string" || k == "template_string"
}

// wrapperKinds are nodes that sit between an expression and its binding
// without changing what the expression is bound to.
var wrapperKinds = map[string]bool{
	"parenthesized_expression": true,
	"as_expression":            true,
	"satisfies_expression":     true,
	"non_null_expression":      true,
	"type_assertion":           true,
	"await_expression":         true,
}

// boundName resolves the name an anonymous function or class is bound to by
// walking up through wrapper nodes to the nearest variable declarator or
// object-literal property. Returns "" when the node is not name-bound.
func boundName(node *sitter.Node, source []byte) string {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		kind := cur.Kind()
		if wrapperKinds[kind] {
			continue
		}

		switch kind {
		case "variable_declarator":
			return nodeText(cur.ChildByFieldName("name"), source)
		case "pair":
			key := cur.ChildByFieldName("key")
			if name := stringLiteralText(key, source); name != "" {
				return name
			}
			return nodeText(key, source)
		case "public_field_definition":
			return nodeText(cur.ChildByFieldName("name"), source)
		}
		return ""
	}
	return ""
}

// leadingComment returns the comment block ending on the line directly above
// the node, walking outward through ancestors that start at the same byte so
// that comments above `export` wrappers are still found. Consecutive line
// comments are merged.
func leadingComment(node *sitter.Node, source []byte) string {
	outer := node
	for {
		parent := outer.Parent()
		if parent == nil {
			break
		}
		// Export wrappers and same-start ancestors carry the comment that
		// logically belongs to the declaration.
		if parent.Kind() == "export_statement" || parent.StartByte() == outer.StartByte() {
			outer = parent
			continue
		}
		break
	}

	prev := outer.PrevSibling()
	if prev == nil || prev.Kind() != "comment" {
		return ""
	}
	if int(prev.EndPosition().Row)+1 < int(outer.StartPosition().Row) {
		// A blank line detaches the comment from the declaration.
		return ""
	}

	comments := []string{nodeText(prev, source)}
	for {
		earlier := prev.PrevSibling()
		if earlier == nil || earlier.Kind() != "comment" {
			break
		}
		if int(earlier.EndPosition().Row)+1 < int(prev.StartPosition().Row) {
			break
		}
		comments = append([]string{nodeText(earlier, source)}, comments...)
		prev = earlier
	}
	return strings.Join(comments, "\n")
}

// docCommentText extracts documentation from a leading doc-comment block
// (/** ... */), stripping delimiters and @-prefixed tag lines (e.g. @param,
// @returns). Plain comments are not doc comments.
func docCommentText(node *sitter.Node, source []byte) string {
	raw := leadingComment(node, source)
	if !strings.HasPrefix(raw, "/**") {
		return ""
	}
	return stripCommentMarkup(raw, true)
}

// commentText extracts plain text from a leading comment without filtering
// tag lines.
func commentText(node *sitter.Node, source []byte) string {
	return stripCommentMarkup(leadingComment(node, source), false)
}

// stripCommentMarkup removes comment delimiters and, optionally, @tag lines.
func stripCommentMarkup(raw string, dropTags bool) string {
	if raw == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "/**")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))

		if line == "" {
			continue
		}
		if dropTags && strings.HasPrefix(line, "@") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// hasAncestor reports whether any ancestor of node satisfies the predicate.
func hasAncestor(node *sitter.Node, pred func(*sitter.Node) bool) bool {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if pred(cur) {
			return true
		}
	}
	return false
}
