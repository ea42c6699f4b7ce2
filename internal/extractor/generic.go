package extractor

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ExtractGeneric produces a chunk for every function, class, and method in
// the tree, regardless of nesting depth. Matching a node never suppresses
// extraction of its descendants, so nested declarations are emitted
// independently.
func ExtractGeneric(file string, source []byte, root *sitter.Node, includeCode bool) []Chunk {
	var chunks []Chunk

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_declaration", "generator_function_declaration":
			chunks = append(chunks, declarationChunk(file, source, n, KindFunction, includeCode))

		case "class_declaration":
			chunks = append(chunks, declarationChunk(file, source, n, KindClass, includeCode))

		case "method_definition":
			chunks = append(chunks, methodChunk(file, source, n, includeCode))

		case "function_expression":
			chunks = append(chunks, expressionChunk(file, source, n, KindFunction, includeCode))

		case "class":
			chunks = append(chunks, expressionChunk(file, source, n, KindClass, includeCode))

		case "arrow_function":
			// Arrow functions only count when bound to a name.
			if name := boundName(n, source); name != "" {
				chunk := newChunk(name, KindFunction, nodeLocation(file, n))
				populateCommon(&chunk, source, n, includeCode)
				chunks = append(chunks, chunk)
			}
		}
		return true
	})

	return chunks
}

// declarationChunk builds a chunk for a named declaration node. A missing
// name degrades to the anonymous sentinel rather than failing.
func declarationChunk(file string, source []byte, node *sitter.Node, kind ChunkKind, includeCode bool) Chunk {
	name := nodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		name = AnonymousName
	}

	chunk := newChunk(name, kind, nodeLocation(file, node))
	populateCommon(&chunk, source, node, includeCode)
	return chunk
}

// methodChunk builds a chunk for a method definition, reclassifying methods
// named exactly "constructor".
func methodChunk(file string, source []byte, node *sitter.Node, includeCode bool) Chunk {
	name := nodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		name = AnonymousName
	}

	kind := KindMethod
	if name == "constructor" {
		kind = KindConstructor
	}

	chunk := newChunk(name, kind, nodeLocation(file, node))
	populateCommon(&chunk, source, node, includeCode)
	return chunk
}

// expressionChunk builds a chunk for an anonymous function or class
// expression, resolving its name from the nearest enclosing binding.
func expressionChunk(file string, source []byte, node *sitter.Node, kind ChunkKind, includeCode bool) Chunk {
	name := nodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		name = boundName(node, source)
	}
	if name == "" {
		name = AnonymousName
	}

	chunk := newChunk(name, kind, nodeLocation(file, node))
	populateCommon(&chunk, source, node, includeCode)
	return chunk
}

// populateCommon fills the fields shared by every generic chunk.
func populateCommon(chunk *Chunk, source []byte, node *sitter.Node, includeCode bool) {
	if doc := docCommentText(node, source); doc != "" {
		chunk.Documentation = doc
	}
	if includeCode {
		chunk.Code = nodeText(node, source)
	}
}
