package extractor

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// locatorTypeMarker identifies locator-typed properties by their declared
// type name (Locator, FrameLocator, ...).
const locatorTypeMarker = "Locator"

// locatorCallMarkers identify locator-construction expressions lexically.
var locatorCallMarkers = []string{"getBy", ".locator(", "frameLocator("}

// Keyword tables for member-group classification. Assertion vocabulary is
// checked first and wins when both are present.
var (
	assertKeywords = []string{"expect", "assert", "verify", "check", "should"}
	actionKeywords = []string{"click", "fill", "goto", "select", "navigate", "submit", "open", "close", "drag", "drop"}
)

var (
	repositoryMarkers = []string{"projects", "repos", "src"}
	moduleMarkers     = []string{"src", "tests", "page-objects"}
)

// extractPageObject extracts chunks from a UI-object file: locators, helper
// properties, and one merged member chunk per class. Files without classes
// fall back to edge-case extraction (which itself falls back to the generic
// classifier), so the profile never returns empty-handed when any
// recognizable shape exists.
func extractPageObject(file string, source []byte, root *sitter.Node, opts PlaywrightOptions) []Chunk {
	var classes []*sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() == "class_declaration" {
			classes = append(classes, n)
		}
		return true
	})

	if len(classes) == 0 {
		return extractEdgeCases(file, source, root, opts.IncludeCode)
	}

	var chunks []Chunk
	for _, class := range classes {
		chunks = append(chunks, extractClass(file, source, class, opts)...)
	}
	return chunks
}

// classContext carries the per-class metadata attached to every chunk the
// class produces.
type classContext struct {
	name       string
	repository string
	module     string
	related    []string
}

func (c *classContext) apply(chunk *Chunk) {
	chunk.OwningClass = c.name
	chunk.Repository = c.repository
	chunk.Module = c.module
	chunk.RelatedTestFiles = c.related
}

// extractClass extracts all chunks for one class declaration.
func extractClass(file string, source []byte, class *sitter.Node, opts PlaywrightOptions) []Chunk {
	className := nodeText(class.ChildByFieldName("name"), source)
	if className == "" {
		className = AnonymousName
	}

	repository, module := inferRepositoryModule(file)
	cctx := &classContext{
		name:       className,
		repository: repository,
		module:     module,
	}
	if opts.Relations != nil {
		cctx.related = opts.Relations.TestsForClass(className)
	}

	body := class.ChildByFieldName("body")
	ctor := findConstructor(body, source)

	var chunks []Chunk
	processed := make(map[string]bool)

	chunks = append(chunks, extractLocators(file, source, body, ctor, cctx, processed, opts.IncludeCode)...)
	chunks = append(chunks, extractSimpleProperties(file, source, body, ctor, cctx, processed, opts.IncludeCode)...)

	if member, ok := extractMemberGroup(file, source, body, cctx, opts.IncludeCode); ok {
		chunks = append(chunks, member)
	}

	// A class with a constructor always produces at least one chunk.
	if len(chunks) == 0 && ctor != nil {
		chunk := newChunk(className, KindClass, nodeLocation(file, ctor))
		cctx.apply(&chunk)
		if opts.IncludeCode {
			chunk.Code = nodeText(ctor, source)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// findConstructor returns the class's constructor method, or nil.
func findConstructor(body *sitter.Node, source []byte) *sitter.Node {
	for _, method := range findChildrenByType(body, "method_definition") {
		if nodeText(method.ChildByFieldName("name"), source) == "constructor" {
			return method
		}
	}
	return nil
}

// constructorAssignment matches `this.<name> = <expr>;` inside a constructor
// body for a specific property name.
func constructorAssignment(name string) *regexp.Regexp {
	return regexp.MustCompile(`this\.` + regexp.QuoteMeta(name) + `\s*=\s*[^;]+;`)
}

// anyConstructorAssignment matches every `this.<name> = <expr>;` form.
var anyConstructorAssignment = regexp.MustCompile(`this\.(\w+)\s*=\s*([^;]+);`)

// referencesLocatorCall reports whether an expression constructs a locator.
func referencesLocatorCall(expr string) bool {
	for _, marker := range locatorCallMarkers {
		if strings.Contains(expr, marker) {
			return true
		}
	}
	return false
}

// extractLocators emits one locator chunk per locator-typed property. The
// reported span is the constructor assignment that wires the locator up,
// computed relative to the constructor body; the property's own initializer
// is only used when no constructor assignment exists.
func extractLocators(file string, source []byte, body, ctor *sitter.Node, cctx *classContext, processed map[string]bool, includeCode bool) []Chunk {
	var ctorBody *sitter.Node
	var ctorText string
	var ctorLoc Location
	if ctor != nil {
		ctorBody = ctor.ChildByFieldName("body")
		if ctorBody != nil {
			ctorText = nodeText(ctorBody, source)
			ctorLoc = nodeLocation(file, ctorBody)
		}
	}

	var chunks []Chunk
	for _, field := range findChildrenByType(body, "public_field_definition") {
		typeText := nodeText(field.ChildByFieldName("type"), source)
		if !strings.Contains(typeText, locatorTypeMarker) {
			continue
		}

		name := nodeText(field.ChildByFieldName("name"), source)
		if name == "" {
			continue
		}

		var loc Location
		var code string
		if match := constructorAssignment(name).FindStringIndex(ctorText); match != nil {
			loc = spanWithin(file, ctorLoc, ctorText, match[0], match[1])
			code = ctorText[match[0]:match[1]]
		} else if value := field.ChildByFieldName("value"); value != nil {
			loc = nodeLocation(file, field)
			code = nodeText(field, source)
		} else {
			// Declared but never initialized: nothing to report.
			continue
		}

		chunk := newChunk(name, KindLocator, loc)
		cctx.apply(&chunk)
		if includeCode {
			chunk.Code = code
		}
		processed[name] = true
		chunks = append(chunks, chunk)
	}
	return chunks
}

// extractSimpleProperties emits helper chunks for constructor assignments and
// direct initializers that do not construct locators. Properties already
// claimed by locator extraction are excluded.
func extractSimpleProperties(file string, source []byte, body, ctor *sitter.Node, cctx *classContext, processed map[string]bool, includeCode bool) []Chunk {
	var chunks []Chunk

	if ctor != nil {
		if ctorBody := ctor.ChildByFieldName("body"); ctorBody != nil {
			ctorText := nodeText(ctorBody, source)
			ctorLoc := nodeLocation(file, ctorBody)

			for _, match := range anyConstructorAssignment.FindAllStringSubmatchIndex(ctorText, -1) {
				name := ctorText[match[2]:match[3]]
				expr := ctorText[match[4]:match[5]]
				if processed[name] || referencesLocatorCall(expr) {
					continue
				}

				chunk := newChunk(name, KindHelper, spanWithin(file, ctorLoc, ctorText, match[0], match[1]))
				cctx.apply(&chunk)
				if includeCode {
					chunk.Code = ctorText[match[0]:match[1]]
				}
				processed[name] = true
				chunks = append(chunks, chunk)
			}
		}
	}

	for _, field := range findChildrenByType(body, "public_field_definition") {
		name := nodeText(field.ChildByFieldName("name"), source)
		value := field.ChildByFieldName("value")
		if name == "" || value == nil || processed[name] {
			continue
		}
		if referencesLocatorCall(nodeText(value, source)) {
			continue
		}

		chunk := newChunk(name, KindHelper, nodeLocation(file, field))
		cctx.apply(&chunk)
		if includeCode {
			chunk.Code = nodeText(field, source)
		}
		processed[name] = true
		chunks = append(chunks, chunk)
	}
	return chunks
}

// extractMemberGroup merges all non-constructor methods of a class into a
// single chunk spanning from the first to the last method in source order.
// The member set's lexical content decides the kind.
func extractMemberGroup(file string, source []byte, body *sitter.Node, cctx *classContext, includeCode bool) (Chunk, bool) {
	var methods []*sitter.Node
	for _, method := range findChildrenByType(body, "method_definition") {
		if nodeText(method.ChildByFieldName("name"), source) == "constructor" {
			continue
		}
		methods = append(methods, method)
	}
	if len(methods) == 0 {
		return Chunk{}, false
	}

	names := make([]string, 0, len(methods))
	var content strings.Builder
	for _, method := range methods {
		names = append(names, nodeText(method.ChildByFieldName("name"), source))
		content.WriteString(nodeText(method, source))
		content.WriteByte('\n')
	}

	kind := classifyMembers(content.String())
	first := nodeLocation(file, methods[0])
	last := nodeLocation(file, methods[len(methods)-1])
	loc := Location{
		File:        file,
		StartLine:   first.StartLine,
		StartColumn: first.StartColumn,
		EndLine:     last.EndLine,
		EndColumn:   last.EndColumn,
	}

	chunk := newChunk(memberGroupName(cctx.name, kind), kind, loc)
	cctx.apply(&chunk)
	chunk.MemberNames = strings.Join(names, ", ")
	if includeCode {
		chunk.Code = content.String()
	}
	return chunk, true
}

// classifyMembers applies the ordered keyword tables: assertion vocabulary
// first, then interaction vocabulary, else helper.
func classifyMembers(content string) ChunkKind {
	lower := strings.ToLower(content)
	for _, kw := range assertKeywords {
		if strings.Contains(lower, kw) {
			return KindAssert
		}
	}
	for _, kw := range actionKeywords {
		if strings.Contains(lower, kw) {
			return KindAction
		}
	}
	return KindHelper
}

// memberGroupName names the merged member chunk after its owning class.
func memberGroupName(className string, kind ChunkKind) string {
	switch kind {
	case KindAssert:
		return fmt.Sprintf("%s_assertions", className)
	case KindAction:
		return fmt.Sprintf("%s_actions", className)
	default:
		return fmt.Sprintf("%s_helpers", className)
	}
}

// inferRepositoryModule derives repository and module context from path
// segments: repository is the first segment after a projects/repos/src
// marker, module the first segment after a src/tests/page-objects marker,
// else the parent directory name. The fallback is deliberate; downstream
// consumers depend on it.
func inferRepositoryModule(file string) (repository, module string) {
	dir := filepath.ToSlash(filepath.Dir(file))
	if dir == "." {
		return "", ""
	}
	segments := strings.Split(dir, "/")

	repository = segmentAfterMarker(segments, repositoryMarkers)
	module = segmentAfterMarker(segments, moduleMarkers)
	if module == "" {
		module = segments[len(segments)-1]
	}
	return repository, module
}

// segmentAfterMarker returns the path segment following the first marker
// occurrence, or "".
func segmentAfterMarker(segments, markers []string) string {
	for i, seg := range segments {
		for _, marker := range markers {
			if seg == marker && i+1 < len(segments) {
				return segments[i+1]
			}
		}
	}
	return ""
}
