package extractor

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// DefaultPageObjectMarkers identify import paths that reference UI-object
// modules.
var DefaultPageObjectMarkers = []string{"page-objects", "pageobjects", "pages"}

// Vertex key prefixes keep class names and file paths disjoint in the graph.
const (
	classKeyPrefix = "class:"
	fileKeyPrefix  = "file:"
)

// RelationshipGraph is the bidirectional mapping between UI-object class
// names and the test files that import them. It is populated once by the
// import pre-pass and treated as an immutable lookup table afterwards.
type RelationshipGraph struct {
	g graph.Graph[string, string]
}

// NewRelationshipGraph creates an empty relationship graph.
func NewRelationshipGraph() *RelationshipGraph {
	// Undirected: every edge is visible from both endpoints, which keeps the
	// class->files and file->classes views consistent by construction.
	return &RelationshipGraph{g: graph.New(graph.StringHash)}
}

// add records that testFile imports className. Duplicate edges are ignored.
func (rg *RelationshipGraph) add(className, testFile string) {
	classKey := classKeyPrefix + className
	fileKey := fileKeyPrefix + testFile

	if err := rg.g.AddVertex(classKey); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return
	}
	if err := rg.g.AddVertex(fileKey); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return
	}
	if err := rg.g.AddEdge(classKey, fileKey); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		log.Printf("relationship graph: failed to link %s to %s: %v", className, testFile, err)
	}
}

// TestsForClass returns the test files importing the given class, sorted.
func (rg *RelationshipGraph) TestsForClass(className string) []string {
	return rg.neighbors(classKeyPrefix+className, fileKeyPrefix)
}

// ClassesForTest returns the class names a test file imports, sorted.
func (rg *RelationshipGraph) ClassesForTest(testFile string) []string {
	return rg.neighbors(fileKeyPrefix+testFile, classKeyPrefix)
}

// Size reports the number of class and test-file vertices.
func (rg *RelationshipGraph) Size() (classes, testFiles int) {
	adjacency, err := rg.g.AdjacencyMap()
	if err != nil {
		return 0, 0
	}
	for key := range adjacency {
		if strings.HasPrefix(key, classKeyPrefix) {
			classes++
		} else {
			testFiles++
		}
	}
	return classes, testFiles
}

func (rg *RelationshipGraph) neighbors(key, wantPrefix string) []string {
	adjacency, err := rg.g.AdjacencyMap()
	if err != nil {
		return nil
	}

	var results []string
	for neighbor := range adjacency[key] {
		if strings.HasPrefix(neighbor, wantPrefix) {
			results = append(results, strings.TrimPrefix(neighbor, wantPrefix))
		}
	}
	sort.Strings(results)
	return results
}

// RelationshipAnalyzer builds the relationship graph by scanning import
// statements across the test files of a project.
type RelationshipAnalyzer struct {
	parser  *Parser
	markers []string
}

// NewRelationshipAnalyzer creates an analyzer using the given parser. The
// markers identify page-object import paths; nil selects the defaults.
func NewRelationshipAnalyzer(parser *Parser, markers []string) *RelationshipAnalyzer {
	if len(markers) == 0 {
		markers = DefaultPageObjectMarkers
	}
	return &RelationshipAnalyzer{parser: parser, markers: markers}
}

// Analyze scans every test file once and returns the completed graph. A read
// or parse failure on one file is logged and does not abort the remaining
// files.
func (a *RelationshipAnalyzer) Analyze(rootDir string, testFiles []string) *RelationshipGraph {
	rg := NewRelationshipGraph()

	for _, testFile := range testFiles {
		if err := a.analyzeFile(rootDir, testFile, rg); err != nil {
			log.Printf("relationship analysis: skipping %s: %v", testFile, err)
		}
	}
	return rg
}

func (a *RelationshipAnalyzer) analyzeFile(rootDir, testFile string, rg *RelationshipGraph) error {
	source, err := os.ReadFile(filepath.Join(rootDir, testFile))
	if err != nil {
		return err
	}

	tree, err := a.parser.Parse(source, VariantForFile(testFile))
	if err != nil {
		return err
	}
	defer tree.Close()

	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Kind() != "import_statement" {
			return true
		}

		modulePath := stringLiteralText(n.ChildByFieldName("source"), source)
		if !a.isPageObjectPath(modulePath) {
			return true
		}

		for _, name := range namedImportSymbols(n, source) {
			rg.add(name, testFile)
		}
		return true
	})
	return nil
}

func (a *RelationshipAnalyzer) isPageObjectPath(modulePath string) bool {
	if modulePath == "" {
		return false
	}
	for _, marker := range a.markers {
		if strings.Contains(modulePath, marker) {
			return true
		}
	}
	return false
}

// namedImportSymbols returns the exported names referenced by an import
// statement's named-import clause.
func namedImportSymbols(importStmt *sitter.Node, source []byte) []string {
	clause := findChildByType(importStmt, "import_clause")
	if clause == nil {
		return nil
	}
	named := findChildByType(clause, "named_imports")
	if named == nil {
		return nil
	}

	var symbols []string
	for _, spec := range findChildrenByType(named, "import_specifier") {
		if name := nodeText(spec.ChildByFieldName("name"), source); name != "" {
			symbols = append(symbols, name)
		}
	}
	return symbols
}
