// Package arch_test holds structural checks over the internal packages:
// import layering, doc comments and size limits.
package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const modulePath = "github.com/papapumpkin/constellate"

// moduleRoot walks up from the test's working directory to the directory
// holding go.mod.
func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found above the test directory")
		}
		dir = parent
	}
}

func internalDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(moduleRoot(t), "internal")
}

// sourceFiles lists the .go files of dir in name order. Test files are
// included only when withTests is set.
func sourceFiles(t *testing.T, dir string, withTests bool) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if !withTests && strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files
}

// packages lists the internal packages that contain non-test Go code.
func packages(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(internalDir(t))
	if err != nil {
		t.Fatal(err)
	}
	var pkgs []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == "arch_test" {
			continue
		}
		if len(sourceFiles(t, filepath.Join(internalDir(t), e.Name()), false)) > 0 {
			pkgs = append(pkgs, e.Name())
		}
	}
	return pkgs
}

// parsePackage parses the non-test files of internal/<pkg> with comments.
func parsePackage(t *testing.T, pkg string) (*token.FileSet, []*ast.File) {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for _, path := range sourceFiles(t, filepath.Join(internalDir(t), pkg), false) {
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			t.Fatalf("parsing %s: %v", path, err)
		}
		files = append(files, f)
	}
	return fset, files
}

// internalImports returns, sorted, the internal packages that the non-test
// files of pkg import.
func internalImports(t *testing.T, pkg string) []string {
	t.Helper()
	prefix := modulePath + "/internal/"
	_, files := parsePackage(t, pkg)
	var out []string
	for _, f := range files {
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(path, prefix) {
				continue
			}
			name, _, _ := strings.Cut(strings.TrimPrefix(path, prefix), "/")
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	slices.Sort(out)
	return out
}

func TestPackagesFound(t *testing.T) {
	t.Parallel()

	pkgs := packages(t)
	for _, want := range []string{"analysis", "aspect", "chart", "dispositor", "orb", "pattern", "zodiac"} {
		if !slices.Contains(pkgs, want) {
			t.Errorf("packages() = %v, missing %q", pkgs, want)
		}
	}
	if slices.Contains(pkgs, "arch_test") {
		t.Error("packages() should not list arch_test")
	}
}

func TestAnalysisComposesDomainPackages(t *testing.T) {
	t.Parallel()

	imports := internalImports(t, "analysis")
	for _, want := range []string{"aspect", "config", "dispositor", "orb", "pattern"} {
		if !slices.Contains(imports, want) {
			t.Errorf("analysis imports %v, want it to import %q", imports, want)
		}
	}
}

func TestOrbStaysBelowAspect(t *testing.T) {
	t.Parallel()

	if imports := internalImports(t, "aspect"); !slices.Contains(imports, "orb") {
		t.Errorf("aspect imports %v, want orb", imports)
	}
	if imports := internalImports(t, "orb"); !slices.Equal(imports, []string{"zodiac"}) {
		t.Errorf("orb imports %v, want only zodiac", imports)
	}
}

func TestLeafPackages(t *testing.T) {
	t.Parallel()

	for _, pkg := range []string{"zodiac", "logging", "telemetry"} {
		if imports := internalImports(t, pkg); len(imports) != 0 {
			t.Errorf("%s imports %v, want no internal packages", pkg, imports)
		}
	}
}

// parseSource parses an in-memory file with comments.
func parseSource(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "src.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	return f
}
