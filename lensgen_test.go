package lens_test

import (
	"bytes"
	"errors"
	"fmt"
	"go/build"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/chrisdone/basic-lens/internal/lensgen"
	"github.com/chrisdone/basic-lens/pkg/lensanalysis"
)

// TestAnalysis tests parsing and building errors using the Go analysis
// protocol. Directive errors are reported as analysis diagnostics, and
// "// want `REGEXP`" comments in the fixture source files check for them.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── analysis/
//	    ├── pkg1/
//	    │   └── *.go // with want comments
//	    └── pkg2/
//	        └── *.go // with want comments
func TestAnalysis(t *testing.T) {
	ents, err := os.ReadDir(filepath.FromSlash("testdata/analysis"))
	require.NoError(t, err)

	t.Setenv("GOFLAGS", "-tags=lens")

	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}

		t.Run(ent.Name(), func(t *testing.T) {
			t.Parallel()

			defer func() {
				if t.Failed() {
					t.Logf("\n\tReproduce:\tgo run ./cmd/lensgen ./testdata/analysis/%s", ent.Name())
				}
			}()

			analysistest.Run(t, "", lensanalysis.Analyzer, "./testdata/analysis/"+ent.Name())
		})
	}
}

// TestPrograms tests programs in the testdata directory. Each program carries
// lens directives, gets its lens_gen.go generated, and then runs to check its
// output.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── program/
//	    ├── program1/
//	    │   ├── main/
//	    │   │   └── main.go
//	    │   └── want/
//	    │       └── program_output.txt
//	    └── program2/
//	        └── ...
func TestPrograms(t *testing.T) {
	// NOTE: Code snippets were stolen from Wire.
	ents, err := os.ReadDir(filepath.FromSlash("testdata/program"))
	require.NoError(t, err)

	lensGo, err := os.ReadFile("lens.go")
	require.NoError(t, err)

	var tests []*programTest
	for _, ent := range ents {
		name := ent.Name()
		if !ent.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		test, err := newProgramTest(name, lensGo)
		if err != nil {
			t.Error(err)
			continue
		}

		tests = append(tests, test)
	}

	for _, test := range tests {
		t.Run(test.Name(), test.Test())
	}
}

// programTest is a test case for a program. It generates lens code for the
// program and runs the program with the generated code to check the output.
type programTest struct {
	name  string
	files map[string][]byte
	want  string
}

func (test *programTest) Name() string {
	return test.name
}

func (test *programTest) PkgPath() string {
	return fmt.Sprintf("example.com/%s", test.name)
}

func (test *programTest) ProgramPath() string {
	return fmt.Sprintf("%s/main", test.PkgPath())
}

// newProgramTest creates a new program test case.
func newProgramTest(name string, lensGo []byte) (*programTest, error) {
	root := filepath.Join(filepath.FromSlash("testdata/program"), name)
	test := programTest{
		name:  name,
		files: make(map[string][]byte),
	}

	// want
	programOutput, err := os.ReadFile(filepath.Join(root, "want", "program_output.txt"))
	if err != nil {
		return nil, fmt.Errorf("load test case %s: %v", name, err)
	}
	test.want = string(bytes.TrimSpace(programOutput))
	if test.want == "" {
		return nil, fmt.Errorf("load test case %s: does not want anything", name)
	}

	// files
	if err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Bubble up I/O errors
			return err
		}

		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			panic(err)
		}

		if !info.Mode().IsRegular() || filepath.Ext(path) != ".go" {
			// Skip non-Go files
			return nil
		}

		if filepath.Base(path) == "lens_gen.go" {
			// Skip generated files, they might exist for debugging purposes.
			return nil
		}

		goCode, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		test.files[test.PkgPath()+"/"+filepath.ToSlash(rel)] = goCode
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load test case %s: %v", name, err)
	}

	test.files["github.com/chrisdone/basic-lens/lens.go"] = lensGo
	return &test, nil
}

// materialize copies the program code and lens.go into the given GOPATH.
func (test *programTest) materialize(gopath string) error {
	// NOTE: Code snippets were stolen from Wire.
	for name, content := range test.files {
		dst := filepath.Join(gopath, "src", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
			return fmt.Errorf("mkdir %s: %w", name, err)
		}
		if err := os.WriteFile(dst, content, 0o666); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	// Write go.mod file for github.com/chrisdone/basic-lens
	lensGomodPath := filepath.Join(gopath, "src", "github.com", "chrisdone", "basic-lens", "go.mod")
	lensGomod := `
	module github.com/chrisdone/basic-lens
	go 1.25.0`
	if err := os.WriteFile(lensGomodPath, []byte(lensGomod), 0o666); err != nil {
		return fmt.Errorf("write github.com/chrisdone/basic-lens/go.mod: %w", err)
	}

	// Write go.mod file for example.com/NAME
	testGomodPath := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()), "go.mod")
	testGomod := fmt.Sprintf(`
	module %s
	go 1.25.0
	require github.com/chrisdone/basic-lens v0.0.0
	replace github.com/chrisdone/basic-lens => %s
	`, test.PkgPath(), filepath.Join(gopath, filepath.FromSlash("src/github.com/chrisdone/basic-lens")))
	if err := os.WriteFile(testGomodPath, []byte(testGomod), 0o666); err != nil {
		return fmt.Errorf("write %s/go.mod: %w", test.PkgPath(), err)
	}

	return nil
}

// Test returns a test function for the program test. It generates lens code
// for the program and then checks the program output.
func (test *programTest) Test() func(*testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		defer func() {
			if t.Failed() {
				t.Logf("\n\tReproduce:\tgo run ./cmd/lensgen ./testdata/program/%s/main", test.Name())
			}
		}()

		// Materialize in a temporary directory
		gopath := t.TempDir()
		require.NoError(t, test.materialize(gopath), "Materialization failed")

		// Run the generator
		wd := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()))
		env := append(os.Environ(), "GOPATH="+gopath)
		generated, genErr := lensgen.Main(t.Context(), wd, env, "", false, "lens_gen.go", []string{"pattern=./main"})
		if genErr != nil {
			genErr = errors.New(relPathInString(genErr.Error(), wd))
			require.NoError(t, genErr, "lensgen exited with errors unexpectedly")
		}

		// Write generated files
		for name, content := range generated {
			err := os.WriteFile(filepath.Join(wd, name), content, 0o666)
			require.NoError(t, err, "Failed to write a generated file")
		}

		// Run the program
		goCmd := filepath.Join(build.Default.GOROOT, "bin", "go")
		cmd := exec.Command(goCmd, "run", test.ProgramPath())
		cmd.Dir = wd
		progOut, err := cmd.CombinedOutput()
		require.NoError(t, err, string(progOut))

		assert.Equal(t, test.want, strings.TrimSpace(string(progOut)))
	}
}

// relPathInString replaces paths in the given string to their relative paths
// to the new working directory.
func relPathInString(s, wd string) string {
	realWD, err := os.Getwd()
	if err != nil {
		return s
	}

	rel, err := filepath.Rel(realWD, wd)
	if err != nil {
		return s
	}

	s = strings.ReplaceAll(s, rel+"/", "")
	s = strings.ReplaceAll(s, rel, "")
	return s
}
