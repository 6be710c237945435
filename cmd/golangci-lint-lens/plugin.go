// golangcilintlens package provides a plugin for golangci-lint to integrate
// the basic-lens analyzer. To build a custom golangci-lint binary with this
// plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-lens binary that you can use to lint your
// Go code with the basic-lens analyzer.
package golangcilintlens

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/chrisdone/basic-lens/pkg/lensanalysis"
)

func init() {
	register.Plugin("lens", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return LensLinter{}, nil
}

type LensLinter struct{}

func (LensLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{lensanalysis.Analyzer}, nil
}

func (LensLinter) GetLoadMode() string {
	return register.LoadModeSyntax
}
