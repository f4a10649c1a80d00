package lg2check_test

import (
	"testing"

	"github.com/iuboy/bmclog/lint/lg2check"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), lg2check.Analyzer, "a")
}
