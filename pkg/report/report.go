// Package report packages shrink outcomes into failure reports and
// renders them for terminals or YAML export. A report always makes the
// difference between "fully converged" and "terminated early by
// budget/timeout" visible, so the reader knows whether a smaller
// counterexample may still exist.
package report

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/protest-go/protest/pkg/shrink"
)

// Report is a rendered-ready summary of one shrink run.
type Report struct {
	TestName  string        `yaml:"test_name"`
	Original  string        `yaml:"original"`
	Shrunk    string        `yaml:"shrunk"`
	Steps     int           `yaml:"shrink_steps"`
	Seed      uint64        `yaml:"seed"`
	Duration  time.Duration `yaml:"duration"`
	Converged bool          `yaml:"converged"`
	Timestamp time.Time     `yaml:"timestamp"`
}

// FromResult builds a report from an engine result. Values are
// formatted with %v; callers with richer formatting needs can fill the
// fields directly.
func FromResult[T any](testName string, seed uint64, result shrink.Result[T]) *Report {
	return &Report{
		TestName:  testName,
		Original:  fmt.Sprintf("%v", result.Original),
		Shrunk:    fmt.Sprintf("%v", result.Minimal),
		Steps:     result.Steps,
		Seed:      seed,
		Duration:  result.Duration,
		Converged: result.Converged,
		Timestamp: time.Now(),
	}
}

// ToYAML serializes the report for export or persistence alongside
// other tooling.
func (r *Report) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return out, nil
}
