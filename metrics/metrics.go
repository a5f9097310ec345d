// Package metrics exposes Prometheus metrics for category and run outcomes.
package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/helioswap/qa-acceptor/types"
)

const (
	MetricsNamespace = "qa_acceptor"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	categoriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "categories_total",
		Help:      "Count of category invocations",
	}, []string{
		"environment",
		"run_id",
		"category",
		"result",
	})

	runResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_results",
		Help:      "Classification of suite runs",
	}, []string{
		"environment",
		"run_id",
		"classification",
	})

	runCategoriesPassed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_categories_passed",
		Help:      "Number of passed categories in the last run",
	}, []string{
		"environment",
		"run_id",
	})

	runCategoriesFailed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_categories_failed",
		Help:      "Number of failed categories in the last run",
	}, []string{
		"environment",
		"run_id",
	})

	runCategoriesCriticalFailed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_categories_critical_failed",
		Help:      "Number of failed critical categories in the last run",
	}, []string{
		"environment",
		"run_id",
	})

	runDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of suite runs",
	}, []string{
		"environment",
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordCategory records the outcome of a single category invocation.
func RecordCategory(environment, runID, category string, success bool) {
	result := "fail"
	if success {
		result = "pass"
	}
	categoriesTotal.WithLabelValues(environment, runID, category, result).Inc()
}

// RecordRun records the aggregate outcome of a full suite run.
func RecordRun(environment string, summary *types.RunSummary) {
	runResults.WithLabelValues(environment, summary.RunID, string(summary.Classification)).Set(1)
	runCategoriesPassed.WithLabelValues(environment, summary.RunID).Set(float64(summary.Stats.Passed))
	runCategoriesFailed.WithLabelValues(environment, summary.RunID).Set(float64(summary.Stats.Failed))
	runCategoriesCriticalFailed.WithLabelValues(environment, summary.RunID).Set(float64(summary.Stats.CriticalFailed))
	runDuration.WithLabelValues(environment, summary.RunID).Set(summary.Duration.Seconds())
}
