// Package bench contains the benchmark driver: run enumeration and the
// worker pool that drives solver invocations through extraction,
// classification and aggregation.
package bench

import (
	"github.com/mzbench/mzbench/config"
	"github.com/mzbench/mzbench/model"
)

// Enumerate expands models x instances x repetitions into the fixed
// nested run order: model outer, instance middle, repetition inner.
// Sequence numbers follow that order, so consumers can rely on it for
// progress reporting and for re-sorting completion-ordered results.
func Enumerate(models, instances []string, repetitions int) ([]model.RunSpec, error) {
	if len(models) == 0 {
		return nil, &config.ConfigurationError{Field: "models", Reason: "at least one model is required"}
	}
	if len(instances) == 0 {
		return nil, &config.ConfigurationError{Field: "instances", Reason: "at least one instance is required"}
	}
	if repetitions < 1 {
		return nil, &config.ConfigurationError{Field: "repetitions", Reason: "must be >= 1"}
	}

	specs := make([]model.RunSpec, 0, len(models)*len(instances)*repetitions)
	seq := 0
	for _, m := range models {
		for _, inst := range instances {
			for rep := 1; rep <= repetitions; rep++ {
				specs = append(specs, model.RunSpec{
					Seq:        seq,
					Model:      m,
					Instance:   inst,
					Repetition: rep,
				})
				seq++
			}
		}
	}

	return specs, nil
}
