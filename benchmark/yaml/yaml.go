/*
Package yaml provides methods to parse benchmark.Plan declarations
from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/basketlab/fpgrowth/benchmark"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadPlan takes a slice of bytes with a benchmark plan in YML and
returns the plan parsed from it or an error. The YML is expected to be
an object with the plan name, its supportRatios and sampleSizes lists
and, optionally, minConfidence, trackStats, workers and seed
properties.
*/
func ReadPlan(data []byte) (*benchmark.Plan, error) {
	plan := &benchmark.Plan{}
	err := yaml.Unmarshal(data, plan)
	if err != nil {
		return nil, fmt.Errorf("parsing yml benchmark plan: %v", err)
	}
	err = plan.Validate()
	if err != nil {
		return nil, fmt.Errorf("parsing yml benchmark plan: %v", err)
	}
	return plan, nil
}

/*
ReadPlanFromFile takes a filepath string, reads its contents and uses
ReadPlan to parse it and return the parsed plan or an error. If the
file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadPlanFromFile(filepath string) (*benchmark.Plan, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading benchmark plan yml file %s: %v", filepath, err)
	}
	plan, err := ReadPlan(data)
	if err != nil {
		err = fmt.Errorf("parsing benchmark plan yml file %s: %v", filepath, err)
	}
	return plan, err
}
