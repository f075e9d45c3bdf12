package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/wfcheck/wfcheck/pkg/adapt"
	"github.com/wfcheck/wfcheck/pkg/wfcheck"
)

// fixtureDoc is the demonstration-harness YAML shape described in
// SPEC_FULL.md §6. It is not a host workflow language; it exists only so
// the checker can be exercised from the command line without a real
// document loader.
type fixtureDoc struct {
	Inputs  []map[string]interface{}  `yaml:"inputs"`
	Outputs []map[string]interface{}  `yaml:"outputs"`
	Steps   map[string]fixtureStep    `yaml:"steps"`
}

type fixtureStep struct {
	When         interface{}              `yaml:"when"`
	Loop         interface{}              `yaml:"loop"`
	OutputMethod string                   `yaml:"outputMethod"`
	Scatter      interface{}              `yaml:"scatter"`
	Run          string                   `yaml:"run"`
	Inputs       []map[string]interface{} `yaml:"inputs"`
	Outputs      []map[string]interface{} `yaml:"outputs"`
}

// loadedGraph is the in-memory result of adapting a fixture document,
// ready to hand to wfcheck.StaticCheck, wfcheck.CycleCheck and
// wfcheck.LoopCheck.
type loadedGraph struct {
	workflowInputs  []*wfcheck.Parameter
	workflowOutputs []*wfcheck.Parameter
	stepInputs      []*wfcheck.Parameter
	stepOutputs     []*wfcheck.Parameter
	steps           []*wfcheck.Step
	paramToStep     map[string]*wfcheck.Step
}

func loadFixture(path string) (*loadedGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}

	var doc fixtureDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	g := &loadedGraph{paramToStep: map[string]*wfcheck.Step{}}

	for _, raw := range doc.Inputs {
		id, _ := raw["id"].(string)
		p, err := adapt.ParseParameter(id, raw, "source", nil)
		if err != nil {
			return nil, err
		}
		g.workflowInputs = append(g.workflowInputs, p)
	}

	for _, raw := range doc.Outputs {
		id, _ := raw["id"].(string)
		p, err := adapt.ParseParameter(id, raw, "outputSource", nil)
		if err != nil {
			return nil, err
		}
		g.workflowOutputs = append(g.workflowOutputs, p)
	}

	// Steps are processed in a stable order purely so diagnostics are
	// reproducible across runs; the checker itself does not depend on
	// ordering.
	stepNames := make([]string, 0, len(doc.Steps))
	for name := range doc.Steps {
		stepNames = append(stepNames, name)
	}
	sort.Strings(stepNames)

	for _, name := range stepNames {
		fs := doc.Steps[name]
		var inputs, outputs []*wfcheck.Parameter

		for _, raw := range fs.Inputs {
			shortID, _ := raw["id"].(string)
			id := "wf#" + name + "/" + shortID
			p, err := adapt.ParseParameter(id, raw, "source", nil)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, p)
			g.stepInputs = append(g.stepInputs, p)
		}
		for _, raw := range fs.Outputs {
			shortID, _ := raw["id"].(string)
			id := "wf#" + name + "/" + shortID
			p, err := adapt.ParseParameter(id, raw, "outputSource", nil)
			if err != nil {
				return nil, err
			}
			outputs = append(outputs, p)
			g.stepOutputs = append(g.stepOutputs, p)
		}

		step := &wfcheck.Step{
			ID:           name,
			When:         fs.When,
			Loop:         fs.Loop,
			OutputMethod: fs.OutputMethod,
			Scatter:      fs.Scatter,
			Run:          fs.Run,
			Inputs:       inputs,
		}
		for _, p := range outputs {
			p.OwningStep = step
			g.paramToStep[p.ID] = step
		}
		for _, p := range inputs {
			p.OwningStep = step
		}
		g.steps = append(g.steps, step)
	}

	return g, nil
}
