package main

import (
	"fmt"
	"os"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"github.com/apiscamp/apiscamp/go-services/internal/person/service"
	"gopkg.in/yaml.v3"
)

// loadSeed reads a YAML list of people.
func loadSeed(path string) ([]person.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var people []person.Person
	if err := yaml.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	if len(people) == 0 {
		return nil, fmt.Errorf("seed %s: no people", path)
	}
	for i, p := range people {
		if p.Name == "" {
			return nil, fmt.Errorf("seed %s: entry %d has no name", path, i)
		}
	}
	return people, nil
}

// loadPipelineInput reads pipeline parameters; omitted fields keep their defaults.
func loadPipelineInput(path string) (service.PipelineInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.PipelineInput{}, fmt.Errorf("read pipeline input: %w", err)
	}
	in := service.DefaultPipelineInput()
	if err := yaml.Unmarshal(data, &in); err != nil {
		return service.PipelineInput{}, fmt.Errorf("parse pipeline input %s: %w", path, err)
	}
	return in, nil
}
