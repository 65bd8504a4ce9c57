package service

import (
	"context"
	"fmt"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
)

// PipelineInput parameterizes RunPipeline. Zero fields take the defaults of
// DefaultPipelineInput.
type PipelineInput struct {
	People     []person.Person `json:"people" yaml:"people"`
	Name       string          `json:"name" yaml:"name"`
	Food       string          `json:"food" yaml:"food"`
	Age        int             `json:"age" yaml:"age"`
	RemoveName string          `json:"removeName" yaml:"removeName"`
	QueryFood  string          `json:"queryFood" yaml:"queryFood"`
}

func DefaultPipelineInput() PipelineInput {
	return PipelineInput{
		People:     person.SamplePeople(),
		Name:       "João",
		Food:       "pizza",
		Age:        person.AgeToSet,
		RemoveName: "Mary",
		QueryFood:  "burrito",
	}
}

func (in PipelineInput) withDefaults() PipelineInput {
	d := DefaultPipelineInput()
	if in.People == nil {
		in.People = d.People
	}
	if in.Name == "" {
		in.Name = d.Name
	}
	if in.Food == "" {
		in.Food = d.Food
	}
	if in.Age == 0 {
		in.Age = d.Age
	}
	if in.RemoveName == "" {
		in.RemoveName = d.RemoveName
	}
	if in.QueryFood == "" {
		in.QueryFood = d.QueryFood
	}
	return in
}

// PipelineReport holds the result of each step that ran. Steps lists them in order.
type PipelineReport struct {
	Steps       []string               `json:"steps"`
	Created     *person.Person         `json:"created,omitempty"`
	CreatedMany []*person.Person       `json:"createdMany,omitempty"`
	ByName      []*person.Person       `json:"byName,omitempty"`
	ByFood      *person.Person         `json:"byFood,omitempty"`
	ByID        *person.Person         `json:"byId,omitempty"`
	Edited      *person.Person         `json:"edited,omitempty"`
	Updated     *person.Person         `json:"updated,omitempty"`
	Removed     *person.Person         `json:"removed,omitempty"`
	RemovedMany *person.DeleteSummary  `json:"removedMany,omitempty"`
	Chain       []person.PersonSummary `json:"chain,omitempty"`
}

// RunPipeline runs the operations in order against s and stops at the first
// failure, returning the partial report together with the error. The
// identifier of the created person drives find-by-id, edit-save,
// find-and-update and remove-by-id.
func (s *Service) RunPipeline(ctx context.Context, in PipelineInput) (*PipelineReport, error) {
	in = in.withDefaults()
	r := &PipelineReport{}
	var id string

	steps := []struct {
		name string
		run  func() error
	}{
		{"create-one", func() (err error) {
			r.Created, err = s.CreateAndSavePerson(ctx)
			if err == nil {
				id = r.Created.ID.Hex()
			}
			return err
		}},
		{"create-many", func() (err error) {
			r.CreatedMany, err = s.CreateManyPeople(ctx, in.People)
			return err
		}},
		{"find-by-name", func() (err error) {
			r.ByName, err = s.FindPeopleByName(ctx, in.Name)
			return err
		}},
		{"find-one-by-food", func() (err error) {
			r.ByFood, err = s.FindOneByFood(ctx, in.Food)
			return err
		}},
		{"find-by-id", func() (err error) {
			r.ByID, err = s.FindPersonByID(ctx, id)
			return err
		}},
		{"find-edit-save", func() (err error) {
			r.Edited, err = s.FindEditThenSave(ctx, id)
			return err
		}},
		{"find-and-update", func() (err error) {
			r.Updated, err = s.FindAndUpdate(ctx, id, in.Age)
			return err
		}},
		{"remove-by-id", func() (err error) {
			r.Removed, err = s.RemoveByID(ctx, id)
			return err
		}},
		{"remove-many", func() error {
			sum, err := s.RemoveManyPeople(ctx, in.RemoveName)
			if err == nil {
				r.RemovedMany = &sum
			}
			return err
		}},
		{"query-chain", func() (err error) {
			r.Chain, err = s.QueryChain(ctx, in.QueryFood)
			return err
		}},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return r, fmt.Errorf("pipeline %s: %w", st.name, err)
		}
		logger.Debugf("pipeline: %s", st.name)
		if err := st.run(); err != nil {
			return r, fmt.Errorf("pipeline: %w", err)
		}
		r.Steps = append(r.Steps, st.name)
	}
	return r, nil
}
