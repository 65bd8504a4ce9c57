package main

import (
	"context"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"github.com/apiscamp/apiscamp/go-services/internal/person/service"
	"github.com/spf13/cobra"
)

// run wraps one façade call: bounded context, JSON output, and the client
// closed on failure since PersistentPostRunE is skipped then.
func (a *app) run(fn func(ctx context.Context, args []string) (interface{}, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := a.opContext(cmd)
		defer cancel()
		out, err := fn(ctx, args)
		if err != nil {
			_ = a.close()
			return err
		}
		return a.print(out)
	}
}

func (a *app) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Insert the sample person",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, _ []string) (interface{}, error) {
			return a.svc.CreateAndSavePerson(ctx)
		}),
	}
}

func (a *app) createManyCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create-many",
		Short: "Bulk-insert people from a YAML seed file, or the sample people",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, _ []string) (interface{}, error) {
			people := person.SamplePeople()
			if file != "" {
				var err error
				if people, err = loadSeed(file); err != nil {
					return nil, err
				}
			}
			return a.svc.CreateManyPeople(ctx, people)
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML list of {name, age, favoriteFoods}")
	return cmd
}

func (a *app) findNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-name NAME",
		Short: "Find every person with NAME",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			out, err := a.svc.FindPeopleByName(ctx, args[0])
			if out == nil && err == nil {
				out = []*person.Person{}
			}
			return out, err
		}),
	}
}

func (a *app) findFoodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-food FOOD",
		Short: "Find one person whose favorite foods include FOOD",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			return a.svc.FindOneByFood(ctx, args[0])
		}),
	}
}

func (a *app) findIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-id ID",
		Short: "Find a person by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			return a.svc.FindPersonByID(ctx, args[0])
		}),
	}
}

func (a *app) editSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit-save ID",
		Short: "Append " + person.FoodToAdd + " to a person's favorite foods and save",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			return a.svc.FindEditThenSave(ctx, args[0])
		}),
	}
}

func (a *app) findUpdateCmd() *cobra.Command {
	var age int
	cmd := &cobra.Command{
		Use:   "find-update VALUE",
		Short: "Set age on the document whose _id equals VALUE",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			return a.svc.FindAndUpdate(ctx, args[0], age)
		}),
	}
	cmd.Flags().IntVar(&age, "age", person.AgeToSet, "age to set")
	return cmd
}

func (a *app) removeIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-id ID",
		Short: "Remove a person by identifier, printing the removed document",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			return a.svc.RemoveByID(ctx, args[0])
		}),
	}
}

func (a *app) removeManyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-many NAME",
		Short: "Remove every person with NAME",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			return a.svc.RemoveManyPeople(ctx, args[0])
		}),
	}
}

func (a *app) queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query FOOD",
		Short: "Two people who like FOOD, sorted by name, without age",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, args []string) (interface{}, error) {
			out, err := a.svc.QueryChain(ctx, args[0])
			if out == nil && err == nil {
				out = []person.PersonSummary{}
			}
			return out, err
		}),
	}
}

func (a *app) pipelineCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run every operation in order, stopping at the first failure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := service.DefaultPipelineInput()
			if file != "" {
				var err error
				if in, err = loadPipelineInput(file); err != nil {
					return err
				}
			}
			ctx, cancel := a.opContext(cmd)
			defer cancel()
			report, err := a.svc.RunPipeline(ctx, in)
			// partial report is still useful output
			if perr := a.print(report); perr != nil && err == nil {
				err = perr
			}
			if err != nil {
				_ = a.close()
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML pipeline input")
	return cmd
}
