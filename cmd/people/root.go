package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/apiscamp/apiscamp/go-services/internal/database"
	"github.com/apiscamp/apiscamp/go-services/internal/person/service"
	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
)

// app carries what every subcommand needs. svc is opened lazily in the root
// PersistentPreRunE unless a service was injected.
type app struct {
	out    io.Writer
	v      *viper.Viper
	svc    *service.Service
	client *mongo.Client
}

func newRootCmd(out io.Writer, svc *service.Service) *cobra.Command {
	a := &app{out: out, v: viper.New(), svc: svc}

	root := &cobra.Command{
		Use:           "people",
		Short:         "Run person data-access operations against MongoDB",
		Long:          "people issues the person façade operations one at a time, or all of them in order with `people pipeline`.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsStore(cmd) {
				return nil
			}
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.String("mongo-uri", "", "MongoDB connection string (env MONGO_URI or MONGODB_URI)")
	pf.String("database", "fcc", "database name (env MONGODB_DATABASE)")
	pf.String("collection", "people", "collection name (env MONGODB_COLLECTION)")
	pf.Duration("timeout", 10*time.Second, "per-command timeout")
	pf.Bool("memory", false, "use a throwaway in-memory store (env PEOPLE_STORE=memory)")

	_ = a.v.BindPFlags(pf)
	_ = a.v.BindEnv("mongo-uri", "MONGO_URI", "MONGODB_URI")
	_ = a.v.BindEnv("database", "MONGODB_DATABASE")
	_ = a.v.BindEnv("collection", "MONGODB_COLLECTION")
	_ = a.v.BindEnv("store", "PEOPLE_STORE")

	root.AddCommand(
		a.createCmd(),
		a.createManyCmd(),
		a.findNameCmd(),
		a.findFoodCmd(),
		a.findIDCmd(),
		a.editSaveCmd(),
		a.findUpdateCmd(),
		a.removeIDCmd(),
		a.removeManyCmd(),
		a.queryCmd(),
		a.pipelineCmd(),
	)
	return root
}

// needsStore is false for cobra's built-in help and shell completion commands,
// which must work without a database.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func (a *app) open(ctx context.Context) error {
	if a.svc != nil {
		return nil
	}
	if a.v.GetBool("memory") || a.v.GetString("store") == "memory" {
		logger.Debugf("people: using in-memory store")
		a.svc = service.NewMemoryService()
		return nil
	}
	uri := a.v.GetString("mongo-uri")
	if uri == "" {
		return fmt.Errorf("no MongoDB URI: set --mongo-uri, MONGO_URI or pass --memory")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := database.ConnectMongo(ctx, uri, a.timeout())
	if err != nil {
		return err
	}
	a.client = client
	col := client.Database(a.v.GetString("database")).Collection(a.v.GetString("collection"))
	a.svc = service.NewMongoService(col)
	return nil
}

func (a *app) close() error {
	if a.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := a.client.Disconnect(ctx)
	a.client = nil
	return err
}

func (a *app) timeout() time.Duration {
	d := a.v.GetDuration("timeout")
	if d <= 0 {
		d = 10 * time.Second
	}
	return d
}

// opContext bounds one command by --timeout.
func (a *app) opContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, a.timeout())
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
