package service

import (
	"context"
	"fmt"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"github.com/apiscamp/apiscamp/go-services/internal/person/repository"
	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/apiscamp/apiscamp/go-services/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// QueryChainLimit caps the chained query result.
const QueryChainLimit = 2

// Service is the person data-access façade. Each method issues one logical
// store operation and either returns its result or a logged error; nothing panics
// out of here. Safe for concurrent use when the Store is.
type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() *Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client behind col and disconnects it on shutdown.
func NewMongoService(col *mongo.Collection) *Service {
	return New(repository.NewMongoRepo(col))
}

func done[T any](op string, v T, err error) (T, error) {
	metrics.ObservePersonOp(op, err)
	if err != nil {
		logger.Errorf("person: %s: %v", op, err)
		var zero T
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// CreateAndSavePerson inserts the fixed sample person.
func (s *Service) CreateAndSavePerson(ctx context.Context) (*person.Person, error) {
	return s.Create(ctx, person.SamplePerson())
}

// Create inserts p and returns the stored document with its identifier.
func (s *Service) Create(ctx context.Context, p *person.Person) (*person.Person, error) {
	out, err := s.store.Insert(ctx, p)
	return done("create", out, err)
}

// CreateManyPeople bulk-inserts people, returning them in input order.
func (s *Service) CreateManyPeople(ctx context.Context, people []person.Person) ([]*person.Person, error) {
	out, err := s.store.InsertMany(ctx, people)
	return done("create-many", out, err)
}

func (s *Service) FindPeopleByName(ctx context.Context, name string) ([]*person.Person, error) {
	out, err := s.store.FindByName(ctx, name)
	return done("find-by-name", out, err)
}

// FindOneByFood returns the first person whose favoriteFoods contains food, or nil.
func (s *Service) FindOneByFood(ctx context.Context, food string) (*person.Person, error) {
	out, err := s.store.FindOneByFood(ctx, food)
	return done("find-one-by-food", out, err)
}

// FindPersonByID returns nil when no document has id. A malformed id yields
// person.ErrInvalidID.
func (s *Service) FindPersonByID(ctx context.Context, id string) (*person.Person, error) {
	oid, err := person.ParseID(id)
	if err != nil {
		return done[*person.Person]("find-by-id", nil, err)
	}
	out, err := s.store.FindByID(ctx, oid)
	return done("find-by-id", out, err)
}

// FindEditThenSave loads the person, appends person.FoodToAdd and writes the
// whole document back. The read and the write are separate round trips, so a
// concurrent writer between them is overwritten.
func (s *Service) FindEditThenSave(ctx context.Context, id string) (*person.Person, error) {
	const op = "find-edit-save"
	oid, err := person.ParseID(id)
	if err != nil {
		return done[*person.Person](op, nil, err)
	}
	p, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return done[*person.Person](op, nil, err)
	}
	if p == nil {
		return done[*person.Person](op, nil, person.ErrNotFound)
	}
	p.FavoriteFoods = append(p.FavoriteFoods, person.FoodToAdd)
	out, err := s.store.Replace(ctx, p)
	return done(op, out, err)
}

// FindAndUpdate sets age on the document whose identifier equals filterValue and
// returns it after the update, or nil when nothing matched. The value is matched
// against _id, so passing a person's name yields person.ErrInvalidID.
func (s *Service) FindAndUpdate(ctx context.Context, filterValue string, age int) (*person.Person, error) {
	oid, err := person.ParseID(filterValue)
	if err != nil {
		return done[*person.Person]("find-and-update", nil, err)
	}
	out, err := s.store.SetAgeByID(ctx, oid, age)
	return done("find-and-update", out, err)
}

// RemoveByID deletes one document and returns its prior state, or nil when absent.
func (s *Service) RemoveByID(ctx context.Context, id string) (*person.Person, error) {
	oid, err := person.ParseID(id)
	if err != nil {
		return done[*person.Person]("remove-by-id", nil, err)
	}
	out, err := s.store.DeleteByID(ctx, oid)
	return done("remove-by-id", out, err)
}

func (s *Service) RemoveManyPeople(ctx context.Context, name string) (person.DeleteSummary, error) {
	n, err := s.store.DeleteByName(ctx, name)
	return done("remove-many", person.DeleteSummary{DeletedCount: n}, err)
}

// QueryChain finds people who like food, sorted by name ascending, at most
// QueryChainLimit of them, without their age.
func (s *Service) QueryChain(ctx context.Context, food string) ([]person.PersonSummary, error) {
	q := repository.WhereFood(food).SortBy("name", repository.Ascending).Limit(QueryChainLimit)
	out, err := s.store.Find(ctx, q)
	return done("query-chain", out, err)
}
