package repository

import (
	"context"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence contract behind the people service.
// Lookups that find nothing return (nil, nil); only Replace reports person.ErrNotFound.
type Store interface {
	Insert(ctx context.Context, p *person.Person) (*person.Person, error)
	InsertMany(ctx context.Context, people []person.Person) ([]*person.Person, error)
	FindByName(ctx context.Context, name string) ([]*person.Person, error)
	FindOneByFood(ctx context.Context, food string) (*person.Person, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*person.Person, error)
	Replace(ctx context.Context, p *person.Person) (*person.Person, error)
	SetAgeByID(ctx context.Context, id primitive.ObjectID, age int) (*person.Person, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*person.Person, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	Find(ctx context.Context, q *Query) ([]person.PersonSummary, error)
}

// Sort directions
const (
	Ascending  = 1
	Descending = -1
)

// Query is a food filter composed with a sort and a limit. Results are always
// projected to name and favoriteFoods.
//
//	repository.WhereFood("burrito").SortBy("name", repository.Ascending).Limit(2)
type Query struct {
	Food    string
	SortKey string
	SortDir int
	Max     int64
}

// WhereFood starts a query matching people whose food list contains food.
func WhereFood(food string) *Query {
	return &Query{Food: food}
}

// SortBy orders results by key ("name" or "age") in dir.
func (q *Query) SortBy(key string, dir int) *Query {
	q.SortKey = key
	q.SortDir = dir
	return q
}

// Limit caps the number of results. Zero means no limit.
func (q *Query) Limit(n int64) *Query {
	q.Max = n
	return q
}
