package person

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("person not found")
	// ErrInvalidID is returned when an identifier is not a 24-char hex ObjectID.
	// It matches ErrNotFound under errors.Is.
	ErrInvalidID = fmt.Errorf("%w: malformed identifier", ErrNotFound)
)

const (
	// FoodToAdd is appended by the fetch-mutate-save operation.
	FoodToAdd = "hamburger"
	// AgeToSet is the default age written by find-and-update.
	AgeToSet = 20
)

// Person is the only document stored by the people service.
type Person struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty" yaml:"-"`
	Name          string             `json:"name" bson:"name" yaml:"name"`
	Age           int                `json:"age" bson:"age" yaml:"age"`
	FavoriteFoods []string           `json:"favoriteFoods" bson:"favoriteFoods" yaml:"favoriteFoods"`
}

// PersonSummary is the projection returned by the chained query: no age.
type PersonSummary struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	FavoriteFoods []string           `json:"favoriteFoods" bson:"favoriteFoods"`
}

// DeleteSummary reports the outcome of a bulk delete.
type DeleteSummary struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Clone returns a deep copy so stores never share the foods slice with callers.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	c := *p
	if p.FavoriteFoods != nil {
		c.FavoriteFoods = append([]string(nil), p.FavoriteFoods...)
	}
	return &c
}

// Summary drops the age field.
func (p *Person) Summary() PersonSummary {
	return PersonSummary{ID: p.ID, Name: p.Name, FavoriteFoods: append([]string(nil), p.FavoriteFoods...)}
}

// HasFood reports whether food is one of p's favorite foods.
func (p *Person) HasFood(food string) bool {
	for _, f := range p.FavoriteFoods {
		if f == food {
			return true
		}
	}
	return false
}

// ParseID converts a hex identifier into an ObjectID, mapping failures to ErrInvalidID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// SamplePerson is the fixed record inserted by create-one.
func SamplePerson() *Person {
	return &Person{Name: "João", Age: 25, FavoriteFoods: []string{"pizza", "hambúrguer", "sorvete"}}
}

// SamplePeople is the default input of create-many.
func SamplePeople() []Person {
	return []Person{
		{Name: "João", Age: 25, FavoriteFoods: []string{"pizza", "hambúrguer", "sorvete"}},
		{Name: "Maria", Age: 30, FavoriteFoods: []string{"sushi", "macarrão", "chocolate"}},
		{Name: "Pedro", Age: 20, FavoriteFoods: []string{"churrasco", "batata frita", "lasanha"}},
	}
}
