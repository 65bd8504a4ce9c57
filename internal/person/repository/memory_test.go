package repository

import (
	"context"
	"testing"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryRepoCRUD(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	created, err := r.Insert(ctx, person.SamplePerson())
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	got, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	byName, err := r.FindByName(ctx, "João")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	got.FavoriteFoods = append(got.FavoriteFoods, person.FoodToAdd)
	saved, err := r.Replace(ctx, got)
	require.NoError(t, err)
	require.Equal(t, []string{"pizza", "hambúrguer", "sorvete", "hamburger"}, saved.FavoriteFoods)

	updated, err := r.SetAgeByID(ctx, created.ID, 40)
	require.NoError(t, err)
	require.Equal(t, 40, updated.Age)
	require.Equal(t, saved.FavoriteFoods, updated.FavoriteFoods)

	removed, err := r.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, removed.ID)

	gone, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestMemoryRepo_InsertManyKeepsOrder(t *testing.T) {
	r := NewMemoryRepo()
	out, err := r.InsertMany(context.Background(), person.SamplePeople())
	require.NoError(t, err)
	require.Len(t, out, 3)

	seen := map[primitive.ObjectID]bool{}
	for i, p := range out {
		require.False(t, seen[p.ID], "ids must be distinct")
		seen[p.ID] = true
		require.Equal(t, person.SamplePeople()[i].FavoriteFoods, p.FavoriteFoods)
	}
}

func TestMemoryRepo_MissingDocuments(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	id := primitive.NewObjectID()

	p, err := r.FindOneByFood(ctx, "burrito")
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = r.SetAgeByID(ctx, id, 20)
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = r.DeleteByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, p)

	_, err = r.Replace(ctx, &person.Person{ID: id, Name: "ghost"})
	require.ErrorIs(t, err, person.ErrNotFound)
}

func TestMemoryRepo_DeleteByName(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	_, err := r.InsertMany(ctx, []person.Person{
		{Name: "Mary", Age: 1},
		{Name: "Ann", Age: 2},
		{Name: "Mary", Age: 3},
	})
	require.NoError(t, err)

	n, err := r.DeleteByName(ctx, "Mary")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	left, err := r.FindByName(ctx, "Ann")
	require.NoError(t, err)
	require.Len(t, left, 1)
	mary, err := r.FindByName(ctx, "Mary")
	require.NoError(t, err)
	require.Empty(t, mary)
}

func TestMemoryRepo_FindChainedQuery(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	_, err := r.InsertMany(ctx, []person.Person{
		{Name: "Zed", Age: 40, FavoriteFoods: []string{"burrito"}},
		{Name: "Amy", Age: 30, FavoriteFoods: []string{"tacos", "burrito"}},
		{Name: "Kim", Age: 20, FavoriteFoods: []string{"burrito"}},
		{Name: "Bob", Age: 50, FavoriteFoods: []string{"pizza"}},
	})
	require.NoError(t, err)

	got, err := r.Find(ctx, WhereFood("burrito").SortBy("name", Ascending).Limit(2))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Amy", got[0].Name)
	require.Equal(t, "Kim", got[1].Name)

	got, err = r.Find(ctx, WhereFood("burrito").SortBy("age", Descending))
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Zed", got[0].Name)
}
