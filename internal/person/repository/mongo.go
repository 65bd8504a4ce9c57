package repository

import (
	"context"
	"errors"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Store on a MongoDB collection. Identifiers are ObjectIDs
// generated client-side so callers get them back without a second round trip.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, p *person.Person) (*person.Person, error) {
	doc := p.Clone()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *MongoRepo) InsertMany(ctx context.Context, people []person.Person) ([]*person.Person, error) {
	out := make([]*person.Person, 0, len(people))
	docs := make([]interface{}, 0, len(people))
	for i := range people {
		doc := people[i].Clone()
		if doc.ID.IsZero() {
			doc.ID = primitive.NewObjectID()
		}
		out = append(out, doc)
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return out, nil
	}
	if _, err := m.col.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) FindByName(ctx context.Context, name string) ([]*person.Person, error) {
	return m.findAll(ctx, bson.M{"name": name})
}

func (m *MongoRepo) FindOneByFood(ctx context.Context, food string) (*person.Person, error) {
	return m.findOne(ctx, bson.M{"favoriteFoods": food})
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*person.Person, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

// Replace writes the whole document back.
func (m *MongoRepo) Replace(ctx context.Context, p *person.Person) (*person.Person, error) {
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, person.ErrNotFound
	}
	return p.Clone(), nil
}

func (m *MongoRepo) SetAgeByID(ctx context.Context, id primitive.ObjectID, age int) (*person.Person, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p person.Person
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"age": age}}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*person.Person, error) {
	var p person.Person
	if err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepo) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := m.col.DeleteMany(ctx, bson.M{"name": name})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *MongoRepo) Find(ctx context.Context, q *Query) ([]person.PersonSummary, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "name", Value: 1}, {Key: "favoriteFoods", Value: 1}})
	if q.SortKey != "" {
		opts.SetSort(bson.D{{Key: q.SortKey, Value: q.SortDir}})
	}
	if q.Max > 0 {
		opts.SetLimit(q.Max)
	}
	cur, err := m.col.Find(ctx, bson.M{"favoriteFoods": q.Food}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []person.PersonSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) findOne(ctx context.Context, filter bson.M) (*person.Person, error) {
	var p person.Person
	if err := m.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepo) findAll(ctx context.Context, filter bson.M) ([]*person.Person, error) {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*person.Person{}
	for cur.Next(ctx) {
		var p person.Person
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}
