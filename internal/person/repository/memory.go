package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Store used by unit tests and by the CLI's --memory mode.
// It keeps insertion order so find-by-name and find-one-by-food behave like a
// freshly created collection.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*person.Person
	order []primitive.ObjectID
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]*person.Person)}
}

func (m *MemoryRepo) Insert(_ context.Context, p *person.Person) (*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(p), nil
}

func (m *MemoryRepo) InsertMany(_ context.Context, people []person.Person) ([]*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*person.Person, 0, len(people))
	for i := range people {
		out = append(out, m.insertLocked(&people[i]))
	}
	return out, nil
}

func (m *MemoryRepo) insertLocked(p *person.Person) *person.Person {
	doc := p.Clone()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, exists := m.store[doc.ID]; !exists {
		m.order = append(m.order, doc.ID)
	}
	m.store[doc.ID] = doc
	return doc.Clone()
}

func (m *MemoryRepo) FindByName(_ context.Context, name string) ([]*person.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*person.Person{}
	for _, id := range m.order {
		if p := m.store[id]; p.Name == name {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (m *MemoryRepo) FindOneByFood(_ context.Context, food string) (*person.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if p := m.store[id]; p.HasFood(food) {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

func (m *MemoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*person.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[id].Clone(), nil
}

func (m *MemoryRepo) Replace(_ context.Context, p *person.Person) (*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return nil, person.ErrNotFound
	}
	m.store[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (m *MemoryRepo) SetAgeByID(_ context.Context, id primitive.ObjectID, age int) (*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	p.Age = age
	return p.Clone(), nil
}

func (m *MemoryRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	m.removeLocked(id)
	return p, nil
}

func (m *MemoryRepo) DeleteByName(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range append([]primitive.ObjectID(nil), m.order...) {
		if m.store[id].Name == name {
			m.removeLocked(id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryRepo) removeLocked(id primitive.ObjectID) {
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

func (m *MemoryRepo) Find(_ context.Context, q *Query) ([]person.PersonSummary, error) {
	m.mu.RLock()
	matched := make([]*person.Person, 0)
	for _, id := range m.order {
		if p := m.store[id]; p.HasFood(q.Food) {
			matched = append(matched, p.Clone())
		}
	}
	m.mu.RUnlock()

	switch q.SortKey {
	case "name":
		sort.SliceStable(matched, func(i, j int) bool {
			if q.SortDir == Descending {
				return matched[i].Name > matched[j].Name
			}
			return matched[i].Name < matched[j].Name
		})
	case "age":
		sort.SliceStable(matched, func(i, j int) bool {
			if q.SortDir == Descending {
				return matched[i].Age > matched[j].Age
			}
			return matched[i].Age < matched[j].Age
		})
	}
	if q.Max > 0 && int64(len(matched)) > q.Max {
		matched = matched[:q.Max]
	}
	out := make([]person.PersonSummary, 0, len(matched))
	for _, p := range matched {
		out = append(out, p.Summary())
	}
	return out, nil
}
