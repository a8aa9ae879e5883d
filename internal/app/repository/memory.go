package repository

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"autoservice/internal/app/ds"
)

// MemStore — хранилище в памяти. Используется в тестах и при запуске
// без базы данных (STORAGE=memory): состояние живёт до перезапуска
// процесса. Контракт тот же, что у Repository.
type MemStore struct {
	mu sync.Mutex

	requests map[string]*ds.ServiceRequest
	// индекс заявок пользователя, свежие первыми
	byUser map[int64][]string

	cars   map[string]*ds.GarageCar
	active map[int64]*string

	// ключ user:request:reason, повторное начисление — no-op
	bonus map[string]*ds.BonusEntry
}

func NewMemStore() *MemStore {
	return &MemStore{
		requests: make(map[string]*ds.ServiceRequest),
		byUser:   make(map[int64][]string),
		cars:     make(map[string]*ds.GarageCar),
		active:   make(map[int64]*string),
		bonus:    make(map[string]*ds.BonusEntry),
	}
}

func (m *MemStore) CreateRequest(req *ds.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *req
	m.requests[req.ID] = &cp
	m.byUser[req.UserID] = append([]string{req.ID}, m.byUser[req.UserID]...)
	return nil
}

func (m *MemStore) GetRequest(id string) (*ds.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *req
	return &cp, nil
}

// UpdateRequestStatus — compare-and-swap статуса под мьютексом
func (m *MemStore) UpdateRequestStatus(id string, from, to ds.Status) (*ds.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Status != from {
		cp := *req
		return &cp, ErrStatusConflict
	}

	req.Status = to
	req.UpdatedAt = time.Now()
	cp := *req
	return &cp, nil
}

func (m *MemStore) SetTopicMessageID(id string, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.TopicMessageID = messageID
	return nil
}

func (m *MemStore) ListRequestsByUser(userID int64, limit int) ([]ds.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.byUser[userID]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]ds.ServiceRequest, 0, len(ids))
	for _, id := range ids {
		if req, ok := m.requests[id]; ok {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *MemStore) AddCar(car *ds.GarageCar) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *car
	m.cars[car.ID] = &cp
	return nil
}

func (m *MemStore) GetCar(id string) (*ds.GarageCar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.cars[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *car
	return &cp, nil
}

func (m *MemStore) ListCars(userID int64) ([]ds.GarageCar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ds.GarageCar
	for _, car := range m.cars {
		if car.UserID == userID {
			out = append(out, *car)
		}
	}
	// свежие первыми, как в Repository
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemStore) DeleteCar(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cars[id]; !ok {
		return ErrNotFound
	}
	delete(m.cars, id)
	return nil
}

func (m *MemStore) SetActiveCar(userID int64, carID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if carID == nil {
		m.active[userID] = nil
		return nil
	}
	id := *carID
	m.active[userID] = &id
	return nil
}

func (m *MemStore) GetActiveCarID(userID int64) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.active[userID]
	if id == nil {
		return nil, nil
	}
	cp := *id
	return &cp, nil
}

func (m *MemStore) CreditBonusOnce(entry *ds.BonusEntry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strconv.FormatInt(entry.UserID, 10) + ":" + entry.RequestID + ":" + entry.Reason
	if _, ok := m.bonus[key]; ok {
		return false, nil
	}
	cp := *entry
	m.bonus[key] = &cp
	return true, nil
}

func (m *MemStore) BonusBalance(userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, e := range m.bonus {
		if e.UserID == userID {
			total += e.Delta
		}
	}
	return total, nil
}
