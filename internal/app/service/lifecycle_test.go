package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"autoservice/internal/app/category"
	"autoservice/internal/app/config"
	"autoservice/internal/app/ds"
	"autoservice/internal/app/notify"
	"autoservice/internal/app/repository"
)

// stubNotifier записывает вызовы и сигналит о них в канал,
// чтобы тесты могли дождаться фоновой отправки
type stubNotifier struct {
	mu sync.Mutex

	staffTopics []int
	staffErr    error
	edited      []string
	clients     []string
	clientErr   bool

	staffDone  chan struct{}
	clientDone chan struct{}
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{
		staffDone:  make(chan struct{}, 10),
		clientDone: make(chan struct{}, 10),
	}
}

func (s *stubNotifier) NotifyStaff(req *ds.ServiceRequest, topicID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.staffDone <- struct{}{} }()
	if s.staffErr != nil {
		return 0, s.staffErr
	}
	s.staffTopics = append(s.staffTopics, topicID)
	return 1000 + len(s.staffTopics), nil
}

func (s *stubNotifier) EditStaffMessage(req *ds.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edited = append(s.edited, req.ID)
	return nil
}

func (s *stubNotifier) NotifyClient(req *ds.ServiceRequest) notify.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.clientDone <- struct{}{} }()
	if s.clientErr {
		return notify.Suppressed("chat not found")
	}
	s.clients = append(s.clients, req.ID)
	return notify.Delivered()
}

func (s *stubNotifier) waitStaff(t *testing.T) {
	t.Helper()
	select {
	case <-s.staffDone:
	case <-time.After(2 * time.Second):
		t.Fatal("staff notification not dispatched")
	}
}

func (s *stubNotifier) waitClient(t *testing.T) {
	t.Helper()
	select {
	case <-s.clientDone:
	case <-time.After(2 * time.Second):
		t.Fatal("client notification not dispatched")
	}
}

func newLifecycle(n *stubNotifier, allowReopen bool) (*Lifecycle, *repository.MemStore) {
	store := repository.NewMemStore()
	table := category.NewTable(category.DefaultTopics())
	cfg := config.LifecycleConfig{AllowReopen: allowReopen, BonusOnDone: 100, ListLimit: 50}
	return NewLifecycle(store, table, n, cfg), store
}

func submitInput() SubmitInput {
	return SubmitInput{
		Category:    "ТО/Ремонт",
		CarClass:    "Бизнес",
		CarModel:    "BMW 5",
		Description: "oil change",
		User:        ds.TgUser{ID: 42, FirstName: "Иван", Username: "ivan"},
	}
}

func TestSubmit(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, false)

	req, err := l.Submit(submitInput())
	if err != nil {
		t.Fatal(err)
	}
	if req.ID == "" {
		t.Error("id must be generated")
	}
	if req.Status != ds.StatusNew {
		t.Errorf("status = %s, want new", req.Status)
	}
	if req.CategoryKey != "service" {
		t.Errorf("categoryKey = %s, want service", req.CategoryKey)
	}
	if !req.CreatedAt.Equal(req.UpdatedAt) {
		t.Error("createdAt must equal updatedAt")
	}
	if req.ClientLine == "" {
		t.Error("clientLine must be computed at creation")
	}

	n.waitStaff(t)
	if len(n.staffTopics) != 1 || n.staffTopics[0] != 4 {
		t.Errorf("staff notified in topics %v, want [4]", n.staffTopics)
	}

	// id сообщения в топике сохраняется для edit-in-place
	stored, err := l.GetRequest(req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.TopicMessageID == 0 {
		t.Error("topic message id must be saved after dispatch")
	}
}

func TestSubmitMissingFields(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, false)

	in := submitInput()
	in.Description = ""
	if _, err := l.Submit(in); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}

	in = submitInput()
	in.CarModel = "   "
	if _, err := l.Submit(in); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}

	// запись не создана
	items, _ := l.ListMyRequests(42)
	if len(items) != 0 {
		t.Error("rejected submit must not create a record")
	}
}

func TestSubmitUnknownCategory(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, false)

	in := submitInput()
	in.Category = "эвакуатор"
	if _, err := l.Submit(in); !errors.Is(err, category.ErrUnknown) {
		t.Fatalf("want category.ErrUnknown, got %v", err)
	}
}

func TestSubmitNotificationFailureKeepsRecord(t *testing.T) {
	n := newStubNotifier()
	n.staffErr = errors.New("telegram down")
	l, _ := newLifecycle(n, false)

	req, err := l.Submit(submitInput())
	if err != nil {
		t.Fatal(err)
	}
	n.waitStaff(t)

	// заявка не осиротела: она есть в выдаче пользователя
	items, err := l.ListMyRequests(42)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != req.ID {
		t.Error("request must survive failed notification")
	}
}

func TestSubmitWithGarageCar(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, false)

	car, err := l.AddCar(42, "BMW 520d", "Бизнес", "А123ВС77")
	if err != nil {
		t.Fatal(err)
	}

	in := submitInput()
	in.CarID = car.ID
	req, err := l.Submit(in)
	if err != nil {
		t.Fatal(err)
	}
	if req.CarTitle != "BMW 520d" || req.CarPlate != "А123ВС77" {
		t.Error("garage car reference must be denormalized into the request")
	}

	// чужая машина — Forbidden
	in = submitInput()
	in.User.ID = 99
	in.CarID = car.ID
	if _, err := l.Submit(in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestTransitionFlowAndBonus(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, false)

	req, err := l.Submit(submitInput())
	if err != nil {
		t.Fatal(err)
	}
	n.waitStaff(t)

	if _, err := l.Transition(req.ID, ds.StatusInWork); err != nil {
		t.Fatal(err)
	}
	n.waitClient(t)

	updated, err := l.Transition(req.ID, ds.StatusDone)
	if err != nil {
		t.Fatal(err)
	}
	n.waitClient(t)
	if updated.Status != ds.StatusDone {
		t.Errorf("status = %s, want done", updated.Status)
	}

	balance, err := l.BonusBalance(42)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 100 {
		t.Errorf("balance = %d, want 100", balance)
	}

	// терминальный статус: дальнейшие переходы отклоняются
	if _, err := l.Transition(req.ID, ds.StatusInWork); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("terminal request must reject transition, got %v", err)
	}
	if _, err := l.Transition(req.ID, ds.StatusDone); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("terminal request must reject transition, got %v", err)
	}
}

func TestTransitionIllegalEdge(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, false)

	req, err := l.Submit(submitInput())
	if err != nil {
		t.Fatal(err)
	}

	// new -> done минуя inwork запрещён
	if _, err := l.Transition(req.ID, ds.StatusDone); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}

	got, _ := l.GetRequest(req.ID)
	if got.Status != ds.StatusNew {
		t.Errorf("status must stay new, got %s", got.Status)
	}
}

func TestTransitionUnknownRequest(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, false)

	if _, err := l.Transition("missing", ds.StatusInWork); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestReopenPolicyDoesNotDoubleCredit(t *testing.T) {
	n := newStubNotifier()
	l, _ := newLifecycle(n, true)

	req, err := l.Submit(submitInput())
	if err != nil {
		t.Fatal(err)
	}

	steps := []ds.Status{ds.StatusInWork, ds.StatusDone, ds.StatusInWork, ds.StatusDone}
	for _, s := range steps {
		if _, err := l.Transition(req.ID, s); err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
		n.waitClient(t)
	}

	// done достигнут дважды, бонус начислен один раз
	balance, _ := l.BonusBalance(42)
	if balance != 100 {
		t.Errorf("balance = %d, want 100", balance)
	}
}

func TestClientNotificationSuppressed(t *testing.T) {
	n := newStubNotifier()
	n.clientErr = true
	l, _ := newLifecycle(n, false)

	req, err := l.Submit(submitInput())
	if err != nil {
		t.Fatal(err)
	}

	// подавленное уведомление клиента не ошибка для менеджера
	if _, err := l.Transition(req.ID, ds.StatusInWork); err != nil {
		t.Fatalf("suppressed client notification must not fail transition: %v", err)
	}
	n.waitClient(t)
}
