package handler

// In-memory fakes of the repository layer.  They mirror the SQL
// semantics the handlers rely on: exact email matching, ownership
// scoping folded into not-found, and user deletion that leaves
// predictions orphaned.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/model"
	"github.com/iliyamo/house-price-api/internal/repository"
	"github.com/iliyamo/house-price-api/internal/utils"
)

type fakeUserStore struct {
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, password string, cost int) (uint64, error) {
	for _, u := range s.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	u := model.User{ID: s.nextID, Email: email, PasswordHash: hash, CreatedAt: time.Now().UTC()}
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes the user row only; any predictions stay behind.
func (s *fakeUserStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) ToggleBlocked(_ context.Context, id uint64) (bool, error) {
	u, ok := s.users[id]
	if !ok {
		return false, repository.ErrUserNotFound
	}
	u.IsBlocked = !u.IsBlocked
	s.users[id] = u
	return u.IsBlocked, nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) RecentCount(_ context.Context, limit int) (int, error) {
	if len(s.users) < limit {
		return len(s.users), nil
	}
	return limit, nil
}

type fakeAdminStore struct {
	admins map[uint64]model.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: map[uint64]model.Admin{}}
}

func (s *fakeAdminStore) seed(t *testing.T, id uint64, email, password, role string) {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	s.admins[id] = model.Admin{ID: id, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now().UTC()}
}

func (s *fakeAdminStore) GetByEmail(_ context.Context, email string) (model.Admin, error) {
	for _, a := range s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Admin{}, repository.ErrAdminNotFound
}

func (s *fakeAdminStore) GetByID(_ context.Context, id uint64) (model.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return model.Admin{}, repository.ErrAdminNotFound
	}
	return a, nil
}

type fakePredictionStore struct {
	nextID uint64
	seq    int
	preds  map[uint64]model.Prediction
	users  *fakeUserStore // owner join for ListAll; may be nil
}

func newFakePredictionStore(users *fakeUserStore) *fakePredictionStore {
	return &fakePredictionStore{preds: map[uint64]model.Prediction{}, users: users}
}

var fakeEpoch = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func (s *fakePredictionStore) Create(_ context.Context, userID uint64, inputData string, price float64) (uint64, error) {
	s.nextID++
	s.seq++
	s.preds[s.nextID] = model.Prediction{
		ID:        s.nextID,
		UserID:    userID,
		InputData: inputData,
		Price:     price,
		CreatedAt: fakeEpoch.Add(time.Duration(s.seq) * time.Minute),
	}
	return s.nextID, nil
}

func (s *fakePredictionStore) ListByUser(_ context.Context, userID uint64) ([]model.Prediction, error) {
	var out []model.Prediction
	for _, p := range s.preds {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakePredictionStore) DeleteOwned(_ context.Context, userID, id uint64) error {
	p, ok := s.preds[id]
	if !ok || p.UserID != userID {
		return repository.ErrPredictionNotFound
	}
	delete(s.preds, id)
	return nil
}

func (s *fakePredictionStore) ToggleFavoriteOwned(_ context.Context, userID, id uint64) (bool, error) {
	p, ok := s.preds[id]
	if !ok || p.UserID != userID {
		return false, repository.ErrPredictionNotFound
	}
	p.Favorite = !p.Favorite
	s.preds[id] = p
	return p.Favorite, nil
}

func (s *fakePredictionStore) ListAll(ctx context.Context) ([]model.PredictionWithOwner, error) {
	var out []model.PredictionWithOwner
	for _, p := range s.preds {
		item := model.PredictionWithOwner{Prediction: p, OwnerEmail: "Unknown"}
		if s.users != nil {
			if u, err := s.users.GetByID(ctx, p.UserID); err == nil {
				item.OwnerEmail = u.Email
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakePredictionStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.preds[id]; !ok {
		return repository.ErrPredictionNotFound
	}
	delete(s.preds, id)
	return nil
}

func (s *fakePredictionStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.preds)), nil
}

func (s *fakePredictionStore) CountByUser(_ context.Context, userID uint64) (int64, error) {
	var n int64
	for _, p := range s.preds {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakePredictionStore) Stats(_ context.Context) (model.PredictionStats, error) {
	var st model.PredictionStats
	first := true
	var sum float64
	for _, p := range s.preds {
		st.Total++
		sum += p.Price
		if first || p.Price < st.MinPrice {
			st.MinPrice = p.Price
		}
		if first || p.Price > st.MaxPrice {
			st.MaxPrice = p.Price
		}
		first = false
	}
	if st.Total > 0 {
		st.AvgPrice = sum / float64(st.Total)
	}
	return st, nil
}

func (s *fakePredictionStore) RecentCount(_ context.Context, limit int) (int, error) {
	if len(s.preds) < limit {
		return len(s.preds), nil
	}
	return limit, nil
}

// ----- request helpers -----

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
