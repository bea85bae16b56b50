package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"quote-service/internal/models"
	"quote-service/internal/pricing"
	"quote-service/internal/repository"
	"quote-service/internal/worker"
	utils "quote-service/shared/utils"
)

// ============================================================================
// FAKE REPOSITORIES
// ============================================================================

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]models.Company
	order     []string
}

func newFakeCompanyRepo(companies ...models.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[string]models.Company{}}
	for _, c := range companies {
		r.companies[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; ok {
		return fmt.Errorf("company %s: %w", company.ID, repository.ErrDuplicate)
	}
	r.companies[company.ID] = *company
	r.order = append(r.order, company.ID)
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, fmt.Errorf("company %s: %w", id, repository.ErrNotFound)
	}
	return &c, nil
}

func (r *fakeCompanyRepo) List(_ context.Context) ([]models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Company, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.companies[id])
	}
	return out, nil
}

func (r *fakeCompanyRepo) ListOffering(ctx context.Context, insuranceType string) ([]models.Company, error) {
	all, _ := r.List(ctx)
	out := []models.Company{}
	for _, c := range all {
		if c.InsuranceTypes.Offers(insuranceType) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) UpdateProfile(_ context.Context, company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return fmt.Errorf("company %s: %w", company.ID, repository.ErrNotFound)
	}
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) UpdateInsuranceTypes(_ context.Context, id string, products models.InsuranceProducts) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return fmt.Errorf("company %s: %w", id, repository.ErrNotFound)
	}
	c.InsuranceTypes = products
	r.companies[id] = c
	return nil
}

func (r *fakeCompanyRepo) UpdateLogo(_ context.Context, id, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return fmt.Errorf("company %s: %w", id, repository.ErrNotFound)
	}
	c.LogoURL = logoURL
	r.companies[id] = c
	return nil
}

func (r *fakeCompanyRepo) Ping(context.Context) error { return nil }

type fakeCompanyCache struct {
	mu          sync.Mutex
	entries     map[string]models.Company
	invalidated []string
}

func newFakeCompanyCache() *fakeCompanyCache {
	return &fakeCompanyCache{entries: map[string]models.Company{}}
}

func (c *fakeCompanyCache) Get(_ context.Context, id string) (*models.Company, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	company, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &company, true, nil
}

func (c *fakeCompanyCache) Set(_ context.Context, company *models.Company) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[company.ID] = *company
	return nil
}

func (c *fakeCompanyCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user %s: %w", user.Email, repository.ErrDuplicate)
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	return &u, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.UserSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]models.UserSession{}}
}

func (r *fakeSessionRepo) CreateSession(_ context.Context, session *models.UserSession, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.CreatedAt = time.Now()
	session.ExpiresAt = session.CreatedAt.Add(ttl)
	session.IsActive = true
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) GetSession(_ context.Context, id string) (*models.UserSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, repository.ErrNotFound)
	}
	return &s, nil
}

func (r *fakeSessionRepo) DeleteSession(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteUserSessions(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

// fakeChatSessionRepo stores serialized copies, like Redis does.
type fakeChatSessionRepo struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves int
}

func newFakeChatSessionRepo() *fakeChatSessionRepo {
	return &fakeChatSessionRepo{data: map[string][]byte{}}
}

func (r *fakeChatSessionRepo) Save(_ context.Context, session *models.ChatSession) error {
	raw, err := utils.SerializeModel(session)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[session.ID] = raw
	r.saves++
	return nil
}

func (r *fakeChatSessionRepo) Get(_ context.Context, id string) (*models.ChatSession, error) {
	r.mu.Lock()
	raw, ok := r.data[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("chat session %s: %w", id, repository.ErrNotFound)
	}
	var session models.ChatSession
	if err := utils.DeserializeModel(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *fakeChatSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("chat session %s: %w", id, repository.ErrNotFound)
	}
	delete(r.data, id)
	return nil
}

// ============================================================================
// FAKE COLLABORATORS
// ============================================================================

type storedObject struct {
	bucket, name, contentType string
	data                      []byte
}

type fakeStorage struct {
	mu      sync.Mutex
	objects []storedObject
	err     error
}

func (s *fakeStorage) UploadBytes(_ context.Context, bucket, name string, data []byte, contentType string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, storedObject{bucket: bucket, name: name, contentType: contentType, data: data})
	return nil
}

func (s *fakeStorage) ObjectURL(bucket, name string) string {
	return "http://minio.local/" + bucket + "/" + name
}

// inlineJobs runs every job synchronously and remembers its name.
type inlineJobs struct {
	mu    sync.Mutex
	names []string
	errs  []error
}

func (j *inlineJobs) SubmitJob(name string, job worker.Job) error {
	err := job(context.Background())
	j.mu.Lock()
	defer j.mu.Unlock()
	j.names = append(j.names, name)
	j.errs = append(j.errs, err)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.QuoteCalculatedEvent
}

func (p *fakePublisher) PublishQuoteCalculated(_ context.Context, evt models.QuoteCalculatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type sentMail struct {
	to    string
	quote models.QuoteResponse
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) SendQuoteSummary(to string, quote models.QuoteResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, quote: quote})
	return nil
}

type chatCall struct {
	systemPrompt string
	history      []models.ChatMessage
	message      string
}

// scriptedModel answers with the queued replies in order.
type scriptedModel struct {
	replies []string
	err     error
	calls   []chatCall
}

func (m *scriptedModel) Chat(_ context.Context, systemPrompt string, history []models.ChatMessage, message string) (string, error) {
	m.calls = append(m.calls, chatCall{systemPrompt: systemPrompt, history: history, message: message})
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", fmt.Errorf("no scripted reply left")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

// ============================================================================
// FIXTURES
// ============================================================================

const (
	testCompanyID  = "0b5c7f4e-3d0a-4c84-9a4e-6f2a52c1d001"
	otherCompanyID = "0b5c7f4e-3d0a-4c84-9a4e-6f2a52c1d002"
)

func lifeProduct() pricing.InsuranceProduct {
	return pricing.InsuranceProduct{
		Type:        "life",
		DisplayName: "Life Insurance",
		BasePrice:   300,
		Fields: []pricing.RatingField{
			pricing.NewSelectField("smoker", "Are you a smoker?", 1.0,
				pricing.FieldOption{Value: "Yes", Multiplier: 1.5},
				pricing.FieldOption{Value: "No", Multiplier: 1.0},
			),
			pricing.NewRangeField("coverageYears", "How many years of coverage?", 1.2,
				pricing.FieldBracket{Min: 10, Max: 20, Multiplier: 1.0},
			),
		},
	}
}

func testCompanies() []models.Company {
	defaults := models.InsuranceProducts(pricing.DefaultProducts())
	auto, _ := defaults.Find("auto")
	return []models.Company{
		{ID: testCompanyID, Name: "Secure Insurance Co.", Email: "contact@secure.example",
			InsuranceTypes: models.InsuranceProducts{auto, lifeProduct()}},
		{ID: otherCompanyID, Name: "Guardian Insurance", Email: "info@guardian.example",
			InsuranceTypes: models.InsuranceProducts{auto}},
	}
}
