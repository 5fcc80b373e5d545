package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/drhenri-ux/octorlink/internal/auth"
	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/middleware"
	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/drhenri-ux/octorlink/internal/postal"
	"github.com/drhenri-ux/octorlink/internal/repository"
	"github.com/drhenri-ux/octorlink/internal/whatsapp"
	"github.com/drhenri-ux/octorlink/internal/wizard"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memLeads struct {
	mu      sync.Mutex
	leads   []models.Lead
	updates int
}

func (m *memLeads) InsertLead(_ context.Context, lead *models.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lead.ID = uuid.New()
	lead.CreatedAt = time.Now()
	m.leads = append([]models.Lead{*lead}, m.leads...)
	return nil
}

func (m *memLeads) ListLeads(context.Context) ([]models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Lead(nil), m.leads...), nil
}

func (m *memLeads) GetLead(_ context.Context, id uuid.UUID) (*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.leads {
		if l.ID == id {
			l := l
			return &l, nil
		}
	}
	return nil, repository.ErrLeadNotFound
}

func (m *memLeads) UpdateLeadStatus(_ context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	for i := range m.leads {
		if m.leads[i].ID == id {
			m.leads[i].Status = status
			return nil
		}
	}
	return repository.ErrLeadNotFound
}

func (m *memLeads) DeleteLead(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.leads {
		if m.leads[i].ID == id {
			m.leads = append(m.leads[:i], m.leads[i+1:]...)
			return nil
		}
	}
	return repository.ErrLeadNotFound
}

type memApps struct{ apps []models.App }

func (m *memApps) ListApps(context.Context) ([]models.App, error) { return m.apps, nil }
func (m *memApps) CreateApp(context.Context, *models.App) error   { return nil }
func (m *memApps) UpdateApp(context.Context, *models.App) error   { return nil }
func (m *memApps) DeleteApp(context.Context, uuid.UUID) error     { return nil }

type memReferrals struct{ refs []models.Referral }

func (m *memReferrals) InsertReferral(_ context.Context, r *models.Referral) error {
	r.ID = uuid.New()
	m.refs = append(m.refs, *r)
	return nil
}
func (m *memReferrals) ListReferrals(context.Context) ([]models.Referral, error) { return m.refs, nil }
func (m *memReferrals) UpdateReferralStatus(context.Context, uuid.UUID, string) error {
	return nil
}
func (m *memReferrals) DeleteReferral(context.Context, uuid.UUID) error { return nil }

type memAdmins struct{ admin models.AdminUser }

func (m *memAdmins) GetAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if email != m.admin.Email {
		return nil, repository.ErrAdminNotFound
	}
	a := m.admin
	return &a, nil
}

type noLookup struct{}

func (noLookup) Lookup(context.Context, string) (postal.Address, error) {
	return postal.Address{}, postal.ErrNotFound
}

type testServer struct {
	router *gin.Engine
	leads  *memLeads
	refs   *memReferrals
	jwt    *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	hash, err := auth.HashPassword("segredo123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	leads := &memLeads{}
	refs := &memReferrals{}
	jwtService := auth.NewJWTService("test-secret", "octorlink")
	apps := catalog.NewAppManager(&memApps{apps: []models.App{{ID: uuid.New(), Name: "Deezer"}}}, nil, logger)
	wizards := wizard.NewService(wizard.NewMemoryStore(time.Hour), noLookup{}, wizard.NewSubmitter(leads, logger), logger)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Logger:    logger,
		JWT:       jwtService,
		Admins:    &memAdmins{admin: models.AdminUser{ID: uuid.New(), Email: "admin@octorlink.com.br", PasswordHash: hash}},
		Leads:     leads,
		Wizards:   wizards,
		Apps:      apps,
		Referrals: catalog.NewReferralManager(refs, logger),
		WhatsApp:  whatsapp.Linker{Number: "5573982264379"},
		Version:   "test",
	})
	return &testServer{router: r, leads: leads, refs: refs, jwt: jwtService}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(uuid.New(), "admin@octorlink.com.br")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestWizardFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/wizard", OpenWizardRequest{Combo: true}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("open: status = %d, body = %s", w.Code, w.Body.String())
	}
	var view wizard.StepView
	decode(t, w, &view)
	if view.Step != 1 || view.Title != "Vamos começar!" || view.PlanLabel != wizard.ComboPlanLabel {
		t.Fatalf("view = %+v", view)
	}
	base := "/api/wizard/" + view.ID

	w = s.do(t, http.MethodPost, base+"/next", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("advance empty: status = %d", w.Code)
	}
	var errBody struct {
		Missing []string `json:"missing"`
	}
	decode(t, w, &errBody)
	if len(errBody.Missing) != 2 {
		t.Fatalf("missing = %v", errBody.Missing)
	}

	steps := []map[string]string{
		{"nome_completo": "Maria Silva", "telefone": "73999990000"},
		{"endereco": "Rua A", "numero": "10"},
		{},
	}
	for i, patch := range steps {
		w = s.do(t, http.MethodPost, base+"/next", patch, "")
		if w.Code != http.StatusOK {
			t.Fatalf("advance from step %d: status = %d, body = %s", i+1, w.Code, w.Body.String())
		}
		if i == 1 {
			decode(t, w, &view)
			if view.Step != 3 || len(view.Apps) != 1 || view.Apps[0].IconURL != catalog.PlaceholderIcon {
				t.Fatalf("step 3 view = %+v", view)
			}
		}
	}

	w = s.do(t, http.MethodPost, base+"/submit", map[string]string{"cpf_cnpj": "00000000000", "email": "m@x.com"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: status = %d, body = %s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPost, base+"/submit", nil, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("second submit: status = %d", w.Code)
	}
	if len(s.leads.leads) != 2 {
		t.Fatalf("leads = %d; want 2", len(s.leads.leads))
	}
	lead := s.leads.leads[0]
	if lead.Status != models.LeadStatusInterested || lead.FullName != "Maria Silva" || *lead.PlanName != wizard.ComboPlanLabel {
		t.Fatalf("lead = %+v", lead)
	}

	if w = s.do(t, http.MethodDelete, base, nil, ""); w.Code != http.StatusNoContent {
		t.Fatalf("close: status = %d", w.Code)
	}
	if w = s.do(t, http.MethodGet, base, nil, ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after close: status = %d", w.Code)
	}
}

func TestWizard_LookupFailureKeepsFields(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/wizard", nil, "")
	var view wizard.StepView
	decode(t, w, &view)
	base := "/api/wizard/" + view.ID

	s.do(t, http.MethodPatch, base, map[string]string{"endereco": "Rua digitada"}, "")
	w = s.do(t, http.MethodPost, base+"/cep", map[string]string{"cep": "45600-000"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("cep: status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Found bool `json:"address_found"`
	}
	decode(t, w, &resp)
	if resp.Found {
		t.Fatal("address should not be found")
	}
}

func TestBusinessLead(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/business-leads", map[string]string{"nome_completo": "Empresa X", "telefone": " "}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/business-leads", map[string]string{
		"nome_completo": "João", "telefone": "73988887777", "empresa_nome": "Padaria", "qtd_dispositivos": "11-25",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	lead := s.leads.leads[0]
	if *lead.LeadType != models.LeadTypeBusiness || *lead.PlanName != BusinessPlanLabel || *lead.CompanyName != "Padaria" {
		t.Fatalf("lead = %+v", lead)
	}
}

func TestLeadBoard(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	for _, status := range []string{models.LeadStatusInterested, models.LeadStatusProposalSent, models.LeadStatusCustomer, "arquivado"} {
		_ = s.leads.InsertLead(ctx, &models.Lead{Status: status, FullName: "Lead"})
	}
	token := s.token(t)

	if w := s.do(t, http.MethodGet, "/admin/api/leads/board", nil, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: status = %d", w.Code)
	}

	w := s.do(t, http.MethodGet, "/admin/api/leads/board", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var board struct {
		Columns []struct {
			Status string `json:"status"`
			Count  int    `json:"count"`
		} `json:"columns"`
		Total int `json:"total"`
	}
	decode(t, w, &board)
	if len(board.Columns) != 3 || board.Total != 4 {
		t.Fatalf("board = %+v", board)
	}
	for _, col := range board.Columns {
		if col.Count != 1 {
			t.Fatalf("column %s count = %d", col.Status, col.Count)
		}
	}

	id := s.leads.leads[len(s.leads.leads)-1].ID
	w = s.do(t, http.MethodPost, "/admin/api/leads/"+id.String()+"/move", models.LeadStatusRequest{Status: models.LeadStatusInterested}, token)
	if w.Code != http.StatusOK || s.leads.updates != 0 {
		t.Fatalf("same column: status = %d, updates = %d", w.Code, s.leads.updates)
	}
	w = s.do(t, http.MethodPost, "/admin/api/leads/"+id.String()+"/move", models.LeadStatusRequest{Status: "perdido"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: status = %d", w.Code)
	}
	w = s.do(t, http.MethodPost, "/admin/api/leads/"+id.String()+"/move", models.LeadStatusRequest{Status: models.LeadStatusCustomer}, token)
	if w.Code != http.StatusOK || s.leads.updates != 1 {
		t.Fatalf("move: status = %d, updates = %d", w.Code, s.leads.updates)
	}

	if w = s.do(t, http.MethodDelete, "/admin/api/leads/"+id.String(), nil, token); w.Code != http.StatusPreconditionRequired {
		t.Fatalf("unconfirmed delete: status = %d", w.Code)
	}
	if w = s.do(t, http.MethodDelete, "/admin/api/leads/"+id.String()+"?confirm=true", nil, token); w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if w = s.do(t, http.MethodGet, "/admin/api/leads/"+id.String(), nil, token); w.Code != http.StatusNotFound {
		t.Fatalf("get deleted: status = %d", w.Code)
	}
}

func TestLoginAndAdminPage(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/admin", nil, "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != middleware.LoginPath {
		t.Fatalf("status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}

	w = s.do(t, http.MethodPost, "/admin/login", models.LoginRequest{Email: "admin@octorlink.com.br", Password: "errada"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/admin/login", models.LoginRequest{Email: "admin@octorlink.com.br", Password: "segredo123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AdminCookie {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestReferralSubmit(t *testing.T) {
	s := newTestServer(t)

	bad := models.ReferralRequest{HolderName: "A", HolderSurname: "Souza", HolderPhone: "73999998888", FriendName: "João", FriendSurname: "Lima", FriendPhone: "73988887777"}
	if w := s.do(t, http.MethodPost, "/api/referrals", bad, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}

	good := bad
	good.HolderName = "Ana"
	if w := s.do(t, http.MethodPost, "/api/referrals", good, ""); w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201", w.Code)
	}

	w := s.do(t, http.MethodGet, "/admin/api/referrals", nil, s.token(t))
	var resp struct {
		Referrals []struct {
			HolderWhatsApp string `json:"titular_whatsapp"`
		} `json:"referrals"`
		Stats models.ReferralStats `json:"stats"`
	}
	decode(t, w, &resp)
	if resp.Stats.Pending != 1 || len(resp.Referrals) != 1 || resp.Referrals[0].HolderWhatsApp != "https://wa.me/5573999998888" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestWhatsAppLink(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/whatsapp-link?topic=business", nil, "")
	var resp struct {
		URL string `json:"url"`
	}
	decode(t, w, &resp)
	want := whatsapp.Linker{Number: "5573982264379"}.TopicLink(whatsapp.TopicBusiness)
	if resp.URL != want {
		t.Fatalf("url = %q; want %q", resp.URL, want)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&catalog.ValidationError{Field: "name"}, http.StatusBadRequest},
		{&wizard.StepError{Step: 1, Missing: []string{"telefone"}}, http.StatusBadRequest},
		{repository.ErrPlanNotFound, http.StatusNotFound},
		{catalog.ErrConfirmationRequired, http.StatusPreconditionRequired},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d; want %d", tt.err, got, tt.want)
		}
	}
}
