package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/sharecache"
)

const (
	testEmail    = "admin@seovista.es"
	testPassword = "s3cret-pass"
)

func setupTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.CompanySettings{}, &models.Client{},
		&models.SeoPack{}, &models.Proposal{}, &models.Contract{},
		&models.ContractSection{}, &models.Invoice{}, &models.InvoiceShare{},
		&models.InvoiceCounter{}, &models.ClientDocument{}, &models.Keyword{},
		&models.LocalSeoSettings{}, &models.LocalSeoMetric{},
		&models.SeoMetric{}, &models.TimelineEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(&models.User{Email: testEmail, Password: string(hash), Name: "Admin"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	company := models.CompanySettings{
		Name: "SEO Vista SL", TaxID: "B12345678", Address: "Calle Mayor 1",
		City: "Valencia", PostalCode: "46001", Email: "hola@seovista.es",
		DefaultTaxRate: decimal.NewFromInt(21),
	}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	cache, err := sharecache.New("")
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	srv := httptest.NewServer(New(Deps{DB: db, Cache: cache, BaseURL: "https://crm.example.com"}))
	t.Cleanup(srv.Close)
	return srv, db
}

func doJSON(t *testing.T, method, url string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func login(t *testing.T, srv *httptest.Server) *http.Cookie {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/login", map[string]string{
		"email": testEmail, "password": testPassword,
	}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := setupTestServer(t)
	for _, path := range []string{"/health", "/healthz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
	}
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	srv, _ := setupTestServer(t)
	for _, path := range []string{"/clients", "/invoices", "/company", "/auth/me"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		if resp.StatusCode != http.StatusUnauthorized || body.Error != "unauthorized" {
			t.Fatalf("GET %s = %d %q, want 401 unauthorized", path, resp.StatusCode, body.Error)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, _ := setupTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/login", map[string]string{
		"email": testEmail, "password": "wrong",
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginAndMe(t *testing.T) {
	srv, _ := setupTestServer(t)
	cookie := login(t, srv)

	resp := doJSON(t, http.MethodGet, srv.URL+"/auth/me", nil, cookie)
	var me struct {
		Email string `json:"email"`
	}
	decodeBody(t, resp, &me)
	if resp.StatusCode != http.StatusOK || me.Email != testEmail {
		t.Fatalf("me = %d %q", resp.StatusCode, me.Email)
	}
}

func TestClientValidation(t *testing.T) {
	srv, _ := setupTestServer(t)
	cookie := login(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]string{"name": "  "}, cookie)
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, resp, &body)
	if resp.StatusCode != http.StatusBadRequest || body.Error != "validation_failed" {
		t.Fatalf("got %d %q", resp.StatusCode, body.Error)
	}
	if body.Details["name"] != "required" {
		t.Fatalf("details = %v", body.Details)
	}
}

func createClientOverHTTP(t *testing.T, srv *httptest.Server, cookie *http.Cookie) uuid.UUID {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]string{
		"name": "Panadería Sol", "email": "sol@example.com",
	}, cookie)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeBody(t, resp, &created)
	if resp.StatusCode != http.StatusCreated || created.ID == uuid.Nil {
		t.Fatalf("create client = %d %v", resp.StatusCode, created.ID)
	}
	return created.ID
}

func TestInvoiceFlowOverHTTP(t *testing.T) {
	srv, _ := setupTestServer(t)
	cookie := login(t, srv)
	clientID := createClientOverHTTP(t, srv, cookie)

	resp := doJSON(t, http.MethodPost, srv.URL+"/invoices", map[string]any{
		"clientId": clientID, "baseAmount": "500",
	}, cookie)
	var inv struct {
		ID            uuid.UUID       `json:"id"`
		InvoiceNumber string          `json:"invoiceNumber"`
		TotalAmount   decimal.Decimal `json:"totalAmount"`
		Status        string          `json:"status"`
	}
	decodeBody(t, resp, &inv)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %d", resp.StatusCode)
	}
	wantNumber := fmt.Sprintf("%d-0001", time.Now().Year())
	if inv.InvoiceNumber != wantNumber {
		t.Fatalf("number = %s, want %s", inv.InvoiceNumber, wantNumber)
	}
	if !inv.TotalAmount.Equal(decimal.NewFromInt(605)) || inv.Status != "draft" {
		t.Fatalf("total = %s status = %s", inv.TotalAmount, inv.Status)
	}

	statusURL := srv.URL + "/invoices/" + inv.ID.String() + "/status"
	resp = doJSON(t, http.MethodPost, statusURL, map[string]string{"status": "pending"}, cookie)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("to pending = %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodPost, statusURL, map[string]string{"status": "paid"}, cookie)
	var paid struct {
		Status      string     `json:"status"`
		PaymentDate *time.Time `json:"paymentDate"`
	}
	decodeBody(t, resp, &paid)
	if resp.StatusCode != http.StatusOK || paid.Status != "paid" || paid.PaymentDate == nil {
		t.Fatalf("to paid = %d %+v", resp.StatusCode, paid)
	}

	// paid is terminal
	resp = doJSON(t, http.MethodPost, statusURL, map[string]string{"status": "draft"}, cookie)
	var conflict struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &conflict)
	if resp.StatusCode != http.StatusConflict || conflict.Error != "invalid_status_change" {
		t.Fatalf("reopen = %d %q", resp.StatusCode, conflict.Error)
	}
}

func TestInvoicePDFOverHTTP(t *testing.T) {
	srv, _ := setupTestServer(t)
	cookie := login(t, srv)
	clientID := createClientOverHTTP(t, srv, cookie)

	resp := doJSON(t, http.MethodPost, srv.URL+"/invoices", map[string]any{
		"clientId": clientID, "baseAmount": "150",
	}, cookie)
	var inv struct {
		ID uuid.UUID `json:"id"`
	}
	decodeBody(t, resp, &inv)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/invoices/"+inv.ID.String()+"/pdf", nil)
	req.AddCookie(cookie)
	pdfResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	defer pdfResp.Body.Close()
	if pdfResp.StatusCode != http.StatusOK {
		t.Fatalf("pdf status = %d", pdfResp.StatusCode)
	}
	if ct := pdfResp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %s", ct)
	}
	head := make([]byte, 4)
	if _, err := pdfResp.Body.Read(head); err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(head) != "%PDF" {
		t.Fatalf("body starts with %q", head)
	}
}

func TestInvoiceShareRoundTripOverHTTP(t *testing.T) {
	srv, _ := setupTestServer(t)
	cookie := login(t, srv)
	clientID := createClientOverHTTP(t, srv, cookie)

	resp := doJSON(t, http.MethodPost, srv.URL+"/invoices", map[string]any{
		"clientId": clientID, "baseAmount": "100",
	}, cookie)
	var inv struct {
		ID uuid.UUID `json:"id"`
	}
	decodeBody(t, resp, &inv)

	resp = doJSON(t, http.MethodPost, srv.URL+"/invoices/"+inv.ID.String()+"/share", nil, cookie)
	var share struct {
		URL string `json:"url"`
	}
	decodeBody(t, resp, &share)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("share = %d", resp.StatusCode)
	}
	if !regexp.MustCompile(`^https://crm\.example\.com/invoices/share/[0-9a-f-]+$`).MatchString(share.URL) {
		t.Fatalf("url = %s", share.URL)
	}

	// public view, no session
	token := share.URL[strings.LastIndex(share.URL, "/")+1:]
	pubResp, err := http.Get(srv.URL + "/invoices/share/" + token)
	if err != nil {
		t.Fatalf("public view: %v", err)
	}
	var view struct {
		Invoice struct {
			ID uuid.UUID `json:"id"`
		} `json:"invoice"`
		Client struct {
			Name string `json:"name"`
		} `json:"client"`
	}
	decodeBody(t, pubResp, &view)
	if pubResp.StatusCode != http.StatusOK || view.Invoice.ID != inv.ID {
		t.Fatalf("public view = %d %v", pubResp.StatusCode, view.Invoice.ID)
	}
	if view.Client.Name != "Panadería Sol" {
		t.Fatalf("client name = %s", view.Client.Name)
	}

	missing, err := http.Get(srv.URL + "/invoices/share/" + uuid.NewString())
	if err != nil {
		t.Fatalf("missing token: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("missing token status = %d", missing.StatusCode)
	}
}

func TestExpiredProposalShareAnswers410(t *testing.T) {
	srv, db := setupTestServer(t)

	client := models.Client{ID: uuid.New(), Name: "Clínica Norte", IsActive: true}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	token := uuid.NewString()
	past := time.Now().Add(-24 * time.Hour)
	prop := models.Proposal{
		ID: uuid.New(), ClientID: client.ID, Title: "SEO local",
		Status: models.ProposalStatusSent, ShareToken: &token, ExpiresAt: &past,
	}
	if err := db.Create(&prop).Error; err != nil {
		t.Fatalf("seed proposal: %v", err)
	}

	resp, err := http.Get(srv.URL + "/proposals/share/" + token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	if resp.StatusCode != http.StatusGone || body.Error != "share_link_expired" {
		t.Fatalf("got %d %q, want 410 share_link_expired", resp.StatusCode, body.Error)
	}
}

func TestConvertProposalTwiceConflicts(t *testing.T) {
	srv, _ := setupTestServer(t)
	cookie := login(t, srv)
	clientID := createClientOverHTTP(t, srv, cookie)

	resp := doJSON(t, http.MethodPost, srv.URL+"/proposals", map[string]any{
		"clientId": clientID, "title": "Plan SEO", "customPrice": "300",
	}, cookie)
	var prop struct {
		ID uuid.UUID `json:"id"`
	}
	decodeBody(t, resp, &prop)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create proposal = %d", resp.StatusCode)
	}

	convertURL := srv.URL + "/proposals/" + prop.ID.String() + "/convert"
	first := doJSON(t, http.MethodPost, convertURL, nil, cookie)
	first.Body.Close()
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first convert = %d", first.StatusCode)
	}
	second := doJSON(t, http.MethodPost, convertURL, nil, cookie)
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, second, &body)
	if second.StatusCode != http.StatusConflict || body.Error != "proposal_already_invoiced" {
		t.Fatalf("second convert = %d %q", second.StatusCode, body.Error)
	}
}
