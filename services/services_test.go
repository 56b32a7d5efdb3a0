package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	id := uuid.New()
	token, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != id {
		t.Fatalf("Parse = %s, want %s", got, id)
	}
}

func TestTokenRejected(t *testing.T) {
	t.Parallel()

	issuer, _ := NewTokenIssuer(testSecret, time.Hour)
	other, _ := NewTokenIssuer("another-secret-of-enough-length", time.Hour)

	token, err := other.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := issuer.Parse(token); !errs.IsInvalidTokenError(err) {
		t.Fatalf("Parse foreign token = %v, want invalid token", err)
	}
	if _, err := issuer.Parse("not.a.token"); !errs.IsInvalidTokenError(err) {
		t.Fatalf("Parse garbage = %v, want invalid token", err)
	}

	past := time.Now().Add(-48 * time.Hour)
	issuer.now = func() time.Time { return past }
	old, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	issuer.now = time.Now
	if _, err := issuer.Parse(old); !errs.IsTokenExpiredError(err) {
		t.Fatalf("Parse expired = %v, want token expired", err)
	}
}

func TestNewTokenIssuerShortSecret(t *testing.T) {
	t.Parallel()
	if _, err := NewTokenIssuer("short", time.Hour); err == nil {
		t.Fatal("NewTokenIssuer: expected error for short secret")
	}
}

func TestPasswords(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatal("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "battery staple") {
		t.Fatal("CheckPassword accepted the wrong password")
	}
	if _, err := HashPassword("short"); !errors.Is(err, errs.ErrInvalidField) {
		t.Fatalf("HashPassword(short) = %v, want ErrInvalidField", err)
	}
}

func TestEmailNotifier(t *testing.T) {
	t.Parallel()

	var got ResendEmailRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	n := NewEmailNotifier(map[string]string{
		"RESEND_API_KEY":     "re_test",
		"RESEND_FROM_EMAIL":  "Site <site@example.com>",
		"CONTACT_RECIPIENTS": "owner@example.com",
	})
	if n == nil {
		t.Fatal("NewEmailNotifier returned nil for complete config")
	}
	n.Endpoint = srv.URL
	n.HTTPClient = srv.Client()

	err := n.Notify(context.Background(), Notification{Subject: "Hi", Body: "<b>x</b>\nline"})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if auth != "Bearer re_test" {
		t.Errorf("Authorization = %q, want Bearer re_test", auth)
	}
	if got.Subject != "Hi" || len(got.To) != 1 || got.To[0] != "owner@example.com" {
		t.Errorf("request = %+v", got)
	}
	if got.Html != "<p>&lt;b&gt;x&lt;/b&gt;<br>line</p>" {
		t.Errorf("html = %q", got.Html)
	}
}

func TestEmailNotifierError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	n := &EmailNotifier{APIKey: "k", From: "f@example.com", Recipients: []string{"a@example.com"}, Endpoint: srv.URL}
	err := n.Notify(context.Background(), Notification{Subject: "Hi"})
	if err == nil || !strings.Contains(err.Error(), "invalid from") {
		t.Fatalf("Notify = %v, want resend error", err)
	}
	if NewEmailNotifier(map[string]string{"RESEND_API_KEY": "k"}) != nil {
		t.Fatal("NewEmailNotifier should be nil without sender and recipients")
	}
}

type fakeMessages struct {
	params []*openapi.CreateMessageParams
}

func (f *fakeMessages) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSNotifier(t *testing.T) {
	t.Parallel()

	fake := &fakeMessages{}
	s := &SMSNotifier{api: fake, from: "+15550001", to: "+15550002"}
	if err := s.Notify(context.Background(), Notification{Subject: "New contact", Body: strings.Repeat("x", 600)}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(fake.params) != 1 {
		t.Fatalf("CreateMessage calls = %d, want 1", len(fake.params))
	}
	p := fake.params[0]
	if *p.To != "+15550002" || *p.From != "+15550001" {
		t.Errorf("to/from = %s/%s", *p.To, *p.From)
	}
	if n := len([]rune(*p.Body)); n != smsMaxLength {
		t.Errorf("body length = %d, want %d", n, smsMaxLength)
	}
	if NewSMSNotifier(map[string]string{"TWILIO_ACCOUNT_SID": "AC1"}) != nil {
		t.Fatal("NewSMSNotifier should be nil with partial config")
	}
}

type memContactStore struct {
	mu       sync.Mutex
	messages []*models.ContactMessage
}

func (m *memContactStore) Add(msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

type recordingNotifier struct {
	sent []Notification
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, n Notification) error {
	r.sent = append(r.sent, n)
	return r.err
}

func TestContactSubmit(t *testing.T) {
	t.Parallel()

	store := &memContactStore{}
	failing := &recordingNotifier{err: errors.New("smtp down")}
	ok := &recordingNotifier{}
	svc := NewContactService(store, Notifiers{failing, ok})

	msg := &models.ContactMessage{Name: " Ana ", Email: "ana@example.com", Category: "uiux", Message: "Hello"}
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(store.messages) != 1 || store.messages[0].Name != "Ana" {
		t.Fatalf("stored = %+v", store.messages)
	}
	if len(ok.sent) != 1 || len(failing.sent) != 1 {
		t.Fatalf("notifications = %d/%d, want 1/1", len(ok.sent), len(failing.sent))
	}
	if !strings.Contains(ok.sent[0].Body, "ana@example.com") {
		t.Errorf("body = %q", ok.sent[0].Body)
	}

	if err := svc.Submit(context.Background(), &models.ContactMessage{Name: "Ana"}); !errors.Is(err, errs.ErrMissingRequiredField) {
		t.Fatalf("Submit without email = %v, want ErrMissingRequiredField", err)
	}
	if len(store.messages) != 1 {
		t.Fatal("invalid message was stored")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	gdb, err := database.Open(map[string]string{
		"DB_TYPE":     "sqlite",
		"SQLITE_PATH": filepath.Join(t.TempDir(), "seed.db"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := models.AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	db := database.New(gdb)

	first, err := Seed(db)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if first.Categories != 5 || first.Testimonials != 5 || first.Clients == 0 || first.Projects == 0 {
		t.Fatalf("first seed = %+v", first)
	}

	second, err := Seed(db)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if second != (SeedResult{}) {
		t.Fatalf("second seed = %+v, want nothing new", second)
	}

	public, err := db.TestimonialRepo().FindAll(false)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(public) != 5 {
		t.Fatalf("approved testimonials = %d, want 5", len(public))
	}
}

func TestSampleTestimonials(t *testing.T) {
	t.Parallel()

	samples := SampleTestimonials()
	if len(samples) != 5 {
		t.Fatalf("len = %d, want 5", len(samples))
	}
	for _, s := range samples {
		if err := s.Validate(); err != nil {
			t.Errorf("sample %q invalid: %v", s.Name, err)
		}
		if s.Status != models.StatusApproved {
			t.Errorf("sample %q status = %q", s.Name, s.Status)
		}
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Upload(t *testing.T) {
	t.Parallel()

	fake := &fakePutter{}
	u := newS3Uploader(fake, "portfolio-assets", "https://cdn.example.com/")

	url, err := u.Upload(context.Background(), "image/png", 4, strings.NewReader("\x89PNG"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	key := aws.ToString(fake.input.Key)
	if !strings.HasPrefix(key, "uploads/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("key = %q", key)
	}
	if url != "https://cdn.example.com/"+key {
		t.Errorf("url = %q, want cdn url for %q", url, key)
	}
	if aws.ToString(fake.input.Bucket) != "portfolio-assets" || fake.body != "\x89PNG" {
		t.Errorf("put = %+v body %q", fake.input, fake.body)
	}

	if _, err := u.Upload(context.Background(), "text/html", 4, strings.NewReader("<p>")); !errors.Is(err, errs.ErrInvalidField) {
		t.Fatalf("Upload html = %v, want ErrInvalidField", err)
	}
	if _, err := u.Upload(context.Background(), "image/png", MaxUploadSize+1, strings.NewReader("")); !errors.Is(err, errs.ErrMaxBodySizeExceeded) {
		t.Fatalf("Upload oversized = %v, want ErrMaxBodySizeExceeded", err)
	}
}
