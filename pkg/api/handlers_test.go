package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trial-screening/pkg/logging"
	"trial-screening/pkg/metrics"
	"trial-screening/pkg/middleware"
	"trial-screening/pkg/models"
	"trial-screening/pkg/services"
	"trial-screening/pkg/wizard"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingNotifier struct {
	identified []string
	events     []string
	payloads   []interface{}
}

func (n *recordingNotifier) Identify(subject string, _ models.Traits) error {
	n.identified = append(n.identified, subject)
	return nil
}

func (n *recordingNotifier) Track(event string, payload interface{}) error {
	n.events = append(n.events, event)
	n.payloads = append(n.payloads, payload)
	return nil
}

type testServer struct {
	router   *gin.Engine
	notifier *recordingNotifier
	cookie   *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewScreeningMetrics(reg)
	notifier := &recordingNotifier{}
	store := services.NewSessionStore(func(string) *wizard.Controller {
		return wizard.NewController(notifier, wizard.WithLogger(logging.Discard()), wizard.WithMetrics(m))
	}, time.Minute)

	router := gin.New()
	h := NewHandlers(Destinations{Disqualified: "/sorry", Completed: "/thank-you"}, logging.Discard())
	RegisterRoutes(router, h, middleware.Session(store, "sid"), reg)
	return &testServer{router: router, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			s.cookie = c
		}
	}
	return w
}

var step1Form = url.Values{"contact": {"a@b.com"}, "age": {"25"}, "diagnosis": {"nsclc"}}

func TestShowScreeningRendersStep1(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/screening", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="step-1"`)
	require.NotNil(t, s.cookie)
}

func TestRootRedirectsToScreening(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/screening", w.Header().Get("Location"))
}

func TestFullApplicationCompletes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/screening/step1", step1Form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/screening", w.Header().Get("Location"))
	assert.Equal(t, []string{"a@b.com"}, s.notifier.identified)

	w = s.do(t, http.MethodGet, "/screening", nil)
	assert.Contains(t, w.Body.String(), `id="step-2"`)

	w = s.do(t, http.MethodPost, "/screening/submit", url.Values{
		"recentChemo": {"no"}, "canTravel": {"yes"}, "diagnosisStage": {"stage3"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/thank-you", w.Header().Get("Location"))
	assert.Equal(t, []string{wizard.EventStep1Completed, wizard.EventApplicationSubmitted}, s.notifier.events)

	body, err := json.Marshal(s.notifier.payloads[1])
	require.NoError(t, err)
	var final map[string]any
	require.NoError(t, json.Unmarshal(body, &final))
	for _, key := range []string{"contact", "age", "diagnosis", "diagnosisStage", "recentChemo", "canTravel"} {
		assert.Contains(t, final, key)
	}

	// a second submit lands on the same page without another event
	w = s.do(t, http.MethodPost, "/screening/submit", url.Values{
		"recentChemo": {"no"}, "canTravel": {"yes"}, "diagnosisStage": {"stage3"},
	})
	assert.Equal(t, "/thank-you", w.Header().Get("Location"))
	assert.Len(t, s.notifier.events, 2)

	w = s.do(t, http.MethodGet, "/screening", nil)
	assert.Equal(t, "/thank-you", w.Header().Get("Location"))
}

func TestMinorIsRedirectedToSorry(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/screening/step1", url.Values{
		"contact": {"5551234567"}, "age": {"17"}, "diagnosis": {"nsclc"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sorry", w.Header().Get("Location"))
	assert.Empty(t, s.notifier.events)
	assert.Empty(t, s.notifier.identified)
}

func TestRecentChemoIsRedirectedToSorry(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/screening/step1", step1Form)
	w := s.do(t, http.MethodPost, "/screening/submit", url.Values{
		"recentChemo": {"yes"}, "canTravel": {"yes"}, "diagnosisStage": {"stage1"},
	})
	assert.Equal(t, "/sorry", w.Header().Get("Location"))
	assert.Equal(t, []string{wizard.EventStep1Completed}, s.notifier.events)
}

func TestInvalidStep1RendersInlineErrors(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/screening/step1", url.Values{"contact": {"nope"}, "age": {"200"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please enter a valid email or a 10-digit phone number.")
	assert.Contains(t, body, "Please enter a valid age")
	assert.Contains(t, body, "Please select a primary cancer diagnosis.")
	assert.Contains(t, body, `value="nope"`)
	assert.Empty(t, s.notifier.events)
}

func TestInvalidStep2RendersInlineErrors(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/screening/step1", step1Form)
	w := s.do(t, http.MethodPost, "/screening/submit", url.Values{"recentChemo": {"no"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please tell us whether you are able to travel.")
	assert.Len(t, s.notifier.events, 1)
}

func TestSubmitBeforeStep1RedirectsBack(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/screening/submit", url.Values{
		"recentChemo": {"no"}, "canTravel": {"yes"}, "diagnosisStage": {"stage1"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/screening", w.Header().Get("Location"))
	assert.Empty(t, s.notifier.events)
}

func TestValidateFieldEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/screening/fields/contact", url.Values{"value": {"bad"}})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["valid"])
	assert.Equal(t, "invalid_format", resp["kind"])

	w = s.do(t, http.MethodPost, "/screening/fields/age", url.Values{"value": {"44"}})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["valid"])
	assert.Equal(t, "", resp["message"])

	w = s.do(t, http.MethodPost, "/screening/fields/ssn", url.Values{"value": {"1"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTerminalPagesAndHealth(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/sorry", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/thank-you", nil).Code)

	w := s.do(t, http.MethodGet, "/health", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	s.do(t, http.MethodPost, "/screening/step1", step1Form)
	w = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Contains(t, w.Body.String(), "trial_screening_transitions_total")
}

func TestFormErrorsReporter(t *testing.T) {
	fe := FormErrors{}
	fe.ReportVerdict("contact", validationFailure("msg"))
	fe.ReportVerdict("contact", validationFailure("msg"))
	assert.Equal(t, FormErrors{"contact": "msg"}, fe)
	fe.ReportVerdict("contact", validationOK())
	assert.Empty(t, fe)
}
