package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trial-screening/pkg/logging"
	"trial-screening/pkg/middleware"
	"trial-screening/pkg/models"
	"trial-screening/pkg/validation"
	"trial-screening/pkg/wizard"
)

const screeningPath = "/screening"

// Destinations are the redirect targets for the two terminal states
type Destinations struct {
	Disqualified string
	Completed    string
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	destinations Destinations
	logger       *logging.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(destinations Destinations, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handlers{
		destinations: destinations,
		logger:       logger,
	}
}

// FormErrors is the HTTP Reporter: the inline message per field for the
// page being rendered
type FormErrors map[string]string

func (fe FormErrors) ReportVerdict(field validation.Field, v validation.Verdict) {
	if v.Valid {
		delete(fe, string(field))
		return
	}
	fe[string(field)] = v.Message
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ShowScreening renders the step the session is on
func (h *Handlers) ShowScreening(c *gin.Context) {
	ctrl := middleware.Controller(c)
	switch out := ctrl.Outcome(); out.State {
	case wizard.Step1Active:
		h.renderStep1(c, http.StatusOK, models.Step1Input{}, FormErrors{})
	case wizard.Step2Active:
		h.renderStep2(c, http.StatusOK, models.Step2Input{}, FormErrors{})
	default:
		h.redirect(c, out)
	}
}

type fieldRequest struct {
	Value string `json:"value" form:"value"`
}

// ValidateField is the real-time check fired on every keystroke
func (h *Handlers) ValidateField(c *gin.Context) {
	field := validation.Field(c.Param("field"))
	if !validation.KnownField(field) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown field"})
		return
	}

	var req fieldRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	v := middleware.Controller(c).OnFieldChanged(field, req.Value, wizard.DiscardReporter)
	c.JSON(http.StatusOK, gin.H{
		"field":   field,
		"valid":   v.Valid,
		"kind":    v.Kind,
		"message": v.Message,
	})
}

// AdvanceStep1 handles the "next" action on step 1
func (h *Handlers) AdvanceStep1(c *gin.Context) {
	var in models.Step1Input
	if err := c.ShouldBind(&in); err != nil {
		h.logger.Warn("error binding step 1", "error", err)
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	errs := FormErrors{}
	out, err := middleware.Controller(c).OnAdvanceRequested(in, errs)
	switch {
	case errors.Is(err, wizard.ErrInvalidTransition):
		h.logger.Debug("ignoring repeated advance", "session_id", middleware.SessionID(c), "state", string(out.State))
		h.redirect(c, out)
	case err != nil:
		h.renderStep1(c, http.StatusUnprocessableEntity, in, errs)
	default:
		h.redirect(c, out)
	}
}

// SubmitApplication handles the final submission on step 2
func (h *Handlers) SubmitApplication(c *gin.Context) {
	var in models.Step2Input
	if err := c.ShouldBind(&in); err != nil {
		h.logger.Warn("error binding step 2", "error", err)
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	errs := FormErrors{}
	out, err := middleware.Controller(c).OnSubmitRequested(in, errs)
	switch {
	case errors.Is(err, wizard.ErrInvalidTransition):
		h.logger.Debug("ignoring submit outside step 2", "session_id", middleware.SessionID(c), "state", string(out.State))
		h.redirect(c, out)
	case err != nil:
		h.renderStep2(c, http.StatusUnprocessableEntity, in, errs)
	default:
		h.redirect(c, out)
	}
}

// Sorry is the default disqualification page
func (h *Handlers) Sorry(c *gin.Context) {
	c.HTML(http.StatusOK, "sorry.html", nil)
}

// ThankYou is the default completion page
func (h *Handlers) ThankYou(c *gin.Context) {
	c.HTML(http.StatusOK, "thank-you.html", nil)
}

func (h *Handlers) redirect(c *gin.Context, out wizard.Outcome) {
	target := screeningPath
	switch out.Destination {
	case wizard.Disqualification:
		target = h.destinations.Disqualified
	case wizard.Completion:
		target = h.destinations.Completed
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handlers) renderStep1(c *gin.Context, status int, in models.Step1Input, errs FormErrors) {
	c.HTML(status, "step1.html", gin.H{
		"Values":           in,
		"Errors":           errs,
		"DiagnosisOptions": validation.DiagnosisOptions,
	})
}

func (h *Handlers) renderStep2(c *gin.Context, status int, in models.Step2Input, errs FormErrors) {
	c.HTML(status, "step2.html", gin.H{
		"Values":       in,
		"Errors":       errs,
		"StageOptions": validation.StageOptions,
		"YesNoOptions": validation.YesNoOptions,
	})
}
