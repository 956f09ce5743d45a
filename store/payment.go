package store

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"cybertech/models"
)

// Checkout steps. A paid course walks details -> processing -> success (or
// error, with a manual retry back to details). Free and already-owned courses
// skip payment entirely and start at watching.
type Step string

const (
	StepDetails    Step = "details"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
	StepError      Step = "error"
	StepWatching   Step = "watching"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
)

// Checkout drives the purchase flow for one course. It is not safe for
// concurrent use; each checkout belongs to a single request.
type Checkout struct {
	course      models.Course
	step        Step
	fieldErrors map[string]string
	delay       time.Duration
	process     func(ctx context.Context) error
	now         func() time.Time
}

// CheckoutOption adjusts checkout behavior, mostly for tests.
type CheckoutOption func(*Checkout)

// WithDelay overrides the simulated processor delay.
func WithDelay(d time.Duration) CheckoutOption {
	return func(c *Checkout) { c.delay = d }
}

// WithProcessor overrides the simulated processor outcome.
func WithProcessor(fn func(ctx context.Context) error) CheckoutOption {
	return func(c *Checkout) { c.process = fn }
}

// WithClock overrides the clock used for card expiry checks.
func WithClock(now func() time.Time) CheckoutOption {
	return func(c *Checkout) { c.now = now }
}

// NewCheckout starts the flow for course. ownedIDs is the acting user's
// current purchase list.
func NewCheckout(course models.Course, ownedIDs []string, opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		course: course,
		step:   StepDetails,
		delay:  2 * time.Second,
		now:    time.Now,
	}
	if course.IsFree || course.Price == 0 || slices.Contains(ownedIDs, course.ID) {
		c.step = StepWatching
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checkout) Step() Step { return c.step }

// FieldErrors reports the per-field messages from the last rejected submit.
func (c *Checkout) FieldErrors() map[string]string { return c.fieldErrors }

// Submit validates the card fields and runs the simulated processor. Invalid
// fields keep the flow at details; a processor failure lands on error, from
// which Retry returns to details.
func (c *Checkout) Submit(ctx context.Context, info models.PaymentInfo) (Step, error) {
	if c.step != StepDetails {
		return c.step, fmt.Errorf("checkout is not awaiting payment details: %w", models.ErrValidation)
	}

	if errs := ValidatePaymentInfo(info, c.now()); len(errs) > 0 {
		c.fieldErrors = errs
		return c.step, fmt.Errorf("invalid payment details: %w", models.ErrValidation)
	}
	c.fieldErrors = nil
	c.step = StepProcessing

	select {
	case <-ctx.Done():
		c.step = StepError
		return c.step, ctx.Err()
	case <-time.After(c.delay):
	}

	if c.process != nil {
		if err := c.process(ctx); err != nil {
			c.step = StepError
			return c.step, fmt.Errorf("payment processing failed: %w", err)
		}
	}

	c.step = StepSuccess
	return c.step, nil
}

// Retry returns an errored checkout to the details step.
func (c *Checkout) Retry() Step {
	if c.step == StepError {
		c.step = StepDetails
	}
	return c.step
}

// ValidatePaymentInfo checks the card fields and returns per-field messages,
// empty when everything passes.
func ValidatePaymentInfo(info models.PaymentInfo, now time.Time) map[string]string {
	errs := map[string]string{}

	digits := strings.ReplaceAll(info.CardNumber, " ", "")
	if !cardNumberRe.MatchString(digits) {
		errs["cardNumber"] = "The card number must consist of 16 digits"
	}

	if strings.TrimSpace(info.CardHolder) == "" {
		errs["cardHolder"] = "Please enter cardholder name"
	}

	if !expiryRe.MatchString(info.ExpiryDate) {
		errs["expiryDate"] = "Please enter a valid expiration date (MM/YY)"
	} else {
		parts := strings.SplitN(info.ExpiryDate, "/", 2)
		month, _ := strconv.Atoi(parts[0])
		year, _ := strconv.Atoi(parts[1])
		currentYear := now.Year() % 100
		currentMonth := int(now.Month())
		switch {
		case month < 1 || month > 12:
			errs["expiryDate"] = "Invalid month"
		case year < currentYear || (year == currentYear && month < currentMonth):
			errs["expiryDate"] = "Expired card"
		}
	}

	if !cvvRe.MatchString(info.CVV) {
		errs["cvv"] = "CVV code must consist of 3 digits"
	}

	return errs
}
