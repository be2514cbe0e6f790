package broadcast

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"rakta/internal/infra"
	"rakta/internal/providers/twilio"
)

// Gateway is the outbound messaging collaborator. The Twilio client satisfies
// it; tests substitute fakes.
type Gateway interface {
	Send(ctx context.Context, to, body string) (*twilio.Message, error)
}

// SendError records one failed recipient. Recipient is empty for
// whole-operation failures such as an upstream fetch error.
type SendError struct {
	Recipient string `json:"recipient,omitempty"`
	Error     string `json:"error"`
}

// Result is the partial-failure-aware outcome of one broadcast. Success is
// true iff Errors is empty.
type Result struct {
	Success   bool        `json:"success"`
	SentCount int         `json:"sent_count"`
	Errors    []SendError `json:"errors,omitempty"`
}

// DispatcherOptions tunes the fan-out behavior.
type DispatcherOptions struct {
	Concurrency int
	SendTimeout time.Duration
	RatePerSec  int
	Logger      *infra.Logger
}

// Dispatcher fans a message out to a recipient list through the gateway.
type Dispatcher struct {
	gateway     Gateway
	concurrency int
	sendTimeout time.Duration
	limiter     *rate.Limiter
	logger      *infra.Logger
}

// NewDispatcher builds a dispatcher around the gateway.
func NewDispatcher(gw Gateway, opts DispatcherOptions) *Dispatcher {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sendTimeout := opts.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 15 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.RatePerSec)
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Dispatcher{
		gateway:     gw,
		concurrency: concurrency,
		sendTimeout: sendTimeout,
		limiter:     limiter,
		logger:      logger,
	}
}

// NormalizePhone prepends a leading "+" when missing. Numbers already in
// E.164 form pass through unchanged. Normalization is part of the dispatch
// contract.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}

// Dispatch attempts one send per recipient through a bounded worker pool.
// A failure for one recipient never aborts or skips any other: workers record
// errors instead of returning them. Recipients whose send could not start
// because the context was already done are recorded as errors too, so every
// recipient is accounted for exactly once.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []string, message string) Result {
	outcomes := make([]error, len(recipients))

	grp := new(errgroup.Group)
	grp.SetLimit(d.concurrency)

	for i, recipient := range recipients {
		i, recipient := i, recipient
		grp.Go(func() error {
			outcomes[i] = d.sendOne(ctx, recipient, message)
			return nil
		})
	}
	_ = grp.Wait()

	result := Result{}
	for i, err := range outcomes {
		if err == nil {
			result.SentCount++
			continue
		}
		result.Errors = append(result.Errors, SendError{
			Recipient: NormalizePhone(recipients[i]),
			Error:     err.Error(),
		})
	}
	result.Success = len(result.Errors) == 0
	return result
}

func (d *Dispatcher) sendOne(ctx context.Context, recipient, message string) error {
	to := NormalizePhone(recipient)

	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	msg, err := d.gateway.Send(sendCtx, to, message)
	if err != nil {
		d.logger.Warn().Err(err).Str("to", to).Msg("broadcast send failed")
		return err
	}
	d.logger.Debug().Str("to", to).Str("sid", msg.SID).Msg("broadcast send ok")
	return nil
}
