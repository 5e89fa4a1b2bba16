// Package pwned checks passwords against a breached-password range API
// without sending the password or its full hash.
package pwned

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/logctx"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
)

const (
	WrongInput           = "wrongInput"
	PasswordBreached     = "passwordBreached"
	PasswordLookupFailed = "passwordLookupFailed"
)

var Templates = check.Templates{
	WrongInput:           "The input is not a valid password",
	PasswordBreached:     "The provided password was found in previous breaches, please create another password",
	PasswordLookupFailed: "The password could not be checked against known breaches",
}

const (
	DefaultBaseURL = "https://api.pwnedpasswords.com"
	DefaultRetries = 2
	DefaultTimeout = 10 * time.Second
)

type Options struct {
	// Client defaults to a pooled cleanhttp client.
	Client *http.Client
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Retries is the number of retries after a failed request.
	// Nil means DefaultRetries.
	Retries *int
	// Backoff between retries. Defaults to 200ms.
	Backoff  time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
	Messages map[string]string
}

// UndisclosedPassword fails passwords that appear in the breach corpus.
type UndisclosedPassword struct {
	client    *http.Client
	baseURL   string
	retries   uint64
	backoff   time.Duration
	timeout   time.Duration
	logger    *slog.Logger
	templates check.Templates
}

func New(opts Options) (*UndisclosedPassword, error) {
	t, err := Templates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	v := &UndisclosedPassword{
		client:    opts.Client,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		retries:   DefaultRetries,
		backoff:   opts.Backoff,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
		templates: t,
	}
	if opts.Retries != nil {
		if *opts.Retries < 0 {
			return nil, errors.Wrapf(check.ErrInvalidArgument, "retries must not be negative, got %d", *opts.Retries)
		}
		v.retries = uint64(*opts.Retries)
	}
	if v.client == nil {
		v.client = cleanhttp.DefaultPooledClient()
	}
	if v.baseURL == "" {
		v.baseURL = DefaultBaseURL
	}
	if v.backoff <= 0 {
		v.backoff = 200 * time.Millisecond
	}
	if v.timeout <= 0 {
		v.timeout = DefaultTimeout
	}
	if v.logger == nil {
		v.logger = logctx.UnconfiguredLogger()
	}
	return v, nil
}

// ValidateContext checks value and returns any lookup error
// alongside a passwordLookupFailed outcome.
func (v *UndisclosedPassword) ValidateContext(ctx context.Context, value interface{}, _ check.Context) (check.Outcome, error) {
	password, ok := value.(string)
	if !ok || password == "" {
		return v.templates.Fail(WrongInput), nil
	}
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := hash[:5], hash[5:]
	body, err := v.fetchRange(ctx, prefix)
	if err != nil {
		return v.templates.Fail(PasswordLookupFailed), err
	}
	if breached(body, suffix) {
		return v.templates.Fail(PasswordBreached), nil
	}
	return check.Valid(), nil
}

func (v *UndisclosedPassword) Validate(value interface{}, vctx check.Context) check.Outcome {
	ctx, cancel := context.WithTimeout(logctx.WithLogger(context.Background(), v.logger), v.timeout)
	defer cancel()
	o, err := v.ValidateContext(ctx, value, vctx)
	if err != nil {
		logctx.Logger(ctx).ErrorContext(ctx, "password_lookup_failed", "error", err)
	}
	return o
}

func (v *UndisclosedPassword) fetchRange(ctx context.Context, prefix string) (string, error) {
	url := fmt.Sprintf("%s/range/%s", v.baseURL, prefix)
	var body string
	backoff := retry.WithMaxRetries(v.retries, retry.NewConstant(v.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Add-Padding", "true")
		resp, err := v.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return retry.RetryableError(errors.Errorf("range lookup returned %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return errors.Errorf("range lookup returned %d", resp.StatusCode)
		}
		var b strings.Builder
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			b.WriteString(scanner.Text())
			b.WriteByte('\n')
		}
		if err := scanner.Err(); err != nil {
			return retry.RetryableError(err)
		}
		body = b.String()
		return nil
	})
	return body, errors.Wrap(err, "password range lookup")
}

// breached looks for suffix in a "SUFFIX:COUNT" per line response.
// Padding entries have a count of 0.
func breached(body, suffix string) bool {
	for _, line := range strings.Split(body, "\n") {
		s, count, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok || !strings.EqualFold(s, suffix) {
			continue
		}
		return count != "0"
	}
	return false
}

var _ check.Validator = &UndisclosedPassword{}
