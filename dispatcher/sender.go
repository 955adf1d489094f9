// Package dispatcher sends constructed payloads to the target endpoint, one
// row at a time, and records a result per row.
package dispatcher

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/sirupsen/logrus"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

const (
	moduleName           = "autoapipusher"
	moduleVersion        = "v1.0.0"
	DefaultPreviewLength = 500
	DefaultTimeout       = 30 * time.Second
)

var retryStatusCodes = []int{
	http.StatusRequestTimeout,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

type SenderOptions struct {
	Timeout       time.Duration
	Retries       int
	RetryDelay    time.Duration
	PreviewLength int
	// AuthPolicies run on every attempt, after the retry policy.
	AuthPolicies []policy.Policy
	Transport    policy.Transporter
}

type Response struct {
	StatusCode int
	Preview    string
	Attempts   int
}

type IHttpSender interface {
	Send(ctx context.Context, target types.RequestTarget, body payload.Object) (*Response, error)
}

type HttpSender struct {
	Pipeline      runtime.Pipeline
	PreviewLength int
	Logger        *logrus.Logger
}

func NewHttpSender(options SenderOptions, logger *logrus.Logger) *HttpSender {
	maxRetries := int32(options.Retries)
	if options.Retries <= 0 {
		maxRetries = -1
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := options.Transport
	if transport == nil {
		transport = &http.Client{}
	}

	previewLength := options.PreviewLength
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}

	perRetryPolicies := []policy.Policy{&attemptPolicy{Logger: logger}}
	perRetryPolicies = append(perRetryPolicies, options.AuthPolicies...)

	clientOptions := policy.ClientOptions{
		Retry: policy.RetryOptions{
			MaxRetries:    maxRetries,
			TryTimeout:    timeout,
			RetryDelay:    options.RetryDelay,
			MaxRetryDelay: 4 * max(options.RetryDelay, time.Second),
			StatusCodes:   retryStatusCodes,
		},
		Telemetry:        policy.TelemetryOptions{ApplicationID: moduleName},
		Transport:        transport,
		PerRetryPolicies: perRetryPolicies,
	}

	return &HttpSender{
		Pipeline:      runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{}, &clientOptions),
		PreviewLength: previewLength,
		Logger:        logger,
	}
}

// Send issues one request. A non-2xx status is a response, not an error;
// errors are transport failures after the retry policy gave up.
func (sender *HttpSender) Send(ctx context.Context, target types.RequestTarget, body payload.Object) (*Response, error) {
	attempts := 0
	ctx = context.WithValue(ctx, attemptCounterKey{}, &attempts)

	method := strings.ToUpper(target.Method)
	if method == "" {
		method = http.MethodPost
	}

	req, err := runtime.NewRequest(ctx, method, target.URL)
	if err != nil {
		return &Response{Attempts: attempts}, err
	}

	for name, value := range target.Headers {
		req.Raw().Header.Set(name, value)
	}

	if target.HasBody() {
		data, err := payload.Marshal(body)
		if err != nil {
			return &Response{Attempts: attempts}, err
		}

		contentType, ok := target.Header("Content-Type")
		if !ok || contentType == "" {
			contentType = types.ContentTypeJSON
		}
		if err := req.SetBody(streaming.NopCloser(bytes.NewReader(data)), contentType); err != nil {
			return &Response{Attempts: attempts}, err
		}
	}

	resp, err := sender.Pipeline.Do(req)
	if err != nil {
		return &Response{Attempts: attempts}, err
	}

	data, err := runtime.Payload(resp)
	if err != nil {
		return &Response{StatusCode: resp.StatusCode, Attempts: attempts}, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Preview:    Truncate(string(data), sender.PreviewLength),
		Attempts:   attempts,
	}, nil
}

func IsSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// Truncate cuts text to at most limit runes, marking the cut with an ellipsis.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "…"
}

type attemptCounterKey struct{}

type attemptPolicy struct {
	Logger *logrus.Logger
}

func (attempt *attemptPolicy) Do(req *policy.Request) (*http.Response, error) {
	counter, ok := req.Raw().Context().Value(attemptCounterKey{}).(*int)
	if ok {
		*counter++
		attempt.Logger.Tracef("%s %s attempt %d", req.Raw().Method, req.Raw().URL.Redacted(), *counter)
	}
	return req.Next()
}
