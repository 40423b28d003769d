package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seatshare-inc/seatshare/internal/application/payment/paymentgateway"
	sharedConfig "github.com/seatshare-inc/seatshare/internal/shared/config"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// Maximum response body size for gateway responses (64KB)
	maxResponseSize = 64 << 10
)

type refundPayload struct {
	PaymentReference string `json:"payment_reference"`
	AmountCents      int64  `json:"amount_cents"`
	Reason           string `json:"reason"`
}

// HTTPGateway issues refunds against the payment provider's REST API. The
// payment reference doubles as the idempotency key, so replaying a refund
// after a timeout is safe.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

var _ paymentgateway.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(cfg *sharedConfig.PaymentConfig, log logger.Interface) *HTTPGateway {
	timeout := defaultRequestTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &HTTPGateway{
		baseURL: cfg.GatewayBaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

func (g *HTTPGateway) Refund(ctx context.Context, req paymentgateway.RefundRequest) error {
	body, err := json.Marshal(refundPayload{
		PaymentReference: req.PaymentReference,
		AmountCents:      req.AmountCents,
		Reason:           req.Reason,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal refund payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/refunds", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build refund request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Idempotency-Key", req.PaymentReference)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("refund request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// 409 means the provider already processed this refund.
	if resp.StatusCode == http.StatusConflict {
		g.logger.Infow("refund already processed by provider",
			"payment_reference", req.PaymentReference)
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	return fmt.Errorf("refund rejected by provider: status %d: %s", resp.StatusCode, string(respBody))
}

// LogOnlyGateway records refund intents in the log without calling a
// provider. Used in development and test environments where no gateway is
// configured.
type LogOnlyGateway struct {
	logger logger.Interface
}

var _ paymentgateway.Gateway = (*LogOnlyGateway)(nil)

func NewLogOnlyGateway(log logger.Interface) *LogOnlyGateway {
	return &LogOnlyGateway{logger: log}
}

func (g *LogOnlyGateway) Refund(_ context.Context, req paymentgateway.RefundRequest) error {
	g.logger.Warnw("log-only gateway: refund not sent to any provider",
		"payment_reference", req.PaymentReference,
		"amount_cents", req.AmountCents,
		"reason", req.Reason)
	return nil
}

// NewGatewayFromConfig picks the HTTP gateway when a base URL is configured
// and the log-only gateway otherwise.
func NewGatewayFromConfig(cfg *sharedConfig.PaymentConfig, log logger.Interface) paymentgateway.Gateway {
	if cfg.GatewayBaseURL == "" {
		log.Warnw("no payment gateway configured, refunds will only be logged")
		return NewLogOnlyGateway(log)
	}
	return NewHTTPGateway(cfg, log)
}
