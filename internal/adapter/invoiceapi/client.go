// Package invoiceapi is the REST client for the invoicing service. It backs
// three narrow ports: invoice.Service for the approval gate's cancel/refund
// executors, and payroll.LineSource / payroll.RuleLookup for commission
// aggregation.
package invoiceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"glowdesk-backend/internal/domain/payroll"
)

const headerOrganizationID = "X-Organization-Id"

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (c *Client) CancelInvoice(ctx context.Context, orgID, invoiceID, reason string) error {
	return c.post(ctx, orgID, "/v1/invoices/"+invoiceID+"/cancel", map[string]any{"reason": reason})
}

func (c *Client) RefundInvoice(ctx context.Context, orgID, invoiceID string, amount int64, reason string) error {
	return c.post(ctx, orgID, "/v1/invoices/"+invoiceID+"/refund", map[string]any{
		"amount": amount,
		"reason": reason,
	})
}

func (c *Client) ConfirmedLines(ctx context.Context, orgID string, branchID *string, from, to time.Time) ([]payroll.InvoiceLine, error) {
	q := url.Values{}
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	if branchID != nil {
		q.Set("branch_id", *branchID)
	}

	var body struct {
		Lines []payroll.InvoiceLine `json:"lines"`
	}
	if err := c.get(ctx, orgID, "/v1/invoice-lines/confirmed?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	return body.Lines, nil
}

// FindRule asks for the exact (staff, item type, item) override. The invoice
// service answers 404 when no rule exists, which maps to (nil, nil) here.
func (c *Client) FindRule(ctx context.Context, orgID, staffID string, itemType payroll.ItemType, itemID string) (*payroll.CommissionRule, error) {
	q := url.Values{}
	q.Set("staff_id", staffID)
	q.Set("item_type", string(itemType))
	q.Set("item_id", itemID)

	var rule struct {
		StaffID  string `json:"staff_id"`
		ItemType string `json:"item_type"`
		ItemID   string `json:"item_id"`
		Mode     string `json:"mode"`
		Value    int64  `json:"value"`
	}
	err := c.get(ctx, orgID, "/v1/commission-rules/lookup?"+q.Encode(), &rule)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &payroll.CommissionRule{
		StaffID:  rule.StaffID,
		ItemType: payroll.ItemType(rule.ItemType),
		ItemID:   rule.ItemID,
		Mode:     payroll.RuleMode(rule.Mode),
		Value:    rule.Value,
	}, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("invoice api: status %d: %s", e.code, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *Client) post(ctx context.Context, orgID, path string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerOrganizationID, orgID)
	return c.do(req, nil)
}

func (c *Client) get(ctx context.Context, orgID, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set(headerOrganizationID, orgID)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("invoice api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		c.log.Warn().
			Int("status", res.StatusCode).
			Str("path", req.URL.Path).
			Msg("invoice api call failed")
		return &statusError{code: res.StatusCode, body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
