// Package mcdmcp speaks the upstream MCP endpoint: JSON-RPC 2.0 over
// HTTP POST with a bearer token and a session id carried in the
// Mcp-Session-Id header. Tool results come back as free-form text
// blocks which the extraction layer turns into records.
package mcdmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const protocolVersion = "2024-11-05"

type ClientOptions struct {
	BaseUrl string
	Token   string
}

type Client struct {
	baseUrl string
	http    *resty.Client
	// session id assigned by the upstream during initialize; sent back
	// on every subsequent call
	sessionId string
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	client.SetTimeout(time.Second * 30)
	client.SetHeader("Content-Type", "application/json")
	if opts.Token != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", opts.Token))
	}

	return &Client{
		baseUrl: opts.BaseUrl,
		http:    client,
	}
}

type rpcRequest struct {
	Jsonrpc string `json:"jsonrpc"`
	Id      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, method)
	defer span.End()

	req := c.http.R().
		SetContext(ctx).
		SetBody(rpcRequest{
			Jsonrpc: "2.0",
			Id:      1,
			Method:  method,
			Params:  params,
		})
	if c.sessionId != "" {
		req.SetHeader("Mcp-Session-Id", c.sessionId)
	}

	res, err := req.Post(c.baseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("http %d: %s", res.StatusCode(), res.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream returned error status")
		return nil, err
	}

	if session := res.Header().Get("Mcp-Session-Id"); session != "" {
		c.sessionId = session
	}

	var rpcRes rpcResponse
	err = json.Unmarshal(res.Body(), &rpcRes)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed rpc response")
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}
	if rpcRes.Error != nil {
		err := fmt.Errorf("rpc error %d: %s", rpcRes.Error.Code, rpcRes.Error.Message)
		span.RecordError(err)
		span.SetStatus(codes.Error, "rpc error")
		return nil, err
	}

	return rpcRes.Result, nil
}

// Initialize opens an MCP session, capturing the session id the
// upstream assigns. Must be called before any tool call.
func (c *Client) Initialize(ctx context.Context) error {
	_, err := c.call(ctx, "initialize", map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{"tools": map[string]any{}},
		"clientInfo": map[string]any{
			"name":    "mcdpromo-backend",
			"version": "1.0.0",
		},
	})
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}
	return nil
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolResult struct {
	Content           []contentBlock  `json:"content"`
	StructuredContent json.RawMessage `json:"structuredContent"`
}

// Text returns the first content block's text, or "" if the tool
// returned no content at all.
func (r toolResult) Text() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

func (c *Client) callTool(ctx context.Context, name string, args map[string]any) (toolResult, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := c.call(ctx, "tools/call", map[string]any{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		return toolResult{}, fmt.Errorf("call tool %s: %w", name, err)
	}

	var result toolResult
	err = json.Unmarshal(raw, &result)
	if err != nil {
		return toolResult{}, fmt.Errorf("decode tool %s result: %w", name, err)
	}
	return result, nil
}

// NowDate asks the upstream for its current date, returned as
// YYYY-MM-DD. An empty string with nil error never happens; failures
// should be treated as "fall back to local time" by the caller.
func (c *Client) NowDate(ctx context.Context) (string, error) {
	result, err := c.callTool(ctx, "now-time-info", nil)
	if err != nil {
		return "", err
	}
	if len(result.StructuredContent) == 0 {
		return "", fmt.Errorf("now-time-info returned no structured content")
	}

	var structured struct {
		Data struct {
			Date string `json:"date"`
		} `json:"data"`
	}
	err = json.Unmarshal(result.StructuredContent, &structured)
	if err != nil {
		return "", fmt.Errorf("decode now-time-info: %w", err)
	}
	if structured.Data.Date == "" {
		return "", fmt.Errorf("now-time-info returned no date")
	}
	return structured.Data.Date, nil
}

// CampaignCalendar fetches the monthly promotions calendar text.
// "calender" matches the tool name the upstream actually registers.
func (c *Client) CampaignCalendar(ctx context.Context) (string, error) {
	result, err := c.callTool(ctx, "campaign-calender", nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// MyCoupons fetches the owned-coupons listing text.
func (c *Client) MyCoupons(ctx context.Context) (string, error) {
	result, err := c.callTool(ctx, "my-coupons", nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// AutoBindCoupons attempts to claim every currently claimable coupon
// and returns the confirmation text.
func (c *Client) AutoBindCoupons(ctx context.Context) (string, error) {
	result, err := c.callTool(ctx, "auto-bind-coupons", nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
