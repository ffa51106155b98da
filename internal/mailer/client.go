// Package mailer 通过模板型事务邮件中继发送联系表单消息。
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidMessage 在必填项缺失时返回，此时不会发出请求
	ErrInvalidMessage = errors.New("invalid message")
	// ErrNotConfigured 在缺少服务、模板或公钥时返回
	ErrNotConfigured = errors.New("mail relay not configured")
)

// Message 描述一封联系表单邮件
type Message struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Body        string
}

// Settings 是中继所需的标识信息
type Settings struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Recipient  string
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Client 是邮件中继客户端
type Client struct {
	settings Settings
	http     httpDoer
}

// NewClient 创建中继客户端
func NewClient(settings Settings) *Client {
	settings.Endpoint = strings.TrimSpace(settings.Endpoint)
	return &Client{
		settings: settings,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// SetHTTPClient 替换底层 HTTP 客户端
func (c *Client) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
		return
	}
	c.http = client
}

// Configured 报告中继标识是否齐全
func (c *Client) Configured() bool {
	return c.settings.Endpoint != "" &&
		strings.TrimSpace(c.settings.ServiceID) != "" &&
		strings.TrimSpace(c.settings.TemplateID) != "" &&
		strings.TrimSpace(c.settings.PublicKey) != ""
}

// Validate 检查消息必填项
func Validate(msg Message) error {
	if strings.TrimSpace(msg.SenderName) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(msg.SenderEmail) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(msg.SenderEmail)); err != nil {
		return fmt.Errorf("%w: email is malformed", ErrInvalidMessage)
	}
	if strings.TrimSpace(msg.Body) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidMessage)
	}
	return nil
}

// Send 校验并发送消息，返回本次请求的追踪 ID
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if err := Validate(msg); err != nil {
		return "", err
	}
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload := sendRequest{
		ServiceID:  c.settings.ServiceID,
		TemplateID: c.settings.TemplateID,
		UserID:     c.settings.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  strings.TrimSpace(msg.SenderName),
			"from_email": strings.TrimSpace(msg.SenderEmail),
			"subject":    strings.TrimSpace(msg.Subject),
			"message":    strings.TrimSpace(msg.Body),
			"to_email":   c.settings.Recipient,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build mail request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("send mail: relay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return requestID, nil
}
