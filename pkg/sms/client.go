// Package sms sends templated text messages through sms.ir. When SMS is
// disabled in configuration every send is a no-op, which keeps local
// development free of provider credentials.
package sms

import (
	"context"
	"fmt"

	"github.com/arsmn/go-smsir/smsir"

	"github.com/Omar96MJ/sanad-sub001/config"
)

type Client struct {
	client            *smsir.Client
	enabled           bool
	defaultTemplateID string
}

// NewFromConfig builds a client from the central configuration. A disabled
// config yields a client whose sends succeed without contacting the provider.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}

	return &Client{
		client:            smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey),
		enabled:           true,
		defaultTemplateID: cfg.SMSIR.TemplateID,
	}, nil
}

// SendTemplate sends a templated message to phone. Parameter keys must match
// the placeholders of the sms.ir template.
func (c *Client) SendTemplate(ctx context.Context, phone, templateID string, params map[string]string) error {
	if !c.enabled {
		return nil
	}

	if phone == "" {
		return fmt.Errorf("phone number is required")
	}
	if templateID == "" {
		templateID = c.defaultTemplateID
	}
	if templateID == "" {
		return fmt.Errorf("template ID is required")
	}
	if len(params) == 0 {
		return fmt.Errorf("template parameters are required")
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     phone,
		TemplateID: templateID,
	}
	for k, v := range params {
		req.Parameters = append(req.Parameters, smsir.UltraFastParameter{Key: k, Value: v})
	}

	if _, err := c.client.Verification.UltraFastSend(ctx, req); err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}

	return nil
}

// SendAppointmentReminder sends a session reminder using the default template.
// The template is expected to declare "doctor" and "time" placeholders.
func (c *Client) SendAppointmentReminder(ctx context.Context, phone, doctorName, sessionTime string) error {
	return c.SendTemplate(ctx, phone, c.defaultTemplateID, map[string]string{
		"doctor": doctorName,
		"time":   sessionTime,
	})
}

// IsEnabled reports whether sends reach the provider.
func (c *Client) IsEnabled() bool {
	return c.enabled
}
