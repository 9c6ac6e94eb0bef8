// Package gemini provides an analyzer backed by Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Client wraps genai.Client.
type Client struct {
	client *genai.Client
}

// NewClient creates a Client with the given API key. An empty key lets the
// SDK read GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{client: client}, nil
}

// GenerateContent implements GenerativeClient.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	genaiContents := make([]*genai.Content, len(contents))
	for i, content := range contents {
		genaiContents[i] = convertContent(content, "user")
	}

	var genaiConfig *genai.GenerateContentConfig
	if config != nil {
		genaiConfig = &genai.GenerateContentConfig{
			ResponseMIMEType: config.ResponseMIMEType,
			Temperature:      config.Temperature,
			ResponseSchema:   convertSchema(config.ResponseSchema),
		}
		if config.SystemInstruction != nil {
			genaiConfig.SystemInstruction = convertContent(config.SystemInstruction, "")
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, model, genaiContents, genaiConfig)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &GenerateContentResponse{Text: result.Text()}, nil
}

func convertContent(c *Content, role string) *genai.Content {
	parts := make([]*genai.Part, len(c.Parts))
	for i, part := range c.Parts {
		parts[i] = &genai.Part{Text: part.Text}
	}
	return &genai.Content{Parts: parts, Role: role}
}

func wrapAPIError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.Code,
			Message:    fmt.Sprintf("gemini API error (HTTP %d): %s", apiErr.Code, apiErr.Message),
		}
	}
	return err
}

func convertSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	gs := &genai.Schema{
		Type:        genai.Type(s.Type),
		Required:    s.Required,
		Description: s.Description,
		Items:       convertSchema(s.Items),
	}
	if s.Properties != nil {
		gs.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			gs.Properties[k] = convertSchema(v)
		}
	}
	return gs
}

var _ GenerativeClient = (*Client)(nil)
