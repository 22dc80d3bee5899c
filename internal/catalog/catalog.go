// Package catalog lists the models an API key can reach, so operators can pick
// a value for upstream.model without guessing.
package catalog

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"text/tabwriter"

	"google.golang.org/genai"
)

// ModelLister is the part of *genai.Models we use.
type ModelLister interface {
	All(ctx context.Context) iter.Seq2[*genai.Model, error]
}

// NewClient creates a genai client for the Gemini API at baseURL.
func NewClient(ctx context.Context, apiKey, baseURL, apiVersion string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimRight(baseURL, "/") + "/",
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create genai client: %w", err)
	}
	return client, nil
}

// Write prints one line per model. With generateOnly set, models that cannot serve
// generateContent are skipped. It returns the number of models written.
func Write(ctx context.Context, models ModelLister, w io.Writer, generateOnly bool) (int, error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDISPLAY NAME\tACTIONS")

	n := 0
	for m, err := range models.All(ctx) {
		if err != nil {
			return n, fmt.Errorf("could not list models: %w", err)
		}
		if m == nil {
			continue
		}
		if generateOnly && !supports(m, "generateContent") {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", strings.TrimPrefix(m.Name, "models/"), m.DisplayName, strings.Join(m.SupportedActions, ","))
		n++
	}
	return n, tw.Flush()
}

func supports(m *genai.Model, action string) bool {
	for _, a := range m.SupportedActions {
		if a == action {
			return true
		}
	}
	return false
}
