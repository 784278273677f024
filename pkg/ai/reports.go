package ai

import (
	"context"
	"fmt"
)

// Narrator turns structured report data into a short executive summary.
// It never feeds back into scoring or routing.
type Narrator struct {
	client *Client
}

func NewNarrator(client *Client) *Narrator {
	return &Narrator{client: client}
}

func (n *Narrator) Enabled() bool {
	return n != nil && n.client.Enabled()
}

// Narrate asks the chat model to comment on data for the named report view.
func (n *Narrator) Narrate(ctx context.Context, view string, data any) (string, error) {
	if !n.Enabled() {
		return "", ErrDisabled
	}
	systemPrompt, ok := systemPrompts[view]
	if !ok {
		return "", fmt.Errorf("no prompt for report view %q", view)
	}
	userPrompt, err := formatReportPrompt(view, data)
	if err != nil {
		return "", err
	}
	return n.client.generateCompletion(ctx, systemPrompt, userPrompt)
}
