package openai

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Vertex AI's OpenAI-compatible endpoint accepts cloud-platform tokens.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

func googleTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default Google credentials: %w", err)
	}
	return ts, nil
}
