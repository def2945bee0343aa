package ai

import "context"

// Media is an inline attachment sent alongside a prompt, typically a meal photo.
type Media struct {
	MIME string
	Data []byte
}

// Prompt carries the instruction pair for one model call. JSON marks prompts
// whose answer must be a single JSON object; backends enable their native
// JSON output mode for those.
type Prompt struct {
	System string
	User   string
	JSON   bool
}

// Client is the uniform contract over model backends. Implementations that
// cannot handle media must reject calls where media is non-nil.
type Client interface {
	Generate(ctx context.Context, p Prompt, media *Media) (string, error)
}
