// Package generation holds the boundary interfaces for the excluded
// collaborators: the language-model call and the speech-to-text call. The
// entitlement core only ever invokes them after a successful quota check.
package generation

import (
	"context"
	"io"
)

type Generator interface {
	Generate(ctx context.Context, mode, input string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
