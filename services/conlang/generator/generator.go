package generator

import (
	"context"
	"encoding/json"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// Request is the payload for one generation call: the operation id, the
// pruned document the model may look at, and operation parameters.
type Request struct {
	Operation string             `json:"operation"`
	Document  *document.Document `json:"document"`
	Params    map[string]any     `json:"params,omitempty"`
}

// Response is structured, operation-specific data — never free text. The
// payload shape is owned by the operation's apply function.
type Response struct {
	Operation string          `json:"operation"`
	Payload   json.RawMessage `json:"payload"`
}

// Generator defines the standard interface for any generation backend.
//
// previousErrors is nil on the first attempt; on retries it carries the
// formatted error list from the prior failed attempt so the backend can
// steer the model away from the same mistakes.
type Generator interface {
	Generate(ctx context.Context, req *Request, previousErrors []string) (*Response, error)
}
