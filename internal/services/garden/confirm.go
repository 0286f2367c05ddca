package garden

import "context"

// Confirmer asks the user whether a destructive action may proceed.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

var (
	AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  = ConfirmFunc(func(context.Context, string) bool { return false })
)

type confirmKey struct{}

// WithConfirmation records on ctx the answer the caller already gave
// (the API takes it from X-Confirm or ?confirm=true).
func WithConfirmation(ctx context.Context, yes bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, yes)
}

// ContextConfirmer answers with whatever WithConfirmation stored, no otherwise.
var ContextConfirmer = ConfirmFunc(func(ctx context.Context, _ string) bool {
	yes, _ := ctx.Value(confirmKey{}).(bool)
	return yes
})
