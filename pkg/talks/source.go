package talks

import "context"

// Source fetches the full current talk collection. There is no
// pagination or incremental sync; a fetch returns everything or fails.
type Source interface {
	FetchTalks(ctx context.Context) ([]Talk, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Talk, error)

// FetchTalks implements Source.
func (f SourceFunc) FetchTalks(ctx context.Context) ([]Talk, error) {
	return f(ctx)
}

// StaticSource serves a fixed collection. Useful for demos and tests.
func StaticSource(talks []Talk) Source {
	return SourceFunc(func(context.Context) ([]Talk, error) {
		return talks, nil
	})
}
