package renderer

import "context"

// Frontend drives a Viewer on some display: a window, a local terminal or
// a remote session. Run blocks until the viewer quits or ctx is done.
type Frontend interface {
	Run(ctx context.Context) error
}
