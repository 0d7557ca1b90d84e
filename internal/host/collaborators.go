package host

import (
	"context"

	"github.com/kk-code-lab/previewhost/internal/fs"
	"github.com/kk-code-lab/previewhost/internal/plugin"
)

// File is the file under preview.
type File interface {
	Path() string
	Extension() string
	StorageItem(ctx context.Context) (fs.StorageItem, error)
}

// Resolver maps an extension to a registered class.
type Resolver interface {
	Resolve(ext string) (plugin.ClassID, bool)
}

// Activator instantiates components by class id.
type Activator interface {
	Activate(ctx context.Context, id plugin.ClassID) (plugin.Handler, error)
}

// Clipboard receives files copied from the preview.
type Clipboard interface {
	SetStorageItem(item fs.StorageItem) error
}

// Dispatcher runs functions on the owner (UI) goroutine.
type Dispatcher interface {
	OnOwnerThread() bool
	// Invoke schedules fn on the owner goroutine and waits for it to return.
	Invoke(ctx context.Context, fn func()) error
}

// Worker runs blocking work away from the owner goroutine. Run returns
// once fn has returned.
type Worker interface {
	Run(fn func())
}

type goroutineWorker struct{}

func (goroutineWorker) Run(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}

// InlineWorker runs work on the calling goroutine.
type InlineWorker struct{}

// Run implements Worker.
func (InlineWorker) Run(fn func()) {
	fn()
}
