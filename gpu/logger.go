package gpu

import (
	"log/slog"

	"github.com/gogpu/canvas"
)

// slogger returns the logger configured through canvas.SetLogger, so
// the gpu subpackage shares the root package's logging setup.
func slogger() *slog.Logger { return canvas.Logger() }
