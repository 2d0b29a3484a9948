package layout

import (
	"log/slog"

	"github.com/gogpu/gralloc/internal/logging"
)

func slogger() *slog.Logger { return logging.Logger() }
