package syncer

import (
	"io"

	"github.com/vitorsousa/repcal/internal"
)

func logf(w io.Writer, format string, a ...any) {
	internal.Logf(w, "", "", format, a...)
}
