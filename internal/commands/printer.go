package commands

import (
	"fmt"
	"io"

	"github.com/hay-kot/toasts/internal/core/styles"
)

// printer writes styled, line oriented command output.
type printer struct {
	w io.Writer
}

func (p printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p printer) Successf(format string, args ...any) {
	p.Printf("%s %s", styles.SuccessStyle.Render(styles.IconSuccess), fmt.Sprintf(format, args...))
}

func (p printer) Errorf(format string, args ...any) {
	p.Printf("%s %s", styles.ErrorStyle.Render(styles.IconError), fmt.Sprintf(format, args...))
}

func (p printer) Infof(format string, args ...any) {
	p.Printf("%s %s", styles.InfoStyle.Render(styles.IconInfo), fmt.Sprintf(format, args...))
}
