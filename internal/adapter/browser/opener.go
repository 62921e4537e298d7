package browser

import (
	"fmt"
	"io"
	"net/url"

	"github.com/pkg/browser"

	"news-ticker/internal/domain/ports"
)

// Opener launches links in the system browser.
type Opener struct {
	open func(string) error
}

var _ ports.LinkOpener = (*Opener)(nil)

// New creates an Opener. Output of the launched browser is discarded so it
// does not interleave with the ticker.
func New() *Opener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Opener{open: browser.OpenURL}
}

// Open validates rawURL and hands it to the browser.
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if err := o.open(u.String()); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
