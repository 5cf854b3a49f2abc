package clients

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type HTTP struct {
	c        *http.Client
	log      logrus.FieldLogger
	progress io.Writer
}

func NewHTTP(timeout time.Duration, log logrus.FieldLogger) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &HTTP{c: &http.Client{Timeout: timeout}, log: log, progress: os.Stderr}
}

// SetProgress redirects the download progress bar; io.Discard silences it.
func (h *HTTP) SetProgress(w io.Writer) { h.progress = w }
