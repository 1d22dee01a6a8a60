//go:build !darwin

package screenshot

import (
	"fmt"
	"runtime"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

func capture(string) error {
	return fmt.Errorf("%w: screenshot capture is not available on %s",
		domain.ErrPlatformUnsupported, runtime.GOOS)
}
