//go:build darwin

package screenshot

import (
	"fmt"
	"os/exec"
)

// capture shells out to the system screencapture utility. -x silences
// the shutter sound.
func capture(outputPath string) error {
	out, err := exec.Command("screencapture", "-x", outputPath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("screencapture failed: %v: %s", err, out)
	}
	return nil
}
