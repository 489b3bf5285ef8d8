//go:build windows

package tailf

import (
	"os"
)

func checkAccess(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}

	_ = f.Close()

	return nil
}
