package auth

import (
	"fmt"
	"os"
)

// acquireLock takes the exclusive run lock. Configure and unconfigure are
// single in-flight operations; overlapping runs would corrupt the shared
// configuration directory, so a held lock fails the run up front.
func (o *Orchestrator) acquireLock() (func(), error) {
	f, err := os.OpenFile(o.cfg.LockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, &ValidationError{
				Reason: fmt.Sprintf("another configuration run is in progress (lock file %s exists)", o.cfg.LockPath),
			}
		}
		return nil, fmt.Errorf("failed to create lock file %s: %w", o.cfg.LockPath, err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return func() { os.Remove(o.cfg.LockPath) }, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
