//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package instance

func acquire(string) (func() error, error) {
	return func() error { return nil }, nil
}
