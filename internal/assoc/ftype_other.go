//go:build !windows

package assoc

import "context"

func runFtype(context.Context) (string, error) {
	return "", ErrUnsupported
}
