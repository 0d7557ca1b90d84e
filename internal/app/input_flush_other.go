//go:build !windows

package app

func flushPendingInput() {}
