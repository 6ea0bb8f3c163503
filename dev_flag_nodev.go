//go:build !dev

package main

// DevFlag carries no flags outside dev builds.
type DevFlag struct{}

func (*DevFlag) StartProfiling() error {
	return nil
}

func (*DevFlag) StopProfiling() error {
	return nil
}
