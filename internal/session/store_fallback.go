//go:build !darwin

package session

func newPlatformStore() Store {
	return newFileStore()
}
