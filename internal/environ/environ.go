// Package environ provides read-only views of the process environment.
//
// Builders take a View instead of calling os.Getenv and os.Getwd directly so the
// descriptor is a pure function of its inputs and tests never touch the real
// process environment.
package environ

import (
	"os"

	"github.com/samber/mo"
)

// View exposes the environment queries needed to build a descriptor.
type View interface {
	// LookupEnv reports the value of an environment variable and whether it is set.
	LookupEnv(key string) (string, bool)
	// Getwd returns the working directory.
	Getwd() (string, error)
	// UserHomeDir returns the current user's home directory.
	UserHomeDir() (string, error)
}

type osView struct{}

// OS returns a View backed by the running process.
func OS() View {
	return osView{}
}

func (osView) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (osView) Getwd() (string, error)              { return os.Getwd() }
func (osView) UserHomeDir() (string, error)        { return os.UserHomeDir() }

// Job returns the value of key as an Option.
// Unset and empty variables both yield None.
func Job(v View, key string) mo.Option[string] {
	value, ok := v.LookupEnv(key)
	if !ok || value == "" {
		return mo.None[string]()
	}
	return mo.Some(value)
}

// Expand replaces ${VAR} and $VAR references in s using values from v.
// Unset variables expand to the empty string.
func Expand(v View, s string) string {
	return os.Expand(s, func(key string) string {
		value, _ := v.LookupEnv(key)
		return value
	})
}
