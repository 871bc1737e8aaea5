package environ

import "maps"

// Static is a View with fixed values.
// A non-nil WdErr or HomeErr makes the matching query fail.
type Static struct {
	Env     map[string]string
	WdErr   error
	HomeErr error
	Wd      string
	Home    string
}

// LookupEnv implements View.
func (s *Static) LookupEnv(key string) (string, bool) {
	value, ok := s.Env[key]
	return value, ok
}

// Getwd implements View.
func (s *Static) Getwd() (string, error) {
	if s.WdErr != nil {
		return "", s.WdErr
	}
	return s.Wd, nil
}

// UserHomeDir implements View.
func (s *Static) UserHomeDir() (string, error) {
	if s.HomeErr != nil {
		return "", s.HomeErr
	}
	return s.Home, nil
}

// With returns a copy of s with key set to value.
func (s *Static) With(key, value string) *Static {
	env := maps.Clone(s.Env)
	if env == nil {
		env = map[string]string{}
	}
	env[key] = value

	clone := *s
	clone.Env = env
	return &clone
}

var _ View = (*Static)(nil)
