package environ

import (
	"fmt"

	"github.com/joho/godotenv"
)

type overlayView struct {
	View
	extra map[string]string
}

// WithDotenv layers the variables from the given dotenv files under base.
// Variables already set in base are never overridden. Files are read in order and
// the first file that defines a key wins, matching godotenv.Load semantics.
func WithDotenv(base View, files ...string) (View, error) {
	if len(files) == 0 {
		return base, nil
	}

	extra := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for key, value := range values {
			if _, seen := extra[key]; !seen {
				extra[key] = value
			}
		}
	}

	return &overlayView{View: base, extra: extra}, nil
}

// LookupEnv prefers the base view and falls back to the dotenv values.
func (o *overlayView) LookupEnv(key string) (string, bool) {
	if value, ok := o.View.LookupEnv(key); ok {
		return value, true
	}
	value, ok := o.extra[key]
	return value, ok
}
