package middleware

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Content-Type", "Authorization"}
)

// CORSConfig is the cross-origin policy for browser clients such as the
// chat page served from another host.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// CORSEnv names the environment variables consulted by Finalize. Empty
// names are skipped.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// Finalize fills defaults, applies env overrides, upper-cases methods and
// rejects origins that are not scheme-qualified.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = append([]string(nil), defaultMethods...)
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = append([]string(nil), defaultHeaders...)
	}
	if c.MaxAge == 0 {
		c.MaxAge = 3600
	}

	if env != nil {
		fromEnv(env.Enabled, strconv.ParseBool, &c.Enabled)
		fromEnv(env.AllowCredentials, strconv.ParseBool, &c.AllowCredentials)
		fromEnv(env.MaxAge, strconv.Atoi, &c.MaxAge)
		fromEnv(env.Origins, list, &c.Origins)
		fromEnv(env.AllowedMethods, list, &c.AllowedMethods)
		fromEnv(env.AllowedHeaders, list, &c.AllowedHeaders)
	}

	for i, m := range c.AllowedMethods {
		c.AllowedMethods[i] = strings.ToUpper(m)
	}

	var errs []error
	if c.MaxAge < 0 {
		errs = append(errs, fmt.Errorf("invalid max_age: %d", c.MaxAge))
	}
	for _, o := range c.Origins {
		if o != "*" && !strings.Contains(o, "://") {
			errs = append(errs, fmt.Errorf("invalid origin %q: missing scheme", o))
		}
	}
	return errors.Join(errs...)
}

// Merge applies overlay on top of c. The booleans always take the
// overlay's value; lists and max_age only when set.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	for _, f := range []struct{ dst, src *[]string }{
		{&c.Origins, &overlay.Origins},
		{&c.AllowedMethods, &overlay.AllowedMethods},
		{&c.AllowedHeaders, &overlay.AllowedHeaders},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func fromEnv[T any](name string, parse func(string) (T, error), dst *T) {
	if name == "" {
		return
	}
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return
	}
	if v, err := parse(raw); err == nil {
		*dst = v
	}
}

func list(v string) ([]string, error) {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
