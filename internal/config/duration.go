package config

import "time"

// Duration is a time.Duration that parses from the standard Go
// duration format in configuration files ("500ms", "2s", "1m30s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler; koanf's decoder
// picks it up for TOML string values.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the standard Go duration representation.
func (d Duration) String() string {
	return time.Duration(d).String()
}
