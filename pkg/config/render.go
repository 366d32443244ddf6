package config

import (
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/libtour/libtour/pkg/errors"
)

// Render prints the merged configuration in format ("toml" or "yaml").
func Render(k *koanf.Koanf, format string) ([]byte, error) {
	raw := k.Raw()
	switch format {
	case "toml", "":
		out, err := toml.Marshal(raw)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render toml")
		}
		return out, nil
	case "yaml":
		out, err := yaml.Marshal(raw)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render yaml")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q", format).
			WithDetail("supported", []string{"toml", "yaml"})
	}
}
