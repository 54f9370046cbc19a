package cmdutils

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// PrintYAML renders a result on stdout.
func PrintYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	_, err = os.Stdout.Write(data)
	return err
}
