// Package configdump prints the effective configuration with secret values
// redacted.
package configdump

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/coding1100/appointment-setter-console/internal/cmdutils"
)

const redacted = "*** redacted ***"

func Cmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "config-dump",
		Short: "Print the effective configuration",
		Long:  "Print the merged configuration after defaults, files and environment are applied. Secret values are redacted.",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := cmdutils.LoadConfig(buildInfo)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			var asMap map[string]any
			if err := mapstructure.Decode(cfg, &asMap); err != nil {
				return fmt.Errorf("decoding config: %w", err)
			}

			redactSecrets(asMap)

			data, err := yaml.Marshal(asMap)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}

			_, err = os.Stdout.Write(data)

			return err
		},
	}
}

// redactSecrets walks the decoded config and blanks any value whose key looks
// like a credential.
func redactSecrets(m map[string]any) {
	for key, value := range m {
		switch v := value.(type) {
		case map[string]any:
			redactSecrets(v)
		case string:
			if v != "" && secretKey(key) {
				m[key] = redacted
			}
		}
	}
}

func secretKey(key string) bool {
	lowered := strings.ToLower(key)

	for _, marker := range []string{"password", "secret", "token", "credential"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}

	return false
}
