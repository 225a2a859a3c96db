package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cvent/delivery-cluster/internal/config"
)

// WriteConfig writes the config to a YAML file with a descriptive header.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(cfg))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// generateHeader creates the comment block at the top of the file.
func generateHeader(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString("# delivery-cluster configuration\n")
	sb.WriteString(fmt.Sprintf("# Generated by 'delivery-cluster init' on %s\n", time.Now().UTC().Format(time.RFC3339)))
	sb.WriteString("#\n")
	sb.WriteString("# Pin a node's address with fqdn or host, or its name with hostname:\n")
	sb.WriteString("#\n")
	sb.WriteString("#   delivery:\n")
	sb.WriteString("#     fqdn: delivery.example.com\n")
	sb.WriteString("#     hostname: delivery\n")
	if !cfg.Driver.Remote() {
		sb.WriteString("#\n")
		sb.WriteString("# Addresses of the ssh driver go in ssh.nodes (per role) and ssh.builders\n")
		sb.WriteString("# (per 1-based builder index).\n")
	}
	return sb.String()
}
