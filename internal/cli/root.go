// Package cli implements vaultctl, the administrative command line for the
// local vault: status, first-time setup, backup export and restore, and the
// routing table.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/spf13/cobra"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// OpenFunc builds the client services for cfg. The caller closes them.
type OpenFunc func(ctx context.Context, cfg *config.StructuredConfig) (*service.ClientServices, error)

// Deps are the collaborators of the command tree.
type Deps struct {
	LoadConfig func() (*config.StructuredConfig, error)
	Open       OpenFunc
	Prompter   Prompter
	BuildInfo  models.AppBuildInfo
}

// RootOptions holds global flags and the loaded configuration.
type RootOptions struct {
	Format    string
	VaultPath string

	deps Deps
	cfg  *config.StructuredConfig
}

// NewRootCommand creates the root command of vaultctl.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{deps: deps}

	cmd := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Administer the local encrypted vault",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			cfg, err := deps.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.VaultPath != "" {
				cfg.Storage.Vault.Path = opts.VaultPath
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.VaultPath, "vault", "", "vault file path (overrides config)")

	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewRoutesCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// withServices opens the services for the duration of fn.
func (o *RootOptions) withServices(ctx context.Context, fn func(*service.ClientServices) error) (err error) {
	svc, err := o.deps.Open(ctx, o.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(svc)
}

func (o *RootOptions) unlock(ctx context.Context, svc *service.ClientServices, prompt string) error {
	credential, err := o.deps.Prompter.ReadSecret(prompt)
	if err != nil {
		return err
	}
	ok, err := svc.Lock.Unlock(ctx, credential)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrWrongCredential
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
