package cli

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/spf13/cobra"
)

var errCredentialMismatch = errors.New("credentials do not match")

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the vault",
		Long: `Create the encrypted vault protected by a PIN (4-8 digits) or a
password (at least 8 characters).

Example:
  vaultctl init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd.Context(), func(svc *service.ClientServices) error {
				if svc.Lock.State().Configured {
					return fmt.Errorf("vault already initialized at %s", opts.cfg.Storage.Vault.Path)
				}

				first, err := opts.deps.Prompter.ReadSecret("Enter PIN or password: ")
				if err != nil {
					return err
				}
				second, err := opts.deps.Prompter.ReadSecret("Confirm PIN or password: ")
				if err != nil {
					return err
				}
				if first != second {
					return errCredentialMismatch
				}

				if err := svc.Lock.Configure(cmd.Context(), first); err != nil {
					return fmt.Errorf("failed to initialize vault: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Vault initialized at %s\n", opts.cfg.Storage.Vault.Path)
				return nil
			})
		},
	}
}
