package cli

import (
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an encrypted backup archive",
		Long: `Unlock the vault and write a timestamped .osteobak archive. Entries
stay encrypted; the archive opens with the same PIN or password.

Example:
  vaultctl export --dir /media/usb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = opts.cfg.Storage.BackupDir
			}
			return opts.withServices(cmd.Context(), func(svc *service.ClientServices) error {
				if err := opts.unlock(cmd.Context(), svc, "Enter PIN or password: "); err != nil {
					return err
				}

				path, err := svc.Backup.ExportToFile(cmd.Context(), dir)
				if err != nil {
					return fmt.Errorf("export failed: %w", err)
				}

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"path": path})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "destination directory (defaults to the configured backup dir)")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the vault with a backup archive",
		Long: `Verify a .osteobak archive and replace the vault content with it. An
existing vault is unlocked first with its current PIN or password. A failed
import leaves the vault unchanged.

Example:
  vaultctl import osteo-vault-20260302-090000.osteobak`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd.Context(), func(svc *service.ClientServices) error {
				if svc.Lock.State().Configured {
					if err := opts.unlock(cmd.Context(), svc, "Current PIN or password: "); err != nil {
						return err
					}
				}

				credential, err := opts.deps.Prompter.ReadSecret("Archive PIN or password: ")
				if err != nil {
					return err
				}
				if err := svc.Backup.ImportFromFile(cmd.Context(), args[0], credential); err != nil {
					if store.IsArchiveError(err) {
						return fmt.Errorf("%s is not a usable backup: %w", args[0], err)
					}
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Vault restored from %s\n", args[0])
				return nil
			})
		},
	}
}
