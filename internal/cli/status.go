package cli

import (
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	VaultPath         string `json:"vault_path"`
	Configured        bool   `json:"configured"`
	Degraded          bool   `json:"degraded"`
	DegradedReason    string `json:"degraded_reason,omitempty"`
	DemoMode          bool   `json:"demo_mode"`
	InactivityTimeout string `json:"inactivity_timeout"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show vault status",
		Long: `Show whether the vault exists and whether its storage is usable.

Example:
  vaultctl status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd.Context(), func(svc *service.ClientServices) error {
				st := svc.Lock.State()
				out := statusOutput{
					VaultPath:         opts.cfg.Storage.Vault.Path,
					Configured:        st.Configured,
					Degraded:          st.Degraded,
					DegradedReason:    st.DegradedReason,
					DemoMode:          st.DemoMode,
					InactivityTimeout: st.InactivityTimeout.String(),
				}

				w := cmd.OutOrStdout()
				if opts.Format == "json" {
					return writeJSON(w, out)
				}

				fmt.Fprintf(w, "Vault location: %s\n", out.VaultPath)
				if out.Degraded {
					fmt.Fprintf(w, "Storage: DEGRADED (%s)\n", out.DegradedReason)
				} else {
					fmt.Fprintln(w, "Storage: OK")
				}
				if out.Configured {
					fmt.Fprintln(w, "Status: Initialized")
				} else {
					fmt.Fprintln(w, "Status: Not initialized")
					fmt.Fprintln(w, "\nRun 'vaultctl init' to create the vault.")
				}
				if out.DemoMode {
					fmt.Fprintln(w, "Demo mode: on")
				}
				fmt.Fprintf(w, "Inactivity timeout: %s\n", out.InactivityTimeout)
				return nil
			})
		},
	}
}
