package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/spf13/cobra"
)

// NewRoutesCommand creates the routes command.
func NewRoutesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes [entity-type]",
		Short: "Show where each entity type is stored",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd.Context(), func(svc *service.ClientServices) error {
				table := svc.Router.RoutingTable()
				if len(args) == 1 {
					table = []models.RoutingDecision{svc.Router.Route(models.EntityType(args[0]))}
				}

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), table)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ENTITY TYPE\tDESTINATION\tREASON\tEPHEMERAL")
				for _, d := range table {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", d.EntityType, d.Destination, d.Reason, d.Ephemeral)
				}
				return tw.Flush()
			})
		},
	}
}
