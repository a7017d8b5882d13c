package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"civicfund-go/internal/model"
	"civicfund-go/internal/render"
	"civicfund-go/internal/repositories/memory"
	"civicfund-go/internal/services/funding"
	"civicfund-go/internal/services/listing"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects through the filter, search and sort pipeline",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		filter, _ := cmd.Flags().GetString("filter")
		text, _ := cmd.Flags().GetString("q")
		sortBy, _ := cmd.Flags().GetString("sort")
		wallet, _ := cmd.Flags().GetString("wallet")
		format, _ := cmd.Flags().GetString("format")

		q := listing.Query{
			Filter: listing.ParseFilter(filter),
			Text:   text,
			Sort:   listing.ParseSort(sortBy),
		}
		projects, err := listing.NewService(store, store).Search(cmd.Context(), q, wallet)
		if err != nil {
			return eris.Wrap(err, "catalog list")
		}
		return writeListing(cmd.OutOrStdout(), format, projects)
	},
}

var walletCmd = &cobra.Command{
	Use:   "wallet <address>",
	Short: "Show a wallet balance and its contributions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		summary, err := funding.NewService(store, store).Wallet(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "catalog wallet")
		}
		formatWallet(cmd.OutOrStdout(), render.WalletView(summary.Wallet, summary.Contributions, summary.Projects))
		return nil
	},
}

func init() {
	listCmd.Flags().String("filter", "all", "all | voting | in-progress | completed | my-contributions")
	listCmd.Flags().String("q", "", "case and accent insensitive text search")
	listCmd.Flags().String("sort", "recent", "recent | popular | funded | ending")
	listCmd.Flags().String("wallet", "", "wallet used by the my-contributions filter")
	listCmd.Flags().String("format", "table", "table | json | html")
}

func openStore(cmd *cobra.Command) (*memory.Store, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = cfg.CatalogFile
	}
	seed, err := memory.LoadSeed(path)
	if err != nil {
		return nil, err
	}
	return memory.NewStore(seed, memory.WithStartBalance(cfg.WalletStartBalance)), nil
}

func writeListing(w io.Writer, format string, projects []model.Project) error {
	cards := render.Cards(projects)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	case "html":
		return render.HTML(w, cards)
	case "table", "":
		formatCards(w, cards)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func formatCards(w io.Writer, cards render.Listing) {
	if cards.Empty {
		fmt.Fprintln(w, cards.EmptyMessage)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tFUNDING\tPROGRESS\tCONTRIBUTORS\tDEADLINE")
	for _, c := range cards.Cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID, c.Name, c.StatusLabel, c.Funding, c.ProgressLabel, c.Contributors, c.DeadlineLabel)
	}
	_ = tw.Flush()
	fmt.Fprintln(w, cards.CountLabel)
}

func formatWallet(w io.Writer, view render.Wallet) {
	fmt.Fprintf(w, "Wallet:  %s\nBalance: %s\nGiven:   %s to %d projects\n", view.Address, view.Balance, view.TotalGiven, view.ProjectCount)
	if !view.HasActivity {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tPROJECT\tAMOUNT")
	for _, row := range view.Contributions {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Date, row.ProjectName, row.Amount)
	}
	_ = tw.Flush()
}
