package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apiclient "github.com/milestonemotors/motors/internal/api/client"
)

func listingsCmd() *cobra.Command {
	listingsRoot := &cobra.Command{
		Use:   "listings",
		Short: "Browse listings",
		Long:  "Browse and inspect the cars currently listed on the marketplace.",
	}

	listingsRoot.AddCommand(
		listingsListCmd(),
		listingsGetCmd(),
	)

	return listingsRoot
}

func listingsListCmd() *cobra.Command {
	var (
		search    string
		sortKey   string
		fuel      string
		condition string
		brand     string
		page      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings with optional filters",
		Long: "List marketplace cars with optional search, filters for fuel,\n" +
			"condition, and brand, plus sorting and paging.",
		Example: `  # First page of the catalog
  motorctl listings list

  # Search by brand or model prefix
  motorctl listings list --search bmw

  # Diesel BMWs, cheapest first
  motorctl listings list --fuel diesel --brand bmw --sort priceAsc

  # Second page
  motorctl listings list --page 2`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.Browse(context.Background(), &apiclient.BrowseParams{
				Search:    search,
				Sort:      sortKey,
				Fuel:      fuel,
				Condition: condition,
				Brand:     brand,
				Page:      page,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Listings) == 0 {
				fmt.Println("No listings found.")
				return nil
			}

			fmt.Printf("Page %d of %d (%d cars)\n\n", resp.Page, resp.TotalPages, resp.Total)
			return printListingsTable(resp.Listings)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "brand or model prefix")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort order (priceDesc, priceAsc, yearDesc)")
	cmd.Flags().StringVar(&fuel, "fuel", "", "fuel type filter")
	cmd.Flags().StringVar(&condition, "condition", "", "condition filter (new, used)")
	cmd.Flags().StringVar(&brand, "brand", "", "brand filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func listingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show listing details",
		Example: `  motorctl listings get 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid listing id %q", args[0])
			}

			c := newClient()
			l, err := c.GetListing(context.Background(), id)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(l)
			}

			return printListingDetail(l)
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := newClient().Healthz(context.Background()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}
