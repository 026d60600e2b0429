package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/kholland/moviedeck/config"
	"github.com/kholland/moviedeck/pkg/browse"
	"github.com/kholland/moviedeck/pkg/logger"
	"github.com/kholland/moviedeck/pkg/query"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	browseGenre  int
	browseRating int
	browseYear   int
	browseSort   string
	browseOrder  string
	browsePage   int
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "browse one page of the movie catalog",
	Long:  `browse one page of the movie catalog`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatalf("failed to read configurations: %v", err)
		}

		client, err := newServiceClient(cfg)
		if err != nil {
			log.Fatalf("failed to create movie service client: %v", err)
		}

		ctx := logger.WithCtx(context.Background(), logger.Get())

		browser := browse.New(client)
		browser.LoadGenres(ctx)

		state := browser.State()
		if cmd.Flags().Changed("genre") {
			state.SetGenre(&browseGenre)
		}
		if cmd.Flags().Changed("rating") {
			state.SetRating(&browseRating)
		}
		if cmd.Flags().Changed("year") {
			state.SetYear(&browseYear)
		}
		if cmd.Flags().Changed("sort") {
			field, err := sortField(browseSort)
			if err != nil {
				log.Fatal(err)
			}
			state.RequestSort(field)
			if browseOrder == "desc" {
				state.RequestSort(field)
			}
		}
		state.SetPageIndex(browsePage)

		if err := browser.Refresh(ctx); err != nil {
			log.Fatalf("failed to fetch catalog: %v", err)
		}

		view := browser.Catalog()
		rows := make([][]string, 0, len(view.Page.Results))
		for _, m := range view.Page.Results {
			year := m.ReleaseDate
			if len(year) > 4 {
				year = year[:4]
			}
			rows = append(rows, []string{
				strconv.Itoa(m.ID),
				m.Title,
				year,
				strconv.FormatFloat(m.VoteAverage, 'f', 1, 64),
			})
		}

		fmt.Println(renderTable(
			[]string{"id", "title", "year", "rating"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
		))
		fmt.Printf("page %d of %s (%s results)\n",
			view.Page.Page,
			humanize.Comma(int64(view.Page.TotalPages)),
			humanize.Comma(int64(view.Page.TotalResults)),
		)
	},
}

func sortField(name string) (query.SortField, error) {
	switch name {
	case "title":
		return query.SortFieldTitle, nil
	case "rating":
		return query.SortFieldRating, nil
	default:
		return "", fmt.Errorf("unknown sort field: %q", name)
	}
}

func init() {
	browseCmd.Flags().IntVarP(&browseGenre, "genre", "g", 0, "genre id to filter by")
	browseCmd.Flags().IntVarP(&browseRating, "rating", "r", 0, "minimum rating to filter by")
	browseCmd.Flags().IntVarP(&browseYear, "year", "y", 0, "release year to filter by")
	browseCmd.Flags().StringVarP(&browseSort, "sort", "s", "", "sort field (title or rating)")
	browseCmd.Flags().StringVarP(&browseOrder, "order", "o", "asc", "sort direction (asc or desc)")
	browseCmd.Flags().IntVarP(&browsePage, "page", "p", 0, "zero-based page index")

	rootCmd.AddCommand(browseCmd)
}
