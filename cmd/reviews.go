package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/kholland/moviedeck/config"
	"github.com/kholland/moviedeck/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reviewsCmd represents the reviews command
var reviewsCmd = &cobra.Command{
	Use:        "reviews",
	Short:      "list the reviews of a movie",
	Long:       `list the reviews of a movie`,
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"movie id"},
	Run: func(cmd *cobra.Command, args []string) {
		movieID, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalf("movie id must be a number: %v", err)
		}

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatalf("failed to read configurations: %v", err)
		}

		client, err := newServiceClient(cfg)
		if err != nil {
			log.Fatalf("failed to create movie service client: %v", err)
		}

		ctx := logger.WithCtx(context.Background(), logger.Get())

		reviews, err := client.ListReviews(ctx, movieID)
		if err != nil {
			log.Fatalf("failed to list reviews: %v", err)
		}

		rows := make([][]string, 0, len(reviews))
		for _, r := range reviews {
			rows = append(rows, []string{
				strconv.FormatFloat(r.UserRating, 'f', 1, 64),
				r.Review,
				humanize.Time(r.CreatedAt),
			})
		}

		fmt.Println(renderTable(
			[]string{"rating", "review", "written"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft},
		))
	},
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
}
