package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/kholland/moviedeck/config"
	"github.com/kholland/moviedeck/pkg/browse"
	"github.com/kholland/moviedeck/pkg/logger"
	"github.com/kholland/moviedeck/pkg/moviesvc"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rateRating float64
	rateReview string
)

// rateCmd represents the rate command
var rateCmd = &cobra.Command{
	Use:        "rate",
	Short:      "submit a rating and review for a movie",
	Long:       `submit a rating and review for a movie`,
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

		session := browse.New(client).Session()
		if err := session.Open(ctx, moviesvc.Movie{ID: movieID}); err != nil {
			log.Fatalf("failed to open review session: %v", err)
		}

		session.SetDraftRating(rateRating)
		session.SetDraftText(rateReview)
		if err := session.Submit(ctx); err != nil {
			log.Fatalf("failed to submit review: %v", err)
		}

		view := session.View()
		fmt.Printf("review submitted; movie now has %d reviews\n", len(view.Reviews))
	},
}

func init() {
	rateCmd.Flags().Float64VarP(&rateRating, "rating", "r", 0, "rating between 0 and 5 in half steps")
	rateCmd.Flags().StringVarP(&rateReview, "review", "m", "", "review text")
	_ = rateCmd.MarkFlagRequired("rating")

	rootCmd.AddCommand(rateCmd)
}
