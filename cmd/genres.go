package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/kholland/moviedeck/config"
	"github.com/kholland/moviedeck/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "list the genre filter vocabulary",
	Long:  `list the genre filter vocabulary`,
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

		list, err := client.ListGenres(ctx)
		if err != nil {
			log.Fatalf("failed to list genres: %v", err)
		}

		rows := make([][]string, 0, len(list.Genres))
		for _, g := range list.Genres {
			rows = append(rows, []string{strconv.Itoa(g.ID), g.Name})
		}

		fmt.Println(renderTable(
			[]string{"id", "name"},
			rows,
			[]columnAlignment{alignRight, alignLeft},
		))
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}
