package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/kholland/moviedeck/config"
	mhttp "github.com/kholland/moviedeck/pkg/http"
	"github.com/kholland/moviedeck/pkg/moviesvc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "moviedeck",
	Short: "moviedeck cli",
	Long:  `moviedeck cli`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("MOVIEDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("api.scheme", "https")
	viper.SetDefault("api.host", "")
	viper.SetDefault("api.apiKey", "")
	viper.SetDefault("api.backoff", time.Millisecond*500)
	viper.SetDefault("api.maxRetries", 5)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("catalog.pageSize", 10)
}

// newServiceClient builds the movie service client from configuration.
func newServiceClient(cfg config.Config) (*moviesvc.Client, error) {
	baseURL := cfg.API.Scheme + "://" + cfg.API.Host

	return moviesvc.New(baseURL,
		moviesvc.WithHTTPClient(mhttp.NewRateLimitedClient(
			mhttp.WithMaxRetries(cfg.API.MaxRetries),
			mhttp.WithBaseBackoff(cfg.API.BaseBackoff),
		)),
		moviesvc.WithRequestEditorFn(moviesvc.SetRequestAPIKey(cfg.API.APIKey)),
	)
}
