package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seguido",
	Short: "seguido cli",
	Long:  `seguido cli`,
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

	viper.SetEnvPrefix("SEGUIDO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("tmdb.scheme", "https")
	viper.SetDefault("tmdb.host", "api.themoviedb.org")
	viper.SetDefault("tmdb.apiKey", "")
	viper.SetDefault("tmdb.language", "es-ES")
	viper.SetDefault("tmdb.backoff", time.Millisecond*500)
	viper.SetDefault("tmdb.maxRetries", 3)
	viper.SetDefault("tmdb.requestInterval", time.Millisecond*250)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("storage.filePath", "seguido.sqlite")

	viper.SetDefault("tracker.user", "default")
	viper.SetDefault("tracker.sweepOnStart", true)
	viper.SetDefault("tracker.sweepThrottle", time.Millisecond*250)
	viper.SetDefault("tracker.seasonCacheTTL", time.Minute*10)
	viper.SetDefault("tracker.drainTimeout", time.Second*10)
}
