package main

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/w1ncs/netcontrol/pkg/netclient"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netctl",
	Short: "Run and log amateur radio nets from your terminal.",
	Long: `netctl is the terminal companion to a NetControl server: browse the
net directory, start and end sessions, log check-ins live, and watch a
running session's check-in list update in real time.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.netctl.yaml)")
	rootCmd.PersistentFlags().StringP("server", "s", "", "NetControl server base URL (overrides config)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".netctl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("netctl")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, _ := homedir.Dir()
			configPath := home + "/.netctl.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s\n", err)
			}
		}
	}

	viper.SetDefault("server", "http://localhost:3220")
	viper.SetDefault("token", "")
}

// newClient builds an API client from config plus any --server override,
// with the persisted access token installed
func newClient(cmd *cobra.Command) *netclient.Client {
	server, _ := rootCmd.PersistentFlags().GetString("server")
	if server == "" {
		server = viper.GetString("server")
	}
	c := netclient.New(server)
	if token := viper.GetString("token"); token != "" {
		c.SetToken(token)
	}
	return c
}

// saveToken persists the access token back to the config file
func saveToken(token string) {
	viper.Set("token", token)
	if err := viper.WriteConfig(); err != nil {
		fmt.Printf("Warning: could not save token: %s\n", err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
