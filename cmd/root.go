// Package cmd provides CLI commands for perigee.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "perigee",
	Short: "Explore near-Earth object close approaches",
	Long: `Perigee loads NASA's near-Earth object and close-approach datasets,
links them into a queryable in-memory database, and answers questions about
when objects pass close to Earth, how close, and how fast.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .perigee.yaml)")
	rootCmd.PersistentFlags().String("neofile", "data/neos.csv", "path to the NEO csv")
	rootCmd.PersistentFlags().String("cadfile", "data/cad.json", "path to the close-approach json")
	rootCmd.PersistentFlags().String("diagfile", "", "path for the diagnostics jsonl (default off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("neo_path", rootCmd.PersistentFlags().Lookup("neofile"))
	_ = viper.BindPFlag("cad_path", rootCmd.PersistentFlags().Lookup("cadfile"))
	_ = viper.BindPFlag("diag_path", rootCmd.PersistentFlags().Lookup("diagfile"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".perigee")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PERIGEE")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
