package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/routelab/skillrouter/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "skillrouter",
	Short: "Route natural-language requests to catalog skills",
	Long: `skillrouter matches a natural-language request against a declarative
skill catalog and emits the matched skills in a dependency-ordered load
sequence. It runs as a pre-prompt hook (reading PROMPT or stdin) or as a
small HTTP service.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	viper.SetEnvPrefix("SKILLROUTER")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillrouter")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "fmt")
	viper.SetDefault("threshold", 0.6)
	viper.SetDefault("provider", "anthropic")
	viper.SetDefault("max_tokens", 300)
	viper.SetDefault("llm_timeout", "15s")

	flags := rootCmd.PersistentFlags()
	flags.String("catalog", "", "Path to the catalog YAML file (default <skills-root>/catalog.yaml)")
	flags.String("skills-root", "", "Root directory for skill documentation (default ~/.claude/skills)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "fmt", "Log format (fmt or json)")

	viper.BindPFlag("catalog", flags.Lookup("catalog"))
	viper.BindPFlag("skills_root", flags.Lookup("skills-root"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))

	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
