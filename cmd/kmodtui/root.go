package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kmodtui/kmodtui/internal/config"
	"github.com/kmodtui/kmodtui/internal/kmod"
	"github.com/kmodtui/kmodtui/internal/tui"
	"github.com/kmodtui/kmodtui/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "kmodtui",
	Short: "Interactive inspector and editor for kernel module parameters",
	Long: "kmodtui browses loaded kernel modules, shows each module's runtime\n" +
		"parameters merged with modinfo descriptions and modprobe.d overrides,\n" +
		"and edits writable parameters in place.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromViper()

		logger, closeLog, err := tui.NewLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer closeLog()

		src := kmod.NewSource(cfg.SysModuleDir, cfg.ModprobeDir, cfg.ModinfoBin, logger)
		return tui.Run(src, logger)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to ~/.kmodtui/config.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromViper()
		if err := config.Save(cfg); err != nil {
			return err
		}
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func init() {
	defaults := config.Default()

	rootCmd.PersistentFlags().String("sys-module", defaults.SysModuleDir, "Module registry directory")
	rootCmd.PersistentFlags().String("modprobe-d", defaults.ModprobeDir, "Persisted config directory")
	rootCmd.PersistentFlags().String("modinfo", defaults.ModinfoBin, "modinfo executable")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (logging disabled when empty)")
	rootCmd.PersistentFlags().String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")

	_ = viper.BindPFlag("sys_module_dir", rootCmd.PersistentFlags().Lookup("sys-module"))
	_ = viper.BindPFlag("modprobe_dir", rootCmd.PersistentFlags().Lookup("modprobe-d"))
	_ = viper.BindPFlag("modinfo_bin", rootCmd.PersistentFlags().Lookup("modinfo"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Env support: KMODTUI_SYS_MODULE_DIR, KMODTUI_LOG_LEVEL, etc.
	viper.SetEnvPrefix("KMODTUI")
	viper.AutomaticEnv()

	// Optional config file, lowest precedence after defaults.
	if path, err := config.Path(); err == nil {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", path, err)
			}
		}
	}

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
