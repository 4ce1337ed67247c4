package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abatilo/powertodo/internal/config"
	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/preferences"
)

// profileCmd implements 'powertodo profile'.
func profileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show display name, theme and avatar",
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := a.prefs.Load()
			if err != nil {
				a.logger.Warn("could not read preferences", "error", err)
			}
			a.print(a.formatter.FormatPreferences(p))
			return nil
		},
	}
}

// themeCmd implements 'powertodo theme'.
func themeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				p, err := a.prefs.Load()
				if err != nil {
					return err
				}
				a.print(a.formatter.FormatMessage(fmt.Sprintf("Theme: %s", p.Theme)))
				return nil
			}

			var theme preferences.Theme
			var err error
			if args[0] == "toggle" {
				theme, err = a.prefs.ToggleTheme()
			} else {
				theme, err = preferences.ParseTheme(args[0])
				if err != nil {
					return err
				}
				err = a.prefs.SetTheme(theme)
			}
			if err = a.checkPersist(err); err != nil {
				return err
			}
			a.print(a.formatter.FormatMessage(fmt.Sprintf("Theme set to %s", theme)))
			return nil
		},
	}
}

// nameCmd implements 'powertodo name'.
func nameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name <display name>",
		Short: "Set the display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := a.prefs.Load()
			if err != nil {
				return err
			}
			name, err := a.prefs.SetUsername(args[0])
			if name == "" {
				return err
			}
			if err = a.checkPersist(err); err != nil {
				return err
			}

			msg := fmt.Sprintf("Welcome, %s!", name)
			if p.Username != "" {
				msg = fmt.Sprintf("Display name changed from %s to %s", p.Username, name)
			}
			a.print(a.formatter.FormatMessage(msg))
			return nil
		},
	}
}

// avatarCmd implements 'powertodo avatar'.
func avatarCmd(a *app) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "avatar [image file]",
		Short: "Set or remove the profile image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove {
				if err := a.prefs.RemoveAvatar(); err != nil {
					return err
				}
				a.print(a.formatter.FormatMessage("Avatar removed"))
				return nil
			}
			if len(args) == 0 {
				return cmd.Usage()
			}
			if err := a.checkPersist(a.prefs.SetAvatarFromFile(args[0])); err != nil {
				return err
			}
			a.print(a.formatter.FormatMessage("Avatar updated"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the current avatar")
	return cmd
}

// resetCmd implements 'powertodo reset'.
func resetCmd(a *app) *cobra.Command {
	var yes, prefsOnly bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task and preference in the profile",
		RunE: func(_ *cobra.Command, _ []string) error {
			question := "Delete all tasks and preferences in this profile?"
			if prefsOnly {
				question = "Reset theme, display name and avatar?"
			}
			if !yes && !a.confirm(question) {
				return todoerrors.AbortedError{Action: "reset"}
			}

			if prefsOnly {
				if err := a.prefs.Reset(); err != nil {
					return err
				}
				a.print(a.formatter.FormatMessage("Preferences reset"))
				return nil
			}
			if err := a.slots.Clear(); err != nil {
				return err
			}
			a.print(a.formatter.FormatMessage(fmt.Sprintf("Profile %s reset", a.cfg.Profile)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&prefsOnly, "preferences", false, "Only reset preferences, keep tasks")
	return cmd
}

// configCmd implements 'powertodo config'.
func configCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			if save {
				if err := config.Save(a.cfgPath, a.cfg); err != nil {
					return err
				}
				a.print(a.formatter.FormatMessage("Saved configuration to " + a.cfgPath))
				return nil
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			a.print(string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the effective configuration to the config file")
	return cmd
}
