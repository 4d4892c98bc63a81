package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/log"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/config"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/errors"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/mapping"
)

var mappingFile string

// prompt asks for a value interactively. Replaced in tests.
var prompt = func(message string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message}, &answer, survey.WithValidator(survey.Required))
	return answer, err
}

var mappingCmd = &cobra.Command{
	Use:     "mapping",
	Aliases: []string{"map"},
	Short:   "Inspect and maintain the GitHub to Discord mapping file",
	Long: `Inspect and maintain the mapping file used by "assign".

The file is a JSON object (or YAML mapping for .yaml/.yml files) from GitHub
username to Discord user ID:

  {
    "octocat": "175928847299117063"
  }`,
}

var mappingCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every entry in the mapping file",
	Example: `  # Lint the mapping in a pull request workflow
  contribrole mapping check --mapping users.json`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMappingCheck(mappingFile)
	},
}

var mappingLookupCmd = &cobra.Command{
	Use:               "lookup <github-user>",
	Short:             "Print the Discord user ID mapped to a GitHub user",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: validMappedUsers,
	RunE: func(_ *cobra.Command, args []string) error {
		return runMappingLookup(mappingFile, args[0])
	},
}

var mappingAddCmd = &cobra.Command{
	Use:   "add [github-user] [discord-id]",
	Short: "Add or update a mapping entry",
	Long: `Add or update a mapping entry.

Missing arguments are prompted for interactively. The Discord ID must be a
numeric user ID (Developer Mode → right click user → Copy User ID).`,
	Example: `  contribrole mapping add octocat 175928847299117063

  # Prompt for both values
  contribrole mapping add`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMappingAdd(mappingFile, args)
	},
}

func runMappingCheck(path string) error {
	table, err := mapping.Load(path)
	if err != nil {
		return err
	}
	if err := table.Validate(); err != nil {
		log.Error("%s has invalid entries", path)
		for _, p := range table.Problems() {
			log.ErrorH2("%s", p)
		}
		return err
	}
	log.Success("%s: %d mapping(s) OK", path, table.Len())
	return nil
}

func runMappingLookup(path, user string) error {
	table, err := mapping.Load(path)
	if err != nil {
		return err
	}
	id, ok := table.Resolve(user)
	if !ok {
		log.Warn("No Discord user mapped for GitHub user '%s'.", user)
		return nil
	}
	log.Info("%s -> %s", user, id)
	return nil
}

func runMappingAdd(path string, args []string) error {
	values := make([]string, 2)
	copy(values, args)

	questions := []string{"GitHub username:", "Discord user ID:"}
	for i, v := range values {
		if v != "" {
			continue
		}
		answer, err := prompt(questions[i])
		if err != nil {
			return fmt.Errorf("mapping canceled: %w", err)
		}
		values[i] = answer
	}
	user, id := values[0], values[1]

	if _, err := config.ParseSnowflake("Discord user ID", id); err != nil {
		return err
	}

	table, err := mapping.Load(path)
	if errors.Is(err, errors.ErrMappingNotFound) {
		log.Info("Creating %s", path)
		table = mapping.New(nil)
	} else if err != nil {
		return err
	}

	if !table.Set(user, id) {
		log.Info("%s is already mapped to %s", user, id)
		return nil
	}
	if _, err := table.Save(path); err != nil {
		return err
	}
	log.Success("Mapped %s to %s in %s", user, id, path)
	return nil
}

// validMappedUsers completes GitHub usernames from the mapping file
func validMappedUsers(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	table, err := mapping.Load(mappingFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return table.Users(), cobra.ShellCompDirectiveNoFileComp
}

// defaultMappingFile honors CONTRIBUTOR_MAPPING_FILE so every command reads the
// same file the assign step does
func defaultMappingFile() string {
	return config.FromEnv().MappingFile
}

func init() {
	rootCmd.AddCommand(mappingCmd)
	mappingCmd.AddCommand(mappingCheckCmd, mappingLookupCmd, mappingAddCmd)

	mappingCmd.PersistentFlags().StringVarP(&mappingFile, "mapping", "m", defaultMappingFile(), "Mapping file (or set CONTRIBUTOR_MAPPING_FILE env var)")
}
