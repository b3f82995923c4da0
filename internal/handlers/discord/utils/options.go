package utils

import "github.com/bwmarrin/discordgo"

// FindOption walks options depth first through subcommand groups and
// subcommands and returns the first option with the given name
func FindOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for len(options) > 0 {
		for _, opt := range options {
			if opt.Name == name {
				return opt
			}
		}

		// Drill into the selected subcommand
		if len(options[0].Options) > 0 {
			options = options[0].Options
		} else {
			break
		}
	}

	return nil
}

// GetCommandOption safely retrieves a command option by name from interaction data
func GetCommandOption(i *discordgo.InteractionCreate, name string) *discordgo.ApplicationCommandInteractionDataOption {
	return FindOption(i.ApplicationCommandData().Options, name)
}

// StringOption returns the string value of a named option, empty when absent
func StringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt := FindOption(options, name)
	if opt == nil {
		return ""
	}
	return opt.StringValue()
}

// IntOption returns the integer value of a named option and whether it was set
func IntOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, bool) {
	opt := FindOption(options, name)
	if opt == nil {
		return 0, false
	}
	return opt.IntValue(), true
}
