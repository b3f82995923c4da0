package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e/calculators"
	charService "github.com/KirkDiggler/dnd-companion/internal/services/character"
)

const (
	colorDefault = 0x3498db // Blue

	// Discord rejects embeds with more fields than this
	maxEmbedFields     = 25
	maxDescriptionText = 200
)

// title upper-cases the first letter of each word. A Caser keeps state, so
// one is built per call.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// BuildDashboardEmbed lists every character card of the user
func BuildDashboardEmbed(dashboard *charService.Dashboard) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "📚 Your Characters",
		Color:  colorDefault,
		Fields: make([]*discordgo.MessageEmbedField, 0, len(dashboard.Characters)),
	}

	greeting := "Welcome back!"
	if dashboard.User != nil && dashboard.User.Name != "" {
		greeting = fmt.Sprintf("Welcome back, %s!", dashboard.User.Name)
	}

	if len(dashboard.Characters) == 0 {
		embed.Description = greeting + " You don't have any characters yet."
		return embed
	}
	embed.Description = fmt.Sprintf("%s You have %d character(s):", greeting, len(dashboard.Characters))

	for _, summary := range dashboard.Characters {
		if len(embed.Fields) == maxEmbedFields {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Showing %d of %d characters", maxEmbedFields, len(dashboard.Characters)),
			}
			break
		}
		embed.Fields = append(embed.Fields, summaryField(summary))
	}

	return embed
}

func summaryField(summary *charService.Summary) *discordgo.MessageEmbedField {
	name := fmt.Sprintf("%s • Level %d %s", summary.Name, summary.Level, title(summary.ClassName))
	if summary.SpecieName != "" {
		name = fmt.Sprintf("%s • Level %d %s %s", summary.Name, summary.Level,
			title(summary.SpecieName), title(summary.ClassName))
	}

	lines := []string{
		fmt.Sprintf("%s **HP:** %d/%d (%.0f%%)", healthEmoji(summary.Health),
			summary.CurrentHP, summary.MaxHP, summary.HPPercentage),
		fmt.Sprintf("**AC:** %d | **Prof:** %+d | **CON:** %+d",
			summary.ArmorClass, summary.ProficiencyBonus, summary.ConstitutionModifier),
		fmt.Sprintf("ID: `%s`", summary.ID),
	}

	return &discordgo.MessageEmbedField{
		Name:  name,
		Value: strings.Join(lines, "\n"),
	}
}

// BuildSheetEmbed renders the derived sheet. Each ability carries the marker
// of its score tier and the embed takes the color of the best score.
func BuildSheetEmbed(sheet *charService.Sheet) *discordgo.MessageEmbed {
	char := sheet.Character

	heading := fmt.Sprintf("%s - Level %d %s", char.Name, char.Level, title(char.Class.Name))
	if char.Specie.Name != "" {
		heading = fmt.Sprintf("%s - Level %d %s %s", char.Name, char.Level,
			title(char.Specie.Name), title(char.Class.Name))
	}

	description := fmt.Sprintf("**HP:** %d/%d | **AC:** %d | **Initiative:** %+d | **Proficiency:** %+d",
		char.HP.Current, sheet.MaxHP, sheet.ArmorClass, sheet.Initiative, sheet.ProficiencyBonus)

	embed := &discordgo.MessageEmbed{
		Title:       heading,
		Description: description,
		Color:       calculators.ScoreTierWeak.Color(),
		Fields:      make([]*discordgo.MessageEmbedField, 0, len(sheet.Abilities)+1),
	}

	best := -1
	for _, ability := range sheet.Abilities {
		if ability.Score > best {
			best = ability.Score
			embed.Color = ability.Tier.Color()
		}

		value := fmt.Sprintf("%s %d (%s)", tierEmoji(ability.Tier), ability.Score, ability.Formatted)
		if ability.SavingThrow {
			value += " 🛡️"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   ability.Attribute.Short(),
			Value:  value,
			Inline: true,
		})
	}

	skillLines := make([]string, 0, len(sheet.Skills))
	for _, skill := range sheet.Skills {
		marker := "○"
		if skill.Proficient {
			marker = "●"
		}
		skillLines = append(skillLines, fmt.Sprintf("%s %s (%s) %+d",
			marker, skill.Skill.DisplayName(), skill.Ability.Short(), skill.Bonus))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "🎯 Skills",
		Value: strings.Join(skillLines, "\n"),
	})

	embed.Footer = &discordgo.MessageEmbedFooter{Text: "ID: " + char.ID}

	return embed
}

// BuildClassesEmbed lists catalog classes, noting the search term when set
func BuildClassesEmbed(classes []*rulebook.Class, term string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "📖 Classes",
		Color:  colorDefault,
		Fields: make([]*discordgo.MessageEmbedField, 0, len(classes)),
	}
	if term != "" {
		embed.Title = fmt.Sprintf("📖 Classes matching %q", term)
	}

	if len(classes) == 0 {
		embed.Description = "No classes found."
		return embed
	}

	for _, class := range classes {
		if len(embed.Fields) == maxEmbedFields {
			break
		}

		lines := []string{
			fmt.Sprintf("**Hit Die:** %s | **Primary:** %s", orDash(class.HitDieLabel()), orDash(class.GetPrimaryAbility())),
		}
		if len(class.SavingThrows) > 0 {
			saves := make([]string, 0, len(class.SavingThrows))
			for _, attr := range class.SavingThrows {
				saves = append(saves, attr.Short())
			}
			lines = append(lines, "**Saves:** "+strings.Join(saves, ", "))
		}
		if class.Description != "" {
			lines = append(lines, truncate(class.Description, maxDescriptionText))
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  title(class.Name),
			Value: strings.Join(lines, "\n"),
		})
	}

	return embed
}

// BuildModifierEmbed explains the modifier of a raw ability score
func BuildModifierEmbed(score int) *discordgo.MessageEmbed {
	tier := calculators.ScoreTierFor(score)
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Ability score %d", score),
		Description: fmt.Sprintf("%s Modifier **%s** (%s)",
			tierEmoji(tier), calculators.FormattedModifier(score), tierLabel(tier)),
		Color: tier.Color(),
	}
}

func healthEmoji(status charService.HealthStatus) string {
	switch status {
	case charService.HealthHealthy:
		return "💚"
	case charService.HealthLightlyWounded:
		return "💛"
	case charService.HealthWounded:
		return "🧡"
	default:
		return "❤️"
	}
}

func tierEmoji(tier calculators.ScoreTier) string {
	switch tier {
	case calculators.ScoreTierLegendary:
		return "🟣"
	case calculators.ScoreTierExceptional:
		return "🔵"
	case calculators.ScoreTierStrong:
		return "🟢"
	case calculators.ScoreTierAboveAverage:
		return "🟡"
	case calculators.ScoreTierAverage:
		return "🟠"
	default:
		return "🔴"
	}
}

func tierLabel(tier calculators.ScoreTier) string {
	return title(strings.ReplaceAll(string(tier), "_", " "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
