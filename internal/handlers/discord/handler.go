package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/handlers/discord/utils"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
	"github.com/KirkDiggler/dnd-companion/internal/services"
	charService "github.com/KirkDiggler/dnd-companion/internal/services/character"
)

const (
	commandName = "dnd"

	minScore = 1
	maxScore = 30

	interactionTimeout = 10 * time.Second
)

// accountCommands act on the logged in companion account of the bot host
var accountCommands = map[string]bool{
	"characters": true,
	"sheet":      true,
	"delete":     true,
}

// Handler handles all Discord interactions
type Handler struct {
	ServiceProvider *services.Provider
	ownerIDs        map[string]bool
	logger          *zap.Logger
}

// HandlerConfig holds configuration for the Discord handler.
// OwnerIDs are the Discord users allowed to run account commands; when empty
// members with Manage Server are allowed instead.
type HandlerConfig struct {
	ServiceProvider *services.Provider // Required
	OwnerIDs        []string
	Logger          *zap.Logger
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.ServiceProvider == nil {
		panic("service provider is required")
	}

	owners := make(map[string]bool, len(cfg.OwnerIDs))
	for _, id := range cfg.OwnerIDs {
		if id != "" {
			owners[id] = true
		}
	}

	return &Handler{
		ServiceProvider: cfg.ServiceProvider,
		ownerIDs:        owners,
		logger:          observability.OrNop(cfg.Logger),
	}
}

// Commands returns the slash command definitions
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	minScoreValue := float64(minScore)
	characterIDOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "character_id",
		Description: "Character ID (shown in /dnd characters)",
		Required:    true,
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        commandName,
			Description: "D&D 5e companion commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "characters",
					Description: "List your characters",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "sheet",
					Description: "Show a character sheet",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{characterIDOption},
				},
				{
					Name:        "delete",
					Description: "Delete a character",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{characterIDOption},
				},
				{
					Name:        "classes",
					Description: "Browse the class catalog",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "search",
							Description: "Filter by name or description",
							Required:    false,
						},
					},
				},
				{
					Name:        "modifier",
					Description: "Show the modifier of an ability score",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "score",
							Description: "Ability score",
							Required:    true,
							MinValue:    &minScoreValue,
							MaxValue:    maxScore,
						},
					},
				},
			},
		},
	}
}

// RegisterCommands registers slash commands with Discord.
// An empty guildID registers global commands.
func (h *Handler) RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, h.Commands()); err != nil {
		return dnderr.Wrap(err, "failed to register commands").WithMeta("guild_id", guildID)
	}
	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != commandName || len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	// Defer acknowledge the interaction with ephemeral flag
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.logger.Warn("failed to acknowledge interaction", zap.String("subcommand", sub.Name), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	var resp *discordgo.InteractionResponseData
	if err := h.Authorize(i, sub.Name); err != nil {
		h.logger.Info("interaction denied",
			zap.String("subcommand", sub.Name),
			zap.String("user_id", interactionUserID(i)))
		resp = &discordgo.InteractionResponseData{Content: "❌ " + errorMessage(err)}
	} else {
		resp = h.Respond(ctx, sub)
	}

	edit := &discordgo.WebhookEdit{Embeds: &resp.Embeds}
	if resp.Content != "" {
		edit.Content = &resp.Content
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		h.logger.Warn("failed to send interaction response", zap.String("subcommand", sub.Name), zap.Error(err))
	}
}

// Authorize checks that the caller may run the subcommand. Account commands
// are limited to the configured owners, or to members with Manage Server when
// no owner is configured. Other subcommands are open to everyone.
func (h *Handler) Authorize(i *discordgo.InteractionCreate, subcommand string) error {
	if !accountCommands[subcommand] {
		return nil
	}

	userID := interactionUserID(i)
	if len(h.ownerIDs) > 0 {
		if h.ownerIDs[userID] {
			return nil
		}
		return dnderr.PermissionDenied("only the bot owner can use this command").
			WithMeta("user_id", userID)
	}

	if i != nil && i.Interaction != nil && i.Member != nil &&
		i.Member.Permissions&discordgo.PermissionManageServer != 0 {
		return nil
	}
	return dnderr.PermissionDenied("you need the Manage Server permission to use this command").
		WithMeta("user_id", userID)
}

// Respond runs one /dnd subcommand and builds its reply
func (h *Handler) Respond(ctx context.Context, sub *discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionResponseData {
	logger := h.logger.With(zap.String("subcommand", sub.Name))
	options := sub.Options

	var (
		embed *discordgo.MessageEmbed
		err   error
	)

	switch sub.Name {
	case "characters":
		var dashboard *charService.Dashboard
		dashboard, err = h.ServiceProvider.CharacterService.Dashboard(ctx)
		if err == nil {
			embed = BuildDashboardEmbed(dashboard)
		}

	case "sheet":
		var sheet *charService.Sheet
		sheet, err = h.ServiceProvider.CharacterService.Sheet(ctx, utils.StringOption(options, "character_id"))
		if err == nil {
			embed = BuildSheetEmbed(sheet)
		}

	case "delete":
		var remaining []*charService.Summary
		remaining, err = h.ServiceProvider.CharacterService.Delete(ctx, utils.StringOption(options, "character_id"))
		if err == nil {
			return &discordgo.InteractionResponseData{
				Content: "🗑️ Character deleted.",
				Embeds: []*discordgo.MessageEmbed{BuildDashboardEmbed(&charService.Dashboard{
					User:       h.ServiceProvider.SessionService.User(),
					Characters: remaining,
				})},
			}
		}

	case "classes":
		term := utils.StringOption(options, "search")
		classes, searchErr := h.ServiceProvider.ClassesService.Search(ctx, term)
		err = searchErr
		if err == nil {
			embed = BuildClassesEmbed(classes, term)
		}

	case "modifier":
		score, ok := utils.IntOption(options, "score")
		if !ok || score < minScore || score > maxScore {
			err = dnderr.Validationf("score must be between %d and %d", minScore, maxScore).
				WithMeta("field", "score")
			break
		}
		embed = BuildModifierEmbed(int(score))

	default:
		return &discordgo.InteractionResponseData{Content: "❌ Unknown command"}
	}

	if err != nil {
		logger.Info("subcommand failed", zap.Error(err))
		return &discordgo.InteractionResponseData{Content: "❌ " + errorMessage(err)}
	}

	return &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
}

// errorMessage turns a service error into text fit for the user
func errorMessage(err error) string {
	switch {
	case dnderr.IsUnauthenticated(err):
		return "You are not logged in. Run `companion login` on the bot host first."
	case dnderr.IsNotFound(err):
		return "Character not found"
	case dnderr.IsValidation(err), dnderr.IsInvalidArgument(err), dnderr.IsPermissionDenied(err):
		return dnderr.GetMessage(err)
	case dnderr.GetCode(err) == dnderr.CodeUnavailable:
		return "The companion API is unavailable, try again later"
	default:
		return fmt.Sprintf("Something went wrong (%s)", dnderr.GetCode(err))
	}
}
