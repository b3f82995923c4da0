package discord

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// InteractionFunc is the discordgo interaction callback signature
type InteractionFunc func(*discordgo.Session, *discordgo.InteractionCreate)

// Middleware decorates an InteractionFunc
type Middleware func(InteractionFunc) InteractionFunc

// Chain wraps handler so the first middleware runs outermost
func Chain(handler InteractionFunc, middlewares ...Middleware) InteractionFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// Recover turns a panic in the handler into an ephemeral error reply
func Recover(logger *zap.Logger) Middleware {
	return func(next InteractionFunc) InteractionFunc {
		return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic in interaction handler",
						zap.String("command", commandPath(i)),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()))

					respondWithError(logger, s, i, fmt.Sprintf("An unexpected error occurred: %v", r))
				}
			}()

			next(s, i)
		}
	}
}

// LogInteractions records who ran which command and how long it took
func LogInteractions(logger *zap.Logger) Middleware {
	return func(next InteractionFunc) InteractionFunc {
		return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			start := time.Now()
			next(s, i)
			logger.Debug("interaction handled",
				zap.String("command", commandPath(i)),
				zap.String("user_id", interactionUserID(i)),
				zap.Duration("took", time.Since(start)))
		}
	}
}

// commandPath renders "dnd sheet" for slash commands, empty otherwise
func commandPath(i *discordgo.InteractionCreate) string {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return ""
	}

	data := i.ApplicationCommandData()
	parts := []string{data.Name}
	options := data.Options
	for len(options) > 0 && isGroupOption(options[0]) {
		parts = append(parts, options[0].Name)
		options = options[0].Options
	}
	return strings.Join(parts, " ")
}

func isGroupOption(opt *discordgo.ApplicationCommandInteractionDataOption) bool {
	return opt.Type == discordgo.ApplicationCommandOptionSubCommand ||
		opt.Type == discordgo.ApplicationCommandOptionSubCommandGroup
}

// interactionUserID reads the member in guilds and the user in DMs
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i == nil || i.Interaction == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// respondWithError replies with an initial message, or edits the deferred one
// when the interaction was already acknowledged
func respondWithError(logger *zap.Logger, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	content := "❌ " + message

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		return
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		logger.Warn("failed to send error response", zap.String("message", message), zap.Error(err))
	}
}
