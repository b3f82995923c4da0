package discord_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/handlers/discord"
	"github.com/KirkDiggler/dnd-companion/internal/services"
	charService "github.com/KirkDiggler/dnd-companion/internal/services/character"
	mockcharacter "github.com/KirkDiggler/dnd-companion/internal/services/character/mock"
	mockclasses "github.com/KirkDiggler/dnd-companion/internal/services/classes/mock"
	mocksession "github.com/KirkDiggler/dnd-companion/internal/services/session/mock"
	"github.com/KirkDiggler/dnd-companion/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockCharacters *mockcharacter.MockService
	mockClasses    *mockclasses.MockService
	mockSession    *mocksession.MockService
	handler        *discord.Handler
	ctx            context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCharacters = mockcharacter.NewMockService(s.ctrl)
	s.mockClasses = mockclasses.NewMockService(s.ctrl)
	s.mockSession = mocksession.NewMockService(s.ctrl)
	s.ctx = context.Background()

	s.handler = discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: &services.Provider{
			SessionService:   s.mockSession,
			CharacterService: s.mockCharacters,
			ClassesService:   s.mockClasses,
		},
	})
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func subcommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: options,
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func (s *HandlerTestSuite) TestNewHandler_PanicsWithoutProvider() {
	s.Panics(func() {
		discord.NewHandler(&discord.HandlerConfig{})
	})
}

func (s *HandlerTestSuite) TestCommands() {
	commands := s.handler.Commands()

	s.Require().Len(commands, 1)
	s.Equal("dnd", commands[0].Name)

	names := make([]string, 0, len(commands[0].Options))
	for _, opt := range commands[0].Options {
		names = append(names, opt.Name)
	}
	s.Equal([]string{"characters", "sheet", "delete", "classes", "modifier"}, names)
}

func (s *HandlerTestSuite) TestCharacters() {
	dashboard := &charService.Dashboard{
		User:       testutils.CreateTestUser("user-1", "tester"),
		Characters: []*charService.Summary{charService.Summarize(testutils.CreateTestCharacter("char-1", "Aria"))},
	}
	s.mockCharacters.EXPECT().Dashboard(s.ctx).Return(dashboard, nil)

	resp := s.handler.Respond(s.ctx, subcommand("characters"))

	s.Require().Len(resp.Embeds, 1)
	s.Len(resp.Embeds[0].Fields, 1)
	s.Empty(resp.Content)
}

func (s *HandlerTestSuite) TestCharacters_NotLoggedIn() {
	s.mockCharacters.EXPECT().Dashboard(s.ctx).Return(nil, dnderr.Unauthenticated("you must be logged in"))

	resp := s.handler.Respond(s.ctx, subcommand("characters"))

	s.Empty(resp.Embeds)
	s.Contains(resp.Content, "not logged in")
}

func (s *HandlerTestSuite) TestSheet() {
	char := testutils.CreateTestCharacter("char-1", "Aria")
	s.mockCharacters.EXPECT().Sheet(s.ctx, "char-1").Return(charService.BuildSheet(char), nil)

	resp := s.handler.Respond(s.ctx, subcommand("sheet", stringOpt("character_id", "char-1")))

	s.Require().Len(resp.Embeds, 1)
	s.Contains(resp.Embeds[0].Title, "Aria")
}

func (s *HandlerTestSuite) TestSheet_NotFound() {
	s.mockCharacters.EXPECT().Sheet(s.ctx, "nope").Return(nil, dnderr.NotFound("character not found"))

	resp := s.handler.Respond(s.ctx, subcommand("sheet", stringOpt("character_id", "nope")))

	s.Equal("❌ Character not found", resp.Content)
}

func (s *HandlerTestSuite) TestDelete() {
	remaining := []*charService.Summary{charService.Summarize(testutils.CreateTestCharacter("char-2", "Borin"))}
	s.mockCharacters.EXPECT().Delete(s.ctx, "char-1").Return(remaining, nil)
	s.mockSession.EXPECT().User().Return(testutils.CreateTestUser("user-1", "tester"))

	resp := s.handler.Respond(s.ctx, subcommand("delete", stringOpt("character_id", "char-1")))

	s.Contains(resp.Content, "deleted")
	s.Require().Len(resp.Embeds, 1)
	s.Len(resp.Embeds[0].Fields, 1)
}

func (s *HandlerTestSuite) TestClasses() {
	s.mockClasses.EXPECT().Search(s.ctx, "wiz").Return([]*rulebook.Class{
		testutils.CreateTestClass("wizard", "wizard", 6),
	}, nil)

	resp := s.handler.Respond(s.ctx, subcommand("classes", stringOpt("search", "wiz")))

	s.Require().Len(resp.Embeds, 1)
	s.Require().Len(resp.Embeds[0].Fields, 1)
	s.Equal("Wizard", resp.Embeds[0].Fields[0].Name)
}

func (s *HandlerTestSuite) TestClasses_Unavailable() {
	s.mockClasses.EXPECT().Search(s.ctx, "").Return(nil, dnderr.Unavailable("down"))

	resp := s.handler.Respond(s.ctx, subcommand("classes"))

	s.Contains(resp.Content, "unavailable")
}

func (s *HandlerTestSuite) TestModifier() {
	resp := s.handler.Respond(s.ctx, subcommand("modifier", intOpt("score", 18)))

	s.Require().Len(resp.Embeds, 1)
	s.Contains(resp.Embeds[0].Description, "+4")
}

func (s *HandlerTestSuite) TestModifier_OutOfRange() {
	for _, score := range []int{0, 31} {
		resp := s.handler.Respond(s.ctx, subcommand("modifier", intOpt("score", score)))
		s.Equal("❌ score must be between 1 and 30", resp.Content)
	}

	resp := s.handler.Respond(s.ctx, subcommand("modifier"))
	s.Contains(resp.Content, "score must be between")
}

func (s *HandlerTestSuite) TestUnknownSubcommand() {
	resp := s.handler.Respond(s.ctx, subcommand("dance"))

	s.Equal("❌ Unknown command", resp.Content)
}

func memberInteraction(userID string, permissions int64) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionApplicationCommand,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}, Permissions: permissions},
	}}
}

func (s *HandlerTestSuite) TestAuthorize_OwnersOnly() {
	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: &services.Provider{},
		OwnerIDs:        []string{"owner-1"},
	})

	for _, sub := range []string{"characters", "sheet", "delete"} {
		s.NoError(handler.Authorize(memberInteraction("owner-1", 0), sub), sub)

		err := handler.Authorize(memberInteraction("guest", discordgo.PermissionManageServer), sub)
		s.True(dnderr.IsPermissionDenied(err), sub)
		s.Equal("guest", dnderr.GetMeta(err)["user_id"])
	}
}

func (s *HandlerTestSuite) TestAuthorize_ManageServerWithoutOwners() {
	s.NoError(s.handler.Authorize(memberInteraction("admin", discordgo.PermissionManageServer), "delete"))

	err := s.handler.Authorize(memberInteraction("guest", discordgo.PermissionSendMessages), "delete")
	s.True(dnderr.IsPermissionDenied(err))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: &discordgo.User{ID: "someone"}}}
	s.True(dnderr.IsPermissionDenied(s.handler.Authorize(dm, "characters")))
}

func (s *HandlerTestSuite) TestAuthorize_ReferenceCommandsAreOpen() {
	guest := memberInteraction("guest", 0)

	s.NoError(s.handler.Authorize(guest, "classes"))
	s.NoError(s.handler.Authorize(guest, "modifier"))
}
