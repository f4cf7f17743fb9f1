package dice_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dice-roller/internal/engine"
	enginemock "github.com/KirkDiggler/dice-roller/internal/engine/mock"
	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/dice"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
	displayrepo "github.com/KirkDiggler/dice-roller/internal/repositories/display"
	displaymock "github.com/KirkDiggler/dice-roller/internal/repositories/display/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockEngine   *enginemock.MockEngine
	mockRepo     *displaymock.MockRepository
	eventBus     events.EventBus
	rejected     []events.Event
	orchestrator dice.Service
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.mockRepo = displaymock.NewMockRepository(s.ctrl)
	s.eventBus = events.NewBus()
	s.rejected = nil
	s.ctx = context.Background()

	s.eventBus.SubscribeFunc(dice.EventInputRejected, 0, func(_ context.Context, e events.Event) error {
		s.rejected = append(s.rejected, e)
		return nil
	})

	var err error
	s.orchestrator, err = dice.NewOrchestrator(&dice.Config{
		Engine:      s.mockEngine,
		DisplayRepo: s.mockRepo,
		IDGenerator: idgen.NewSequential("display"),
		EventBus:    s.eventBus,
		Limits:      dice.Limits{MaxSides: 100, MaxDice: 50, MaxRolls: 1000},
		DisplayTTL:  10 * time.Minute,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectSimulation(req rolls.Request, result rolls.Result) {
	table := &rolls.FrequencyTable{NumRolls: len(result), Bins: []rolls.Bin{{Total: req.MinTotal(), Count: 0}}}
	stats := &rolls.SummaryStats{Count: len(result), Minimum: 3, Maximum: 11, Mean: 7, Median: 7}

	s.mockEngine.EXPECT().
		Simulate(s.ctx, &engine.SimulateInput{ViewerID: "tty", Request: req}).
		Return(&engine.SimulateOutput{Result: result}, nil)
	s.mockEngine.EXPECT().Tally(result, req.NumDice, req.Sides).Return(table)
	s.mockEngine.EXPECT().Summarize(result).Return(stats, nil)
}

func (s *OrchestratorTestSuite) TestRoll() {
	req := rolls.Request{Sides: 6, NumDice: 2, NumRolls: 3}
	s.expectSimulation(req, rolls.Result{3, 7, 11})

	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input displayrepo.SaveInput) (*displayrepo.SaveOutput, error) {
			s.Equal(10*time.Minute, input.TTL)
			s.Equal("display_1", input.Display.ID)
			s.Equal("tty", input.Display.ViewerID)
			s.Equal(req, input.Display.Request)
			s.Equal("3, 7, 11", input.Display.Listing)
			s.Equal("Tally of 3 Roll Totals (3x2 d6)", input.Display.Title)
			s.True(strings.HasPrefix(input.Display.StatsText, "Count: 3\n"))
			s.Contains(input.Display.StatsText, "Standard Deviation: N/A")
			return &displayrepo.SaveOutput{Display: input.Display}, nil
		})

	out, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{
		ViewerID: "tty",
		Sides:    "6",
		NumDice:  " 2 ",
		NumRolls: "3\n",
	})
	s.Require().NoError(err)
	s.Equal(rolls.Result{3, 7, 11}, out.Display.Totals)
	s.Empty(s.rejected)
}

func (s *OrchestratorTestSuite) TestRollInvalidInput() {
	testCases := []struct {
		name   string
		input  *dice.RollInput
		fields []string
	}{
		{
			name:   "empty fields",
			input:  &dice.RollInput{ViewerID: "tty"},
			fields: []string{"sides", "num_dice", "num_rolls"},
		},
		{
			name:   "zero sides",
			input:  &dice.RollInput{ViewerID: "tty", Sides: "0", NumDice: "1", NumRolls: "1"},
			fields: []string{"sides"},
		},
		{
			name:   "negative dice",
			input:  &dice.RollInput{ViewerID: "tty", Sides: "6", NumDice: "-2", NumRolls: "1"},
			fields: []string{"num_dice"},
		},
		{
			name:   "decimal rolls",
			input:  &dice.RollInput{ViewerID: "tty", Sides: "6", NumDice: "1", NumRolls: "2.5"},
			fields: []string{"num_rolls"},
		},
		{
			name:   "words",
			input:  &dice.RollInput{ViewerID: "tty", Sides: "six", NumDice: "one", NumRolls: "1"},
			fields: []string{"sides", "num_dice"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.rejected = nil
			s.mockRepo.EXPECT().
				Delete(s.ctx, displayrepo.DeleteInput{ViewerID: "tty"}).
				Return(&displayrepo.DeleteOutput{Deleted: true}, nil)

			out, err := s.orchestrator.Roll(s.ctx, tc.input)
			s.Require().Error(err)
			s.Nil(out)
			s.True(errors.IsInvalidInput(err))
			s.Equal(errors.InvalidInputMessage, errors.GetMessage(err))
			s.Equal(tc.fields, errors.GetMeta(err)["fields"])

			s.Require().Len(s.rejected, 1)
			fields, ok := s.rejected[0].Context().Get(dice.EventKeyFields)
			s.True(ok)
			s.Equal(tc.fields, fields)
		})
	}
}

func (s *OrchestratorTestSuite) TestRollOverLimit() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, displayrepo.DeleteInput{ViewerID: "tty"}).
		Return(&displayrepo.DeleteOutput{}, nil)

	_, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{
		ViewerID: "tty",
		Sides:    "6",
		NumDice:  "2",
		NumRolls: "1001",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.False(errors.IsInvalidInput(err))
	s.Contains(err.Error(), "num_rolls must be at most 1000")
	s.Len(s.rejected, 1)
}

func (s *OrchestratorTestSuite) TestRollClearFailureKeepsInputError() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis down"))

	_, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{ViewerID: "tty", Sides: "x", NumDice: "1", NumRolls: "1"})
	s.True(errors.IsInvalidInput(err))
}

func (s *OrchestratorTestSuite) TestRollDefaultViewer() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, displayrepo.DeleteInput{ViewerID: rolls.DefaultViewerID}).
		Return(&displayrepo.DeleteOutput{}, nil)

	_, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{Sides: "0", NumDice: "1", NumRolls: "1"})
	s.True(errors.IsInvalidInput(err))
}

func (s *OrchestratorTestSuite) TestRollEngineFailure() {
	s.mockEngine.EXPECT().
		Simulate(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("roller broke"))

	_, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{ViewerID: "tty", Sides: "6", NumDice: "2", NumRolls: "3"})
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
	s.Contains(err.Error(), "failed to simulate 3x2d6")
	s.Empty(s.rejected)
}

func (s *OrchestratorTestSuite) TestRollEngineRejectsRequest() {
	s.mockEngine.EXPECT().
		Simulate(s.ctx, gomock.Any()).
		Return(nil, errors.InvalidInput("num_dice", "sides"))
	s.mockRepo.EXPECT().
		Delete(s.ctx, displayrepo.DeleteInput{ViewerID: "tty"}).
		Return(&displayrepo.DeleteOutput{}, nil)

	_, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{ViewerID: "tty", Sides: "6", NumDice: "2", NumRolls: "3"})
	s.True(errors.IsInvalidInput(err))
	s.Len(s.rejected, 1)
}

func (s *OrchestratorTestSuite) TestRollEngineCeilingClearsDisplay() {
	s.mockEngine.EXPECT().
		Simulate(s.ctx, gomock.Any()).
		Return(nil, errors.InvalidArgumentf("num_dice must be at most %d", engine.MaxDice).
			WithMeta(dice.EventKeyFields, []string{"num_dice"}))
	s.mockRepo.EXPECT().
		Delete(s.ctx, displayrepo.DeleteInput{ViewerID: "tty"}).
		Return(&displayrepo.DeleteOutput{Deleted: true}, nil)

	_, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{ViewerID: "tty", Sides: "6", NumDice: "2", NumRolls: "3"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.False(errors.IsInvalidInput(err))
	s.Require().Len(s.rejected, 1)

	fields, ok := s.rejected[0].Context().Get(dice.EventKeyFields)
	s.True(ok)
	s.Equal([]string{"num_dice"}, fields)
}

func (s *OrchestratorTestSuite) TestRollSaveFailure() {
	req := rolls.Request{Sides: 6, NumDice: 2, NumRolls: 3}
	s.expectSimulation(req, rolls.Result{3, 7, 11})
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.Internal("redis down"))

	_, err := s.orchestrator.Roll(s.ctx, &dice.RollInput{ViewerID: "tty", Sides: "6", NumDice: "2", NumRolls: "3"})
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestRollNilInput() {
	_, err := s.orchestrator.Roll(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetDisplay() {
	d := &rolls.Display{ID: "display_9", ViewerID: "tty"}
	s.mockRepo.EXPECT().
		Get(s.ctx, displayrepo.GetInput{ViewerID: "tty"}).
		Return(&displayrepo.GetOutput{Display: d}, nil)

	out, err := s.orchestrator.GetDisplay(s.ctx, &dice.GetDisplayInput{ViewerID: "tty"})
	s.Require().NoError(err)
	s.Equal(d, out.Display)
}

func (s *OrchestratorTestSuite) TestGetDisplayNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, displayrepo.GetInput{ViewerID: rolls.DefaultViewerID}).
		Return(nil, errors.NotFound("no display"))

	_, err := s.orchestrator.GetDisplay(s.ctx, &dice.GetDisplayInput{})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestClearDisplay() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, displayrepo.DeleteInput{ViewerID: "tty"}).
		Return(&displayrepo.DeleteOutput{Deleted: true}, nil)

	out, err := s.orchestrator.ClearDisplay(s.ctx, &dice.ClearDisplayInput{ViewerID: "tty"})
	s.Require().NoError(err)
	s.True(out.Cleared)
}

func (s *OrchestratorTestSuite) TestInspectBin() {
	d := &rolls.Display{
		ID:       "display_1",
		ViewerID: "tty",
		Histogram: &rolls.FrequencyTable{
			NumRolls: 100,
			Bins: []rolls.Bin{
				{Total: 2, Count: 0},
				{Total: 3, Count: 16},
			},
		},
	}
	s.mockRepo.EXPECT().
		Get(s.ctx, displayrepo.GetInput{ViewerID: "tty"}).
		Return(&displayrepo.GetOutput{Display: d}, nil).
		Times(3)

	out, err := s.orchestrator.InspectBin(s.ctx, &dice.InspectBinInput{ViewerID: "tty", Total: 3})
	s.Require().NoError(err)
	s.Equal(rolls.Bin{Total: 3, Count: 16}, out.Bin)
	s.Equal("Total: 3\nCount: 16\nChance: 1 in 6", out.Tooltip)

	out, err = s.orchestrator.InspectBin(s.ctx, &dice.InspectBinInput{ViewerID: "tty", Total: 2})
	s.Require().NoError(err)
	s.Equal("Total: 2\nCount: 0\nChance: N/A", out.Tooltip)

	_, err = s.orchestrator.InspectBin(s.ctx, &dice.InspectBinInput{ViewerID: "tty", Total: 13})
	s.True(errors.IsOutOfRange(err))
}

func (s *OrchestratorTestSuite) TestInspectBinNoDisplay() {
	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("no display"))

	_, err := s.orchestrator.InspectBin(s.ctx, &dice.InspectBinInput{ViewerID: "tty", Total: 3})
	s.True(errors.IsNotFound(err))
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func TestNewOrchestratorConfig(t *testing.T) {
	ctrl := gomock.NewController(t)

	testCases := []struct {
		name string
		cfg  *dice.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "missing dependencies", cfg: &dice.Config{}},
		{
			name: "negative limit",
			cfg: &dice.Config{
				Engine:      enginemock.NewMockEngine(ctrl),
				DisplayRepo: displaymock.NewMockRepository(ctrl),
				IDGenerator: idgen.NewSequential(""),
				EventBus:    events.NewBus(),
				Limits:      dice.Limits{MaxRolls: -1},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := dice.NewOrchestrator(tc.cfg)
			if err == nil || svc != nil {
				t.Fatalf("expected config error, got service=%v err=%v", svc, err)
			}
			if !errors.IsInvalidArgument(err) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
}
