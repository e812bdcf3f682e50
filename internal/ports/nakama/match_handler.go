package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"

	"coinche/internal/app"
	"coinche/internal/bot"
	"coinche/internal/config"
	"coinche/internal/domain"
	"coinche/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label
	matchLabelGame          = "coinche"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats      [domain.NumSeats]string `json:"seats"`       // User IDs by seat, empty string means open
	OwnerSeat  int                     `json:"owner_seat"`  // Seat index of the match owner
	Dealer     int                     `json:"dealer"`      // Seat that deals the next round
	TeamScores [domain.NumTeams]int    `json:"team_scores"` // Cumulative settled scores
	Tick       int64                   `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"`
	Round     *domain.Round               `json:"-"` // Active round, nil while in lobby
	Bots      map[string]*bot.Agent       `json:"-"`
	Economy   ports.EconomyPort           `json:"-"`
	Store     ports.RoundStorePort        `json:"-"`

	BotsEnabled          bool  `json:"bots_enabled"`
	BotMinDelay          int   `json:"bot_min_delay"`
	BotMaxDelay          int   `json:"bot_max_delay"`
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64 `json:"bot_wait_until"`
	LastSinglePlayerTick int64 `json:"last_single_player_tick"`

	BaseBet int64 `json:"base_bet"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.NumSeats - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	tier := ""
	if v, ok := params["tier"].(string); ok {
		tier = v
	}

	state := &MatchState{
		OwnerSeat: -1,
		Dealer:    0,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		Bots:      make(map[string]*bot.Agent),
		Economy:   NewNakamaEconomyAdapter(nk),
		Store:     NewNakamaRoundStoreAdapter(nk),
		BaseBet:   config.GetBaseBet(tier),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["coinche_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["coinche_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["coinche_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["coinche_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// A stored snapshot means this match id is being revived after a node
	// restart; pick the round back up where it stopped.
	if matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok {
		if snapshot, found, err := state.Store.LoadRound(ctx, matchID); err != nil {
			logger.Warn("MatchInit: Failed to load stored round: %v", err)
		} else if found {
			round, err := domain.RestoreRound(snapshot)
			if err != nil {
				logger.Warn("MatchInit: Discarding invalid stored round: %v", err)
			} else {
				state.Round = round
				state.Dealer = int(round.Dealer)
				copy(state.Seats[:], round.Players[:])
				logger.Info("MatchInit: Restored %s-phase round for match %s", round.Phase, matchID)
			}
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		if cfg := config.GetGameConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
			state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
		} else {
			state.BotAutoFillDelay = 5
		}
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  matchLabelGame,
		Phase: mh.phaseLabel(state),
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace (if no round is running)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Round == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: Try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Round == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		if matchState.Store != nil {
			if matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok {
				if err := matchState.Store.DeleteRound(ctx, matchID); err != nil {
					logger.Warn("MatchLeave: Failed to delete stored round: %v", err)
				}
			}
		}
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg)
		case OpProposeBid:
			mh.handleProposeBid(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpQueryState:
			mh.handleQueryState(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Round == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID)
						if err != nil {
							logger.Error("Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns during the auction and the play phase
	if state.Round.Phase == domain.PhaseDone {
		return
	}
	currentTurn := state.Round.Turn
	currentUserID := state.Seats[currentTurn]

	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, currentTurn, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	proposal, card, err := agent.Act(state.Round)
	if err != nil {
		logger.Error("processBots: Bot %s failed to act: %v", currentUserID, err)
		return
	}

	var events []app.Event
	if proposal != nil {
		events, err = state.App.ProposeBid(state.Round, currentUserID, *proposal)
	} else if card != nil {
		events, err = state.App.PlayCard(state.Round, currentUserID, *card)
	}
	if err != nil {
		logger.Error("processBots: Bot %s action rejected: %v", currentUserID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistRound(ctx, state, logger)
}

func (mh *matchHandler) buildMatchState(state *MatchState) MatchStateMessage {
	var playerStates []PlayerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		playerStates = append(playerStates, PlayerState{
			UserID:      userId,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBotUserId(userId),
			DisplayName: displayName,
		})
	}

	msg := MatchStateMessage{
		Seats:      state.Seats[:],
		OwnerSeat:  state.OwnerSeat,
		Dealer:     state.Dealer,
		Phase:      mh.phaseLabel(state),
		Players:    playerStates,
		TeamScores: state.TeamScores,
	}
	if state.Round != nil {
		msg.Turn = int(state.Round.Turn)
		msg.Trick = state.Round.Trick
		msg.Contract = state.Round.Contract
	}
	return msg
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	bytes, err := json.Marshal(mh.buildMatchState(state))
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

func (mh *matchHandler) phaseLabel(state *MatchState) string {
	if state.Round == nil {
		return "lobby"
	}
	return string(state.Round.Phase)
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOf(state, senderID)

	logger.Info("StartRound: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartRound: User %s tried to start but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.Round != nil && state.Round.Phase != domain.PhaseDone {
		logger.Warn("StartRound: A round is already running.")
		return
	}
	if state.GetOccupiedSeatCount() < app.MinPlayersToStartRound {
		logger.Warn("StartRound: Cannot start with %d players. Need %d.", state.GetOccupiedSeatCount(), app.MinPlayersToStartRound)
		return
	}

	mh.startRound(ctx, state, dispatcher, logger)
}

// startRound deals a fresh round with the current dealer and broadcasts the
// private hands.
func (mh *matchHandler) startRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	round, events, err := state.App.StartRound(state.Seats, domain.Seat(state.Dealer))
	if err != nil {
		logger.Error("StartRound: Failed to start round: %v", err)
		return
	}
	state.Round = round

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistRound(ctx, state, logger)

	logger.Info("StartRound: Round dealt by seat %d.", state.Dealer)
}

func (mh *matchHandler) handleProposeBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Round == nil {
		logger.Warn("handleProposeBid: No active round.")
		mh.sendError(state, dispatcher, logger, senderID, 400, "no active round")
		return
	}

	var request ProposeBidRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleProposeBid: Failed to unmarshal ProposeBidRequest: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed bid request")
		return
	}
	proposal, err := request.Proposal()
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	events, err := state.App.ProposeBid(state.Round, senderID, proposal)
	if err != nil {
		logger.Warn("handleProposeBid: User %s bid rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistRound(ctx, state, logger)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Round == nil {
		logger.Warn("handlePlayCard: No active round.")
		mh.sendError(state, dispatcher, logger, senderID, 400, "no active round")
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal PlayCardRequest: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed play request")
		return
	}

	events, err := state.App.PlayCard(state.Round, senderID, request.Card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s failed to play %s: %v", senderID, request.Card, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistRound(ctx, state, logger)
}

func (mh *matchHandler) handleQueryState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	presence, ok := state.Presences[senderID]
	if !ok {
		return
	}

	bytes, err := json.Marshal(mh.buildMatchState(state))
	if err != nil {
		logger.Error("handleQueryState: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, []runtime.Presence{presence}, nil, true)

	// Re-send the private hand so reconnecting clients recover their cards.
	if state.Round != nil {
		if seat, ok := state.Round.SeatOf(senderID); ok {
			payload := app.RoundDealtPayload{
				Seat:   int(seat),
				Dealer: int(state.Round.Dealer),
				Hand:   state.Round.Hands[seat],
				Opener: int(state.Round.Dealer.Next()),
			}
			if bytes, err := json.Marshal(payload); err == nil {
				dispatcher.BroadcastMessage(OpRoundDealt, bytes, []runtime.Presence{presence}, nil, true)
			}
		}
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any = ev.Payload

	switch ev.Kind {
	case app.EventRoundStarted:
		opCode = OpRoundStarted
	case app.EventRoundDealt:
		opCode = OpRoundDealt
	case app.EventBidPlaced:
		opCode = OpBidPlaced
	case app.EventAuctionFinished:
		opCode = OpAuctionFinished
	case app.EventRedealRequired:
		opCode = OpRedealRequired
	case app.EventCardPlayed:
		opCode = OpCardPlayed
	case app.EventTrickWon:
		opCode = OpTrickWon
	case app.EventRoundEnded:
		opCode = OpRoundEnded
		payload = mh.settleRound(ctx, state, logger, ev.Payload.(app.RoundEndedPayload))
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are bots),
		// we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)

	switch ev.Kind {
	case app.EventRoundEnded:
		mh.finishRound(ctx, state, dispatcher, logger)
	case app.EventRedealRequired:
		// Four passes void the deal. Rotate the dealer and deal again.
		p := ev.Payload.(app.RedealRequiredPayload)
		state.Dealer = p.NextDealer
		state.Round = nil
		mh.startRound(ctx, state, dispatcher, logger)
	}
}

// settleRound converts the round verdict into chip movements, applies them
// and accumulates the match scores.
func (mh *matchHandler) settleRound(ctx context.Context, state *MatchState, logger runtime.Logger, p app.RoundEndedPayload) RoundEndedMessage {
	winners := domain.TeamNorthSouth
	if p.Settlement.Awards[domain.TeamEastWest] > 0 {
		winners = domain.TeamEastWest
	}
	state.TeamScores[winners] += p.Settlement.Awards[winners]

	stake := state.BaseBet * int64(p.Settlement.Multiplier)
	balanceChanges := make(map[string]int64, domain.NumSeats)
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		if domain.Seat(i).Team() == winners {
			balanceChanges[userID] = stake
		} else {
			balanceChanges[userID] = -stake
		}
	}

	if state.Economy != nil {
		updates := make([]ports.WalletUpdate, 0, len(balanceChanges))
		for userID, amount := range balanceChanges {
			if isBotUserId(userID) {
				continue
			}
			updates = append(updates, ports.WalletUpdate{
				UserID: userID,
				Amount: amount,
				Metadata: map[string]interface{}{
					"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
					"reason":   "round_settlement",
				},
			})
		}
		if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
			logger.Error("Failed to update balances: %v", err)
		}
	}

	return RoundEndedMessage{
		Score:          p.Score,
		Settlement:     p.Settlement,
		TeamScores:     state.TeamScores,
		BalanceChanges: balanceChanges,
	}
}

// finishRound closes out a completed round: announces a match win when a
// team reached the target, rotates the dealer and returns to the lobby.
func (mh *matchHandler) finishRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	target := config.GetTargetScore()
	for team := 0; team < domain.NumTeams; team++ {
		if state.TeamScores[team] >= target {
			bytes, err := json.Marshal(MatchWonMessage{Team: team, TeamScores: state.TeamScores})
			if err == nil {
				dispatcher.BroadcastMessage(OpMatchWon, bytes, nil, nil, true)
			}
			state.TeamScores = [domain.NumTeams]int{}
			break
		}
	}

	if state.Store != nil {
		if matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok {
			if err := state.Store.DeleteRound(ctx, matchID); err != nil {
				logger.Warn("finishRound: Failed to delete stored round: %v", err)
			}
		}
	}

	state.Dealer = int(domain.Seat(state.Dealer).Next())
	state.Round = nil
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) persistRound(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Store == nil || state.Round == nil {
		return
	}
	matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if !ok {
		return
	}
	if err := state.Store.SaveRound(ctx, matchID, state.Round.Snapshot()); err != nil {
		logger.Warn("persistRound: Failed to save round: %v", err)
	}
}

func (mh *matchHandler) seatOf(state *MatchState, userID string) int {
	for i, seatUserId := range state.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// sendError sends a GameErrorMessage to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorMessage{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorMessage: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  matchLabelGame,
		Phase: mh.phaseLabel(state),
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
