package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameCoinche is the authoritative match handler name registered with Nakama.
	MatchNameCoinche = "coinche_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound int64 = 1
	OpProposeBid int64 = 2
	OpPlayCard   int64 = 3
	OpQueryState int64 = 4

	// Server -> Client events
	OpMatchState      int64 = 101
	OpRoundStarted    int64 = 102
	OpRoundDealt      int64 = 103 // send privately
	OpBidPlaced       int64 = 104
	OpAuctionFinished int64 = 105
	OpRedealRequired  int64 = 106
	OpCardPlayed      int64 = 107
	OpTrickWon        int64 = 108
	OpRoundEnded      int64 = 109
	OpMatchWon        int64 = 110
	OpGameError       int64 = 111
)
