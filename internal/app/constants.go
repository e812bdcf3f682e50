package app

import "coinche/internal/domain"

// MinPlayersToStartRound defines how many occupied seats a round needs.
// Coinche is strictly a four-player game; bots fill the remaining seats.
const MinPlayersToStartRound = domain.NumSeats
